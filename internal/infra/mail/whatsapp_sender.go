package mail

import (
	"log"
	"os"

	"github.com/globallaw/crm-backend/internal/infra/integration/whatsapp"
)

type WhatsAppSender struct {
	client *whatsapp.Client
}

func NewWhatsAppSender(client *whatsapp.Client) *WhatsAppSender {
	return &WhatsAppSender{
		client: client,
	}
}

// SendLeadAssigned pings the advisor on WhatsApp. Best effort: failures are
// logged and swallowed, the advisor still gets the email.
func (s *WhatsAppSender) SendLeadAssigned(phone, advisorName, clientName string) error {
	if phone == "" || advisorName == "" || clientName == "" {
		log.Printf("⚠️ WhatsApp: incomplete data for notification (phone: %s, advisor: %s, client: %s)", phone, advisorName, clientName)
		return nil
	}

	input := whatsapp.SendMessageInput{
		PhoneNumber:  phone,
		TemplateName: os.Getenv("WHATSAPP_TEMPLATE_ID"),
		Parameters:   []string{advisorName, clientName},
	}

	if err := s.client.SendMessage(input); err != nil {
		log.Printf("⚠️ WhatsApp: failed to notify %s: %v", phone, err)
		return nil
	}

	return nil
}
