package mail

import (
	"context"
	"fmt"

	"github.com/globallaw/crm-backend/internal/infra/queue"
)

// AdvisorNotifier fans a client event out to the assigned advisor: always an
// email, plus a WhatsApp ping when the advisor has one enabled. Implements
// queue.Notifier.
type AdvisorNotifier struct {
	Email    *EmailSender
	WhatsApp *WhatsAppSender
}

func NewAdvisorNotifier(email *EmailSender, whatsApp *WhatsAppSender) *AdvisorNotifier {
	return &AdvisorNotifier{
		Email:    email,
		WhatsApp: whatsApp,
	}
}

func (n *AdvisorNotifier) Notify(ctx context.Context, payload queue.ClientEventPayload) error {
	if payload.AdvisorEmail == "" {
		return fmt.Errorf("event %s for client %s has no advisor email", payload.Event, payload.ClientID)
	}

	if n.Email != nil {
		err := n.Email.SendLeadAssigned(payload.AdvisorEmail, LeadAssignedEmailData{
			AdvisorName: payload.AdvisorName,
			ClientName:  payload.ClientName,
			ClientEmail: payload.ClientEmail,
			Stage:       payload.Stage,
		})
		if err != nil {
			return err
		}
	}

	if n.WhatsApp != nil && payload.WhatsappEnabled && payload.WhatsappNumber != "" {
		n.WhatsApp.SendLeadAssigned(payload.WhatsappNumber, payload.AdvisorName, payload.ClientName)
	}

	return nil
}
