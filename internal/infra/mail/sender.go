package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

var leadAssignedTemplate = template.Must(template.New("lead_assigned").Parse(`
<p>Hola {{.AdvisorName}},</p>
<p>Se te ha asignado un nuevo lead: <strong>{{.ClientName}}</strong> ({{.ClientEmail}}).</p>
<p>Estado actual: {{.Stage}}. Pendiente de primer contacto.</p>
`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendLeadAssigned notifies an advisor that a freshly imported lead landed on
// their desk.
func (s *EmailSender) SendLeadAssigned(to string, data LeadAssignedEmailData) error {
	var body bytes.Buffer
	if err := leadAssignedTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Nuevo lead asignado: %s", data.ClientName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
