package memstore

import (
	"time"

	"github.com/globallaw/crm-backend/internal/entity"
)

func date(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

// Seed loads the demo dataset the dashboard ships with. Intended for local
// runs; tests build their own fixtures.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = []*entity.User{
		{ID: entity.MainAdminID, Name: "Admin", Role: entity.RoleAdmin, Email: "admin@globallaw.com"},
		{ID: "user-2", Name: "Ana García", Role: entity.RoleAdvisor, Email: "ana.garcia@globallaw.com",
			Whatsapp: &entity.WhatsappContact{Number: "+15551234567", Enabled: true}},
		{ID: "user-3", Name: "Carlos Ruiz", Role: entity.RoleAdvisor, Email: "carlos.ruiz@globallaw.com",
			Whatsapp: &entity.WhatsappContact{Number: "+15557654321", Enabled: false}},
	}

	s.clients = []*entity.Client{
		{
			ID: "client-1", Name: "Innovate Corp", Email: "contact@innovatecorp.com", Phone: "555-0101",
			Service: "Creación de Empresa LLC", Status: entity.StageNewLead,
			ContactDate: date("2024-07-10T09:00:00Z"), LastUpdate: date("2024-07-10T09:00:00Z"),
			AssignedTo: "user-2", Tags: []string{"Tech", "High-Priority"},
			Notes: []entity.Note{
				{ID: "note-1", Date: date("2024-07-10T09:00:00Z"), Text: "Lead from Meta Ads. Interested in Florida LLC.", Author: entity.SystemAuthor},
			},
		},
		{
			ID: "client-2", Name: "Garcia Consulting", Email: "info@garciaconsulting.net", Phone: "555-0102",
			Service: "Servicio Contable", Status: entity.StageContacted,
			ContactDate: date("2024-07-08T14:30:00Z"), LastUpdate: date("2024-07-09T11:00:00Z"),
			AssignedTo: "user-2", Tags: []string{"Consulting"},
			Notes: []entity.Note{
				{ID: "note-2", Date: date("2024-07-09T11:00:00Z"), Text: "Initial call completed. Sent follow-up email with pricing.", Author: "Ana García"},
			},
		},
		{
			ID: "client-3", Name: "Global Exports", Email: "sales@globalexports.io", Phone: "555-0103",
			Service: "Creación de Empresa LLC", Status: entity.StageProposalSent,
			ContactDate: date("2024-06-25T10:00:00Z"), LastUpdate: date("2024-07-05T16:00:00Z"),
			AssignedTo: "user-3", Tags: []string{"Import/Export"},
			Notes: []entity.Note{
				{ID: "note-3", Date: date("2024-07-05T16:00:00Z"), Text: "Proposal sent. Follow up next week.", Author: "Carlos Ruiz"},
			},
		},
		{
			ID: "client-4", Name: "Creative Solutions", Email: "hello@creativesolutions.dev", Phone: "555-0104",
			Service: "Agente Registrado", Status: entity.StageInProgress,
			ContactDate: date("2024-05-15T11:00:00Z"), LastUpdate: date("2024-07-12T09:30:00Z"),
			AssignedTo: "user-3", Tags: []string{"Design", "Delaware"},
			Notes: []entity.Note{
				{ID: "note-4", Date: date("2024-07-12T09:30:00Z"), Text: "Documents submitted to the state. Awaiting confirmation.", Author: "Carlos Ruiz"},
			},
		},
		{
			ID: "client-5", Name: "USA Market Access", Email: "contact@usamarket.com", Phone: "555-0105",
			Service: "Creación de Empresa LLC", Status: entity.StageReadyForSignature,
			ContactDate: date("2024-06-10T09:00:00Z"), LastUpdate: date("2024-07-11T14:00:00Z"),
			AssignedTo: "user-2", Tags: []string{},
			Notes: []entity.Note{
				{ID: "note-5", Date: date("2024-07-11T14:00:00Z"), Text: "Final documents prepared and sent to client for electronic signature.", Author: "Ana García"},
			},
		},
		{
			ID: "client-6", Name: "Tech Pioneers Inc.", Email: "founders@techpioneers.com", Phone: "555-0106",
			Service: "Creación de Empresa LLC", Status: entity.StageCompleted,
			ContactDate: date("2024-04-01T10:00:00Z"), LastUpdate: date("2024-06-15T12:00:00Z"),
			AssignedTo: "user-3", Tags: []string{"Startup", "Wyoming"},
			Notes: []entity.Note{
				{ID: "note-6", Date: date("2024-06-15T12:00:00Z"), Text: "Company formation complete. All documents delivered.", Author: "Carlos Ruiz"},
			},
		},
	}
}
