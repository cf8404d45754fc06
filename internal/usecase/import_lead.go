package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/globallaw/crm-backend/internal/entity"
	"github.com/globallaw/crm-backend/internal/infra/queue"
)

// Defaults applied to every imported lead.
const (
	ImportedLeadService = "Creación de Empresa LLC"
	ImportedLeadTag     = "Meta Lead"
)

type ImportLeadInput struct {
	LeadID string `json:"lead_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

type ImportLeadUseCase struct {
	Store      ClientStore
	Users      UserDirectory
	Ledger     ImportLedger
	Assignment AssignmentPolicy
	Queue      QueueProducerInterface
}

func NewImportLeadUseCase(
	store ClientStore,
	users UserDirectory,
	ledger ImportLedger,
	assignment AssignmentPolicy,
	producer QueueProducerInterface,
) *ImportLeadUseCase {
	if assignment == nil {
		assignment = RandomAssignment{}
	}
	return &ImportLeadUseCase{
		Store:      store,
		Users:      users,
		Ledger:     ledger,
		Assignment: assignment,
		Queue:      producer,
	}
}

// Execute turns one normalized external lead into a client. Dedup comes
// first: a lead id already in the ledger is rejected before anything else.
// The ledger entry and the client record are written under one compensating
// transaction so a store failure removes the ledger entry again.
func (uc *ImportLeadUseCase) Execute(ctx context.Context, input ImportLeadInput) (*entity.Client, error) {
	imported, err := uc.Ledger.Contains(ctx, input.LeadID)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeLedgerError,
			Message: "failed to check import ledger: " + err.Error(),
		}
	}
	if imported {
		return nil, &DomainError{
			Code:    CodeAlreadyImported,
			Message: fmt.Sprintf("lead with ID %s has already been imported", input.LeadID),
		}
	}

	users, err := uc.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	advisors := make([]*entity.User, 0, len(users))
	for _, u := range users {
		if u.Role == entity.RoleAdvisor {
			advisors = append(advisors, u)
		}
	}
	if len(advisors) == 0 {
		return nil, &DomainError{
			Code:    CodeNoAdvisorsAvailable,
			Message: "no advisors available to assign the new lead",
		}
	}
	advisor := uc.Assignment.PickAssignee(advisors)

	now := time.Now()
	client, err := entity.NewClient(
		input.Name, input.Email, input.Phone,
		ImportedLeadService, advisor.ID,
		[]string{ImportedLeadTag}, now,
	)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidOperation, Message: err.Error()}
	}
	client.AppendNote(entity.NewNote(
		fmt.Sprintf("Lead from Meta Ads (ID: %s). Awaiting first contact.", input.LeadID),
		entity.SystemAuthor,
		now,
	))

	txn := NewTransaction()

	txn.AddOperation("record_lead_id", func(ctx context.Context) error {
		return uc.Ledger.Add(ctx, input.LeadID)
	})
	txn.AddCompensation("remove_lead_id", func(ctx context.Context) error {
		return uc.Ledger.Remove(ctx, input.LeadID)
	})

	txn.AddOperation("create_client", func(ctx context.Context) error {
		return uc.Store.CreateClient(ctx, client)
	})

	if err := txn.Execute(ctx); err != nil {
		// Concurrent import of the same lead loses the ledger insert race.
		if errors.Is(err, entity.ErrLeadAlreadyImported) {
			return nil, &DomainError{
				Code:    CodeAlreadyImported,
				Message: fmt.Sprintf("lead with ID %s has already been imported", input.LeadID),
			}
		}
		return nil, &TechnicalError{
			Code:    CodeLedgerError,
			Message: "failed to persist imported lead: " + err.Error(),
		}
	}

	if uc.Queue != nil {
		payload := queue.ClientEventPayload{
			Event:        queue.EventLeadImported,
			ClientID:     client.ID,
			ClientName:   client.Name,
			ClientEmail:  client.Email,
			Stage:        client.Status.String(),
			LeadID:       input.LeadID,
			AdvisorName:  advisor.Name,
			AdvisorEmail: advisor.Email,
			OccurredAt:   now,
		}
		if advisor.Whatsapp != nil {
			payload.WhatsappNumber = advisor.Whatsapp.Number
			payload.WhatsappEnabled = advisor.Whatsapp.Enabled
		}
		if err := uc.Queue.PublishClientEvent(ctx, payload); err != nil {
			// Notifications never block the import.
			log.Printf("⚠️ failed to publish lead.imported for %s: %v", client.ID, err)
		}
	}

	return client, nil
}
