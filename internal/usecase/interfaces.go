package usecase

import (
	"context"

	"github.com/globallaw/crm-backend/internal/entity"
	"github.com/globallaw/crm-backend/internal/infra/integration/meta"
	"github.com/globallaw/crm-backend/internal/infra/queue"
)

// ClientStore is the slice of the data store the import flow writes to.
type ClientStore interface {
	CreateClient(ctx context.Context, client *entity.Client) error
}

// StatusUpdater is the funnel transition operation of the data store.
type StatusUpdater interface {
	UpdateClientStatus(ctx context.Context, clientID string, newStatus entity.Stage, actor *entity.User) (*entity.Client, error)
}

// UserDirectory lists user accounts for advisor assignment.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]*entity.User, error)
}

// ImportLedger is the persisted set of external lead ids already imported.
// It lives outside the client store, so the import flow keeps the two in sync
// through compensations.
type ImportLedger interface {
	Add(ctx context.Context, leadID string) error
	Remove(ctx context.Context, leadID string) error
	Contains(ctx context.Context, leadID string) (bool, error)
}

// LeadSource fetches submitted leads from the ads platform.
type LeadSource interface {
	GetLeads(ctx context.Context, formID, pageToken string) ([]meta.Lead, error)
}

// AssignmentPolicy picks which advisor a new lead goes to. The default is
// uniform random; swapping in a load-aware policy does not touch the import
// flow.
type AssignmentPolicy interface {
	PickAssignee(advisors []*entity.User) *entity.User
}

type QueueProducerInterface interface {
	PublishClientEvent(ctx context.Context, payload queue.ClientEventPayload) error
}
