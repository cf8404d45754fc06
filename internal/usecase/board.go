package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/globallaw/crm-backend/internal/entity"
)

// Board holds a local working copy of the funnel, the state a Kanban view
// renders from. Moving a card applies the new stage locally before the store
// confirms; if the store rejects the transition the exact pre-move snapshot
// is restored. Snapshot-before, apply-local, await confirmation, restore on
// failure.
type Board struct {
	store StatusUpdater

	mu       sync.Mutex
	clients  map[string]*entity.Client
	inFlight map[string]bool
}

func NewBoard(store StatusUpdater) *Board {
	return &Board{
		store:    store,
		clients:  make(map[string]*entity.Client),
		inFlight: make(map[string]bool),
	}
}

// Load replaces the board's working copy, typically from ListClients.
func (b *Board) Load(clients []*entity.Client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clients = make(map[string]*entity.Client, len(clients))
	for _, c := range clients {
		b.clients[c.ID] = c.Clone()
	}
}

// Client returns the board's current copy of one client.
func (b *Board) Client(id string) (*entity.Client, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.clients[id]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Column returns the clients currently sitting in one stage.
func (b *Board) Column(stage entity.Stage) []*entity.Client {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []*entity.Client
	for _, c := range b.clients {
		if c.Status == stage {
			out = append(out, c.Clone())
		}
	}
	return out
}

// MoveClient is one drag gesture. Only one move per client may be in flight;
// a second move before the first resolves is rejected with BUSY rather than
// racing the rollback. Dropping a card on its own column is a no-op.
func (b *Board) MoveClient(ctx context.Context, clientID string, newStatus entity.Stage, actor *entity.User) (*entity.Client, error) {
	b.mu.Lock()

	current, ok := b.clients[clientID]
	if !ok {
		b.mu.Unlock()
		return nil, &DomainError{
			Code:    CodeNotFound,
			Message: fmt.Sprintf("client %s is not on the board", clientID),
		}
	}
	if current.Status == newStatus {
		snapshot := current.Clone()
		b.mu.Unlock()
		return snapshot, nil
	}
	if b.inFlight[clientID] {
		b.mu.Unlock()
		return nil, &DomainError{
			Code:    CodeBusy,
			Message: fmt.Sprintf("a status update for client %s is already in flight", clientID),
		}
	}

	// Snapshot, then render the move immediately.
	snapshot := current.Clone()
	optimistic := current.Clone()
	optimistic.Status = newStatus
	optimistic.LastUpdate = time.Now()
	b.clients[clientID] = optimistic
	b.inFlight[clientID] = true
	b.mu.Unlock()

	confirmed, err := b.store.UpdateClientStatus(ctx, clientID, newStatus, actor)

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inFlight, clientID)

	if err != nil {
		// Roll back to the exact pre-move state.
		b.clients[clientID] = snapshot
		if errors.Is(err, entity.ErrClientNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: err.Error()}
		}
		return nil, err
	}

	b.clients[clientID] = confirmed.Clone()
	return confirmed, nil
}
