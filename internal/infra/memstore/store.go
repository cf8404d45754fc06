package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/globallaw/crm-backend/internal/entity"
)

// Store is the in-process backend holding the canonical user and client
// collections. Every operation runs as a single critical section under one
// mutex, so per-client mutations are serialized and reads always observe a
// client with its status and notes consistent with each other.
//
// All inputs are cloned on write and all outputs are cloned on read; callers
// never hold references into canonical state.
type Store struct {
	mu      sync.Mutex
	latency time.Duration
	now     func() time.Time

	users   []*entity.User
	clients []*entity.Client
}

// NewStore builds an empty store. latency is the artificial per-operation
// delay simulating network round-trips; zero disables it.
func NewStore(latency time.Duration) *Store {
	return &Store{
		latency: latency,
		now:     time.Now,
	}
}

// wait applies the artificial latency. It is the only suspension point in the
// store and respects caller cancellation.
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) findUser(id string) (*entity.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (s *Store) findClient(id string) (*entity.Client, error) {
	for _, c := range s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, entity.ErrClientNotFound
}

// ListUsers returns all user accounts.
func (s *Store) ListUsers(ctx context.Context) ([]*entity.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

// FindUser resolves a user id, typically the requester taken from the
// X-User-ID header.
func (s *Store) FindUser(ctx context.Context, id string) (*entity.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.findUser(id)
	if err != nil {
		return nil, err
	}
	return u.Clone(), nil
}

// CreateUser inserts a new user account.
func (s *Store) CreateUser(ctx context.Context, user *entity.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, user.Clone())
	return nil
}

// UpdateUser replaces a user record. The main admin account keeps its Admin
// role no matter what the caller sends.
func (s *Store) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.findUser(user.ID)
	if err != nil {
		return nil, err
	}
	if user.ID == entity.MainAdminID && user.Role != entity.RoleAdmin {
		return nil, fmt.Errorf("%w: cannot change the role of the main admin account", entity.ErrInvalidOperation)
	}

	*existing = *user.Clone()
	return existing.Clone(), nil
}

// DeleteUser removes a user account. The main admin is immune, and a user
// still referenced as assigned advisor by any client cannot be deleted.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == entity.MainAdminID {
		return fmt.Errorf("%w: cannot delete the main admin account", entity.ErrInvalidOperation)
	}
	if _, err := s.findUser(userID); err != nil {
		return err
	}
	for _, c := range s.clients {
		if c.AssignedTo == userID {
			return fmt.Errorf("%w: cannot delete user, reassign their clients first", entity.ErrInvalidOperation)
		}
	}

	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	s.users = kept
	return nil
}

// ListClients returns the clients visible to the requesting user: admins see
// everything, advisors only their own assignments. The filter lives here so
// no caller can bypass it.
func (s *Store) ListClients(ctx context.Context, requester *entity.User) ([]*entity.Client, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Client, 0, len(s.clients))
	for _, c := range s.clients {
		if requester.IsAdmin() || c.AssignedTo == requester.ID {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

// ListAllClients returns every client unfiltered, for dashboard aggregation.
func (s *Store) ListAllClients(ctx context.Context) ([]*entity.Client, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c.Clone())
	}
	return out, nil
}

// FindClient resolves a single client by id.
func (s *Store) FindClient(ctx context.Context, id string) (*entity.Client, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.findClient(id)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

// CreateClient inserts a new client at the head of the collection, so fresh
// leads show up first in list views.
func (s *Store) CreateClient(ctx context.Context, client *entity.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = append([]*entity.Client{client.Clone()}, s.clients...)
	return nil
}

// UpdateClientStatus is the funnel transition. Moving a client to the stage
// it is already in is a no-op: no note, no LastUpdate bump, so redundant drag
// gestures leave no trace. An actual change sets the status, refreshes
// LastUpdate and appends one system audit note, all with the same timestamp.
// Returns a full fresh snapshot of the updated client.
func (s *Store) UpdateClientStatus(ctx context.Context, clientID string, newStatus entity.Stage, actor *entity.User) (*entity.Client, error) {
	if !newStatus.IsValid() {
		return nil, entity.ErrInvalidStage
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.findClient(clientID)
	if err != nil {
		return nil, err
	}

	if client.Status == newStatus {
		return client.Clone(), nil
	}

	now := s.now()
	// LastUpdate is strictly monotonic even on clock-resolution collisions.
	if !now.After(client.LastUpdate) {
		now = client.LastUpdate.Add(time.Nanosecond)
	}

	client.Status = newStatus
	client.LastUpdate = now
	client.Notes = append(client.Notes, entity.NewNote(
		fmt.Sprintf("Status changed to %q", newStatus),
		actor.Name,
		now,
	))

	return client.Clone(), nil
}

// AddNote appends a manually written note. Unlike status transitions there is
// no no-op suppression: every append refreshes LastUpdate.
func (s *Store) AddNote(ctx context.Context, clientID, text string, author *entity.User) (*entity.Note, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.findClient(clientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !now.After(client.LastUpdate) {
		now = client.LastUpdate.Add(time.Nanosecond)
	}

	note := entity.NewNote(text, author.Name, now)
	client.Notes = append(client.Notes, note)
	client.LastUpdate = now

	return &note, nil
}
