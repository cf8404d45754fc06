package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Note is a single entry in a client's history. Immutable once created.
type Note struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Text   string    `json:"text"`
	Author string    `json:"author"`
}

// SystemAuthor is the author name used on notes the system writes itself
// (status transitions, lead imports).
const SystemAuthor = "System"

func NewNote(text, author string, at time.Time) Note {
	return Note{
		ID:     uuid.New().String(),
		Date:   at,
		Text:   text,
		Author: author,
	}
}

// Client is a lead or customer moving through the sales funnel.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Service     string    `json:"service"`
	Status      Stage     `json:"status"`
	ContactDate time.Time `json:"contactDate"`
	LastUpdate  time.Time `json:"lastUpdate"`
	AssignedTo  string    `json:"assignedTo"`
	Tags        []string  `json:"tags"`

	// Notes is append-only, in chronological insertion order. Entries are
	// never reordered or deleted.
	Notes []Note `json:"notes"`
}

// NewClient builds a client entering the funnel at the first stage.
func NewClient(name, email, phone, service, assignedTo string, tags []string, now time.Time) (*Client, error) {
	client := &Client{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Phone:       phone,
		Service:     service,
		Status:      StageNewLead,
		ContactDate: now,
		LastUpdate:  now,
		AssignedTo:  assignedTo,
		Tags:        tags,
		Notes:       []Note{},
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}

	return client, nil
}

func (c *Client) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	if !c.Status.IsValid() {
		return ErrInvalidStage
	}
	return nil
}

// AppendNote records an entry in the client history and refreshes LastUpdate.
// LastUpdate never moves backwards even if the caller's clock does.
func (c *Client) AppendNote(note Note) {
	c.Notes = append(c.Notes, note)
	if note.Date.After(c.LastUpdate) {
		c.LastUpdate = note.Date
	}
}

// Clone returns a deep copy. Readers of the store always work on clones, so
// view-layer code can never mutate canonical state.
func (c *Client) Clone() *Client {
	copy := *c
	copy.Tags = append([]string(nil), c.Tags...)
	copy.Notes = append([]Note(nil), c.Notes...)
	return &copy
}
