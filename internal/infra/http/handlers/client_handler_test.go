package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globallaw/crm-backend/internal/entity"
	"github.com/globallaw/crm-backend/internal/infra/memstore"
	"github.com/globallaw/crm-backend/internal/infra/queue"
)

// recordingProducer captures published events instead of touching a broker.
type recordingProducer struct {
	mu     sync.Mutex
	events []queue.ClientEventPayload
}

func (p *recordingProducer) PublishClientEvent(ctx context.Context, payload queue.ClientEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload)
	return nil
}

func newClientRouter(t *testing.T) (*chi.Mux, *memstore.Store, *recordingProducer) {
	t.Helper()

	store := memstore.NewStore(0)
	store.Seed()

	producer := &recordingProducer{}
	handler := NewClientHandler(store, producer)

	router := chi.NewRouter()
	router.Get("/clients", handler.HandleList)
	router.Get("/clients/all", handler.HandleListAll)
	router.Get("/clients/{id}", handler.HandleGet)
	router.Put("/clients/{id}/status", handler.HandleUpdateStatus)
	router.Post("/clients/{id}/notes", handler.HandleAddNote)

	return router, store, producer
}

func TestListClientsAsAdmin(t *testing.T) {
	router, _, _ := newClientRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set(RequesterHeader, entity.MainAdminID)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var clients []*entity.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clients))
	assert.Len(t, clients, 6, "admins see the whole base")
}

func TestListClientsAsAdvisor(t *testing.T) {
	router, _, _ := newClientRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set(RequesterHeader, "user-2")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var clients []*entity.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clients))
	require.Len(t, clients, 3)
	for _, c := range clients {
		assert.Equal(t, "user-2", c.AssignedTo)
	}
}

func TestListClientsMissingRequesterHeader(t *testing.T) {
	router, _, _ := newClientRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_OPERATION")
}

func TestListClientsUnknownRequester(t *testing.T) {
	router, _, _ := newClientRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set(RequesterHeader, "user-999")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetClient(t *testing.T) {
	router, _, _ := newClientRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/clients/client-1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var client entity.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))
	assert.Equal(t, "Innovate Corp", client.Name)
	assert.Equal(t, entity.StageNewLead, client.Status)
}

func TestGetClientNotFound(t *testing.T) {
	router, _, _ := newClientRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/clients/client-999", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestUpdateClientStatus(t *testing.T) {
	router, _, producer := newClientRouter(t)

	body := strings.NewReader(`{"status": "Contactado"}`)
	req := httptest.NewRequest(http.MethodPut, "/clients/client-1/status", body)
	req.Header.Set(RequesterHeader, entity.MainAdminID)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var client entity.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))
	assert.Equal(t, entity.StageContacted, client.Status)

	// The transition appended an audit note authored by the acting user.
	require.NotEmpty(t, client.Notes)
	last := client.Notes[len(client.Notes)-1]
	assert.Equal(t, `Status changed to "Contactado"`, last.Text)
	assert.Equal(t, "Admin", last.Author)

	require.Len(t, producer.events, 1)
	assert.Equal(t, queue.EventStatusChanged, producer.events[0].Event)
	assert.Equal(t, "client-1", producer.events[0].ClientID)
	assert.Equal(t, "Ana García", producer.events[0].AdvisorName)
	assert.True(t, producer.events[0].WhatsappEnabled)
}

func TestUpdateClientStatusInvalidStage(t *testing.T) {
	router, _, producer := newClientRouter(t)

	body := strings.NewReader(`{"status": "Archivado"}`)
	req := httptest.NewRequest(http.MethodPut, "/clients/client-1/status", body)
	req.Header.Set(RequesterHeader, entity.MainAdminID)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, producer.events)
}

func TestUpdateClientStatusUnknownClient(t *testing.T) {
	router, _, _ := newClientRouter(t)

	body := strings.NewReader(`{"status": "Contactado"}`)
	req := httptest.NewRequest(http.MethodPut, "/clients/client-999/status", body)
	req.Header.Set(RequesterHeader, entity.MainAdminID)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddNote(t *testing.T) {
	router, store, _ := newClientRouter(t)

	body := strings.NewReader(`{"text": "Client asked for a call on Monday."}`)
	req := httptest.NewRequest(http.MethodPost, "/clients/client-2/notes", body)
	req.Header.Set(RequesterHeader, "user-2")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var note entity.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &note))
	assert.Equal(t, "Client asked for a call on Monday.", note.Text)
	assert.Equal(t, "Ana García", note.Author)

	client, err := store.FindClient(context.Background(), "client-2")
	require.NoError(t, err)
	assert.Len(t, client.Notes, 2)
}

func TestAddNoteRejectsEmptyText(t *testing.T) {
	router, _, _ := newClientRouter(t)

	body := strings.NewReader(`{"text": ""}`)
	req := httptest.NewRequest(http.MethodPost, "/clients/client-2/notes", body)
	req.Header.Set(RequesterHeader, "user-2")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}
