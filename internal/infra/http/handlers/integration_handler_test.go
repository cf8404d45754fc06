package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globallaw/crm-backend/internal/infra/integration/meta"
	"github.com/globallaw/crm-backend/internal/infra/memstore"
	"github.com/globallaw/crm-backend/internal/usecase"
)

// memoryLedger is an in-process ImportLedger for handler tests.
type memoryLedger struct {
	mu  sync.Mutex
	ids map[string]bool
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{ids: make(map[string]bool)}
}

func (l *memoryLedger) Add(ctx context.Context, leadID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids[leadID] = true
	return nil
}

func (l *memoryLedger) Remove(ctx context.Context, leadID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.ids, leadID)
	return nil
}

func (l *memoryLedger) Contains(ctx context.Context, leadID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ids[leadID], nil
}

func newIntegrationHandler(t *testing.T, graphURL string) (*IntegrationHandler, *memstore.Store, *memoryLedger) {
	t.Helper()

	store := memstore.NewStore(0)
	store.Seed()

	ledger := newMemoryLedger()
	metaClient := meta.NewClient(graphURL)
	importer := usecase.NewImportLeadUseCase(store, store, ledger, nil, nil)
	syncLeads := usecase.NewSyncLeadsUseCase(metaClient, ledger, importer)

	return NewIntegrationHandler(metaClient, syncLeads), store, ledger
}

func TestHandleConnect(t *testing.T) {
	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/me":
			w.Write([]byte(`{"id": "10001", "name": "Global Law Corp"}`))
		case "/me/accounts":
			w.Write([]byte(`{"data": [{"id": "page-1", "name": "Main Page", "access_token": "page-token"}]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer graph.Close()

	handler, _, _ := newIntegrationHandler(t, graph.URL)

	req := httptest.NewRequest(http.MethodPost, "/integrations/meta/connect",
		strings.NewReader(`{"access_token": "user-token"}`))
	rec := httptest.NewRecorder()

	handler.HandleConnect(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Global Law Corp")
	assert.Contains(t, rec.Body.String(), "page-1")
}

func TestHandleConnectBadToken(t *testing.T) {
	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Invalid OAuth access token.", "type": "OAuthException", "code": 190}}`))
	}))
	defer graph.Close()

	handler, _, _ := newIntegrationHandler(t, graph.URL)

	req := httptest.NewRequest(http.MethodPost, "/integrations/meta/connect",
		strings.NewReader(`{"access_token": "bad"}`))
	rec := httptest.NewRecorder()

	handler.HandleConnect(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "UPSTREAM_ERROR")
}

func TestHandleConnectMissingToken(t *testing.T) {
	handler, _, _ := newIntegrationHandler(t, "http://graph.invalid")

	req := httptest.NewRequest(http.MethodPost, "/integrations/meta/connect",
		strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.HandleConnect(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSyncImportsLeads(t *testing.T) {
	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/form-1/leads", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [
			{"id": "lead-1", "created_time": "2026-05-01T10:00:00+0000", "field_data": [
				{"name": "full_name", "values": ["Jane Doe"]},
				{"name": "email", "values": ["jane@x.com"]}
			]},
			{"id": "lead-2", "created_time": "2026-05-01T11:00:00+0000", "field_data": [
				{"name": "first_name", "values": ["John"]},
				{"name": "last_name", "values": ["Roe"]}
			]}
		]}`))
	}))
	defer graph.Close()

	handler, store, ledger := newIntegrationHandler(t, graph.URL)

	req := httptest.NewRequest(http.MethodPost, "/integrations/meta/sync",
		strings.NewReader(`{"form_id": "form-1", "page_token": "page-token"}`))
	rec := httptest.NewRecorder()

	handler.HandleSync(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fetched":2`)
	assert.Contains(t, rec.Body.String(), `"imported":2`)

	clients, err := store.ListAllClients(context.Background())
	require.NoError(t, err)
	assert.Len(t, clients, 8, "six seeded plus two imported")

	seen, _ := ledger.Contains(context.Background(), "lead-1")
	assert.True(t, seen)

	// A second sync of the same form imports nothing new.
	req = httptest.NewRequest(http.MethodPost, "/integrations/meta/sync",
		strings.NewReader(`{"form_id": "form-1", "page_token": "page-token"}`))
	rec = httptest.NewRecorder()

	handler.HandleSync(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":0`)

	clients, err = store.ListAllClients(context.Background())
	require.NoError(t, err)
	assert.Len(t, clients, 8)
}

func TestHandleSyncValidation(t *testing.T) {
	handler, _, _ := newIntegrationHandler(t, "http://graph.invalid")

	req := httptest.NewRequest(http.MethodPost, "/integrations/meta/sync",
		strings.NewReader(`{"form_id": "form-1"}`))
	rec := httptest.NewRecorder()

	handler.HandleSync(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"))
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// A different IP keeps its own budget.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.10:54321"
	assert.Equal(t, "192.168.1.10:54321", getClientIP(req))

	req.Header.Set("X-Real-IP", "203.0.113.5")
	assert.Equal(t, "203.0.113.5", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", getClientIP(req))
}
