package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/globallaw/crm-backend/internal/entity"
	"github.com/globallaw/crm-backend/internal/infra/http/middleware"
	"github.com/globallaw/crm-backend/internal/infra/memstore"
	"github.com/globallaw/crm-backend/internal/infra/queue"
	"github.com/globallaw/crm-backend/internal/usecase"
)

// RequesterHeader carries the acting user's id. There is no authentication
// layer in front of this API; the role filter itself is enforced inside the
// store, this header only selects whose view is requested.
const RequesterHeader = "X-User-ID"

type ClientHandler struct {
	Store  *memstore.Store
	Events usecase.QueueProducerInterface
}

func NewClientHandler(store *memstore.Store, events usecase.QueueProducerInterface) *ClientHandler {
	return &ClientHandler{
		Store:  store,
		Events: events,
	}
}

// requester resolves the acting user from the request header.
func (h *ClientHandler) requester(ctx context.Context, r *http.Request) (*entity.User, error) {
	userID := r.Header.Get(RequesterHeader)
	if userID == "" {
		return nil, &usecase.DomainError{
			Code:    usecase.CodeInvalidOperation,
			Message: "missing " + RequesterHeader + " header",
		}
	}
	return h.Store.FindUser(ctx, userID)
}

// HandleList returns the requester's view of the client list: all clients
// for admins, own assignments for advisors.
func (h *ClientHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, err := h.requester(r.Context(), r)
	if err != nil {
		respondError(w, err)
		return
	}

	clients, err := h.Store.ListClients(r.Context(), user)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// HandleListAll returns every client, for dashboard aggregation.
func (h *ClientHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Store.ListAllClients(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	client, err := h.Store.FindClient(r.Context(), clientID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// HandleUpdateStatus is the funnel transition endpoint backing the Kanban
// drag-and-drop. Responds with the full updated client snapshot.
func (h *ClientHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "client id is required")
		return
	}

	user, err := h.requester(r.Context(), r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Status entity.Stage `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	client, err := h.Store.UpdateClientStatus(r.Context(), clientID, req.Status, user)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordStatusTransition(req.Status.String())
	h.publishStatusChanged(r.Context(), client)

	writeJSON(w, http.StatusOK, client)
}

// HandleAddNote appends a manual note to the client history.
func (h *ClientHandler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "client id is required")
		return
	}

	user, err := h.requester(r.Context(), r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "text is required")
		return
	}

	note, err := h.Store.AddNote(r.Context(), clientID, req.Text, user)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// publishStatusChanged emits a notification event for the advisor assigned
// to the client. Failures only get logged; the transition already happened.
func (h *ClientHandler) publishStatusChanged(ctx context.Context, client *entity.Client) {
	if h.Events == nil {
		return
	}

	payload := queue.ClientEventPayload{
		Event:       queue.EventStatusChanged,
		ClientID:    client.ID,
		ClientName:  client.Name,
		ClientEmail: client.Email,
		Stage:       client.Status.String(),
		OccurredAt:  time.Now(),
	}
	if advisor, err := h.Store.FindUser(ctx, client.AssignedTo); err == nil {
		payload.AdvisorName = advisor.Name
		payload.AdvisorEmail = advisor.Email
		if advisor.Whatsapp != nil {
			payload.WhatsappNumber = advisor.Whatsapp.Number
			payload.WhatsappEnabled = advisor.Whatsapp.Enabled
		}
	}

	if err := h.Events.PublishClientEvent(ctx, payload); err != nil {
		log.Printf("⚠️ failed to publish status.changed for %s: %v", client.ID, err)
	}
}
