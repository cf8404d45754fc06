package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/globallaw/crm-backend/internal/entity"
	"github.com/globallaw/crm-backend/internal/infra/memstore"
)

type UserHandler struct {
	Store *memstore.Store
}

func NewUserHandler(store *memstore.Store) *UserHandler {
	return &UserHandler{Store: store}
}

type userRequest struct {
	Name     string                  `json:"name"`
	Email    string                  `json:"email"`
	Role     entity.Role             `json:"role"`
	Whatsapp *entity.WhatsappContact `json:"whatsapp,omitempty"`
}

func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	user, err := entity.NewUser(req.Name, req.Email, req.Role, req.Whatsapp)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Store.CreateUser(r.Context(), user); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "user id is required")
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	user := &entity.User{
		ID:       userID,
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Whatsapp: req.Whatsapp,
	}

	updated, err := h.Store.UpdateUser(r.Context(), user)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "user id is required")
		return
	}

	if err := h.Store.DeleteUser(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
