package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/globallaw/crm-backend/internal/entity"
	"github.com/globallaw/crm-backend/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// respondError maps store/usecase failures onto HTTP statuses and stable
// error codes the frontend keys its toasts on.
func respondError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusConflict
		switch domainErr.Code {
		case usecase.CodeNotFound:
			status = http.StatusNotFound
		case usecase.CodeInvalidOperation:
			status = http.StatusBadRequest
		}
		writeError(w, status, domainErr.Code, domainErr.Message)
		return
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		status := http.StatusInternalServerError
		if techErr.Code == usecase.CodeUpstreamError {
			status = http.StatusBadGateway
		}
		writeError(w, status, techErr.Code, techErr.Message)
		return
	}

	switch {
	case errors.Is(err, entity.ErrClientNotFound), errors.Is(err, entity.ErrUserNotFound):
		writeError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
	case errors.Is(err, entity.ErrInvalidOperation):
		writeError(w, http.StatusConflict, usecase.CodeInvalidOperation, err.Error())
	case errors.Is(err, entity.ErrInvalidStage):
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidOperation, err.Error())
	case errors.Is(err, entity.ErrLeadAlreadyImported):
		writeError(w, http.StatusConflict, usecase.CodeAlreadyImported, err.Error())
	case errors.Is(err, entity.ErrNoAdvisorsAvailable):
		writeError(w, http.StatusConflict, usecase.CodeNoAdvisorsAvailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
