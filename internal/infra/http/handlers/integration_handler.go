package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/globallaw/crm-backend/internal/infra/http/middleware"
	"github.com/globallaw/crm-backend/internal/infra/integration/meta"
	"github.com/globallaw/crm-backend/internal/usecase"
)

// IntegrationHandler is the pass-through surface to the Meta lead-ads API
// plus the batch lead sync. Sync is rate limited per IP; the Graph API has
// its own quota and a stuck retry loop in the frontend must not burn it.
type IntegrationHandler struct {
	Meta        *meta.Client
	Sync        *usecase.SyncLeadsUseCase
	rateLimiter *RateLimiter
}

func NewIntegrationHandler(metaClient *meta.Client, sync *usecase.SyncLeadsUseCase) *IntegrationHandler {
	return &IntegrationHandler{
		Meta:        metaClient,
		Sync:        sync,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

type connectRequest struct {
	AccessToken string `json:"access_token"`
}

type connectResponse struct {
	Profile *meta.UserProfile `json:"profile"`
	Pages   []meta.Page       `json:"pages"`
}

// HandleConnect validates a user access token and lists the pages it grants.
func (h *IntegrationHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.AccessToken == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "access_token is required")
		return
	}

	profile, err := h.Meta.ValidateToken(r.Context(), req.AccessToken)
	if err != nil {
		middleware.RecordIntegrationError("meta")
		respondError(w, &usecase.TechnicalError{Code: usecase.CodeUpstreamError, Message: err.Error()})
		return
	}

	pages, err := h.Meta.GetPages(r.Context(), req.AccessToken)
	if err != nil {
		middleware.RecordIntegrationError("meta")
		respondError(w, &usecase.TechnicalError{Code: usecase.CodeUpstreamError, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, connectResponse{Profile: profile, Pages: pages})
}

// HandleForms lists the lead-gen forms of a page.
func (h *IntegrationHandler) HandleForms(w http.ResponseWriter, r *http.Request) {
	pageID := r.URL.Query().Get("page_id")
	pageToken := r.URL.Query().Get("page_token")
	if pageID == "" || pageToken == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "page_id and page_token are required")
		return
	}

	forms, err := h.Meta.GetForms(r.Context(), pageID, pageToken)
	if err != nil {
		middleware.RecordIntegrationError("meta")
		respondError(w, &usecase.TechnicalError{Code: usecase.CodeUpstreamError, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, forms)
}

// HandleSync imports all not-yet-seen leads of a form.
func (h *IntegrationHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many sync requests, try again later")
		return
	}

	var input usecase.SyncLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if input.FormID == "" || input.PageToken == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "form_id and page_token are required")
		return
	}

	out, err := h.Sync.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordIntegrationError("meta")
		respondError(w, err)
		return
	}

	for i := 0; i < out.Imported; i++ {
		middleware.RecordLeadImported()
	}

	writeJSON(w, http.StatusOK, out)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
