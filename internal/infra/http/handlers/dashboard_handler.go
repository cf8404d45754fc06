package handlers

import (
	"net/http"

	"github.com/globallaw/crm-backend/internal/entity"
	"github.com/globallaw/crm-backend/internal/infra/memstore"
)

type DashboardHandler struct {
	Store *memstore.Store
}

func NewDashboardHandler(store *memstore.Store) *DashboardHandler {
	return &DashboardHandler{Store: store}
}

type stageCount struct {
	Name    string `json:"name"`
	Clients int    `json:"clients"`
}

type dashboardSummary struct {
	TotalClients   int          `json:"totalClients"`
	NewLeads       int          `json:"newLeads"`
	CompletedCases int          `json:"completedCases"`
	Stages         []stageCount `json:"stages"`
}

// HandleSummary aggregates the whole client base per funnel stage. The
// dashboard always shows all clients regardless of the selected user.
func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Store.ListAllClients(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	counts := make(map[entity.Stage]int, len(entity.StageOrder))
	for _, c := range clients {
		counts[c.Status]++
	}

	summary := dashboardSummary{
		TotalClients:   len(clients),
		NewLeads:       counts[entity.StageNewLead],
		CompletedCases: counts[entity.StageCompleted],
		Stages:         make([]stageCount, 0, len(entity.StageOrder)),
	}
	for _, stage := range entity.StageOrder {
		summary.Stages = append(summary.Stages, stageCount{
			Name:    stage.String(),
			Clients: counts[stage],
		})
	}

	writeJSON(w, http.StatusOK, summary)
}
