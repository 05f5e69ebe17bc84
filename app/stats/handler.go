package stats

import (
	"net/http"

	"github.com/duckcreek/farmstore/app/api"
	"github.com/duckcreek/farmstore/models"
)

type StatsProvider interface {
	ComputeStats() (*models.Stats, error)
}

type StatsHandler struct {
	repo StatsProvider
}

func NewStatsHandler(r StatsProvider) *StatsHandler {
	return &StatsHandler{
		repo: r,
	}
}

// HandleGet recomputes the dashboard summary on every call; nothing is
// cached. Counts are whole-table: inactive products and cancelled orders are
// included.
func (h *StatsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.ComputeStats()
	if err != nil {
		api.WriteInternalError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, stats)
}
