package handlers

import (
	"net/http"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/services/chatbot"
	"github.com/gorilla/mux"
)

// StatsHandler serves the learning diagnostics endpoint
type StatsHandler struct {
	stats *chatbot.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats *chatbot.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// RegisterRoutes registers stats routes. Mount behind required auth.
func (h *StatsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/learning-stats", h.GetLearningStats).Methods("GET")
}

// GetLearningStats returns the learning layer summary. The service degrades
// to a zero-valued summary on persistence failure, so this always succeeds.
func (h *StatsHandler) GetLearningStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stats.GetLearningStats(r.Context()))
}
