package handlers

import (
	"log"
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics for admin view
// @Tags metrics
// @Produce json
// @Success 200 {object} repo.Metrics
// @Failure 500 {object} MessageResult "Internal error"
// @Router /api/metrics/dashboard [get]
// @Security BearerAuth
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := metricsRepo.GetDashboardMetrics(r.Context(), lowStockThreshold)
	if err != nil {
		log.Printf("failed to fetch metrics: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch metrics")
		return
	}
	respond(w, http.StatusOK, m)
}
