package handlers

import (
	"log"
	"net/http"
	"strconv"

	repo "github.com/shaikazeem2001/inventory/internal/repo"
)

// GetLogsHandler godoc
// @Summary Recent activity
// @Description Newest first, at most 100 entries.
// @Tags logs
// @Produce json
// @Param limit query int false "Maximum number of entries (default and cap 100)"
// @Success 200 {array} models.ActivityLog
// @Failure 400 {object} MessageResult "Invalid limit"
// @Failure 500 {object} MessageResult "Internal error"
// @Router /api/logs [get]
// @Security BearerAuth
func GetLogsHandler(w http.ResponseWriter, r *http.Request) {
	limit := repo.DefaultLogLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}

	logs, err := activityRepo.List(r.Context(), limit)
	if err != nil {
		log.Printf("failed to list activity logs: %v", err)
		writeError(w, http.StatusInternalServerError, "could not fetch logs")
		return
	}
	respond(w, http.StatusOK, logs)
}
