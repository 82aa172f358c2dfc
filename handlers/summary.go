package handlers

import (
	"net/http"

	"p9e.in/fabtrack/utils"
)

// GetSummary godoc
// @Summary Project summary
// @Tags summary
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} records.ProjectSummary
// @Security BearerAuth
// @Router /api/v1/projects/{id}/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	projectID, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := h.svc.Summaries.BuildSummary(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// Dashboard godoc
// @Summary Headline counts
// @Tags summary
// @Produce json
// @Success 200 {object} records.DashboardStats
// @Security BearerAuth
// @Router /api/v1/dashboard [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Dashboard.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
