package handlers

import (
	"net/http"

	"p9e.in/fabtrack/pkg/records"
	"p9e.in/fabtrack/utils"
)

type stagesResponse struct {
	ProjectID       uint           `json:"project_id"`
	Stages          records.Stages `json:"stages"`
	OverallProgress float64        `json:"overall_progress"`
}

// GetProduction godoc
// @Summary Production stages of a project
// @Tags production
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} stagesResponse
// @Security BearerAuth
// @Router /api/v1/projects/{id}/production [get]
func (h *Handler) GetProduction(w http.ResponseWriter, r *http.Request) {
	projectID, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	stages, err := h.svc.Production.GetStages(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stagesResponse{ProjectID: projectID, Stages: stages, OverallProgress: stages.Overall()})
}

// SetProduction godoc
// @Summary Update production stages
// @Description Partial update: stages missing from the body keep their value. Each stage is 0 to 100.
// @Tags production
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param stages body records.StageUpdate true "Stages"
// @Success 200 {object} stagesResponse
// @Security BearerAuth
// @Router /api/v1/projects/{id}/production [put]
func (h *Handler) SetProduction(w http.ResponseWriter, r *http.Request) {
	projectID, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var u records.StageUpdate
	if err := decodeJSON(w, r, &u); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	stages, err := h.svc.Production.SetStages(r.Context(), projectID, u)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stagesResponse{ProjectID: projectID, Stages: stages, OverallProgress: stages.Overall()})
}

// ProductionView godoc
// @Summary Finalized projects with their production progress
// @Tags production
// @Produce json
// @Success 200 {array} records.ProductionRow
// @Security BearerAuth
// @Router /api/v1/production [get]
func (h *Handler) ProductionView(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Production.ProductionView(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rows)
}
