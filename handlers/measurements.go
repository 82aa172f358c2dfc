package handlers

import (
	"net/http"

	"p9e.in/fabtrack/pkg/records"
	"p9e.in/fabtrack/utils"
)

// ListEntries godoc
// @Summary List a project's measurement sheet
// @Tags measurements
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} models.MeasurementSheetEntry
// @Security BearerAuth
// @Router /api/v1/projects/{id}/measurements [get]
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	projectID, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := h.svc.Measurements.ListEntries(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// AddEntry godoc
// @Summary Add a duct to a project's measurement sheet
// @Description Area is computed as length × width × quantity / 1,000,000 (mm to m²).
// @Tags measurements
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param entry body records.EntryInput true "Entry"
// @Success 201 {object} models.MeasurementSheetEntry
// @Security BearerAuth
// @Router /api/v1/projects/{id}/measurements [post]
func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	projectID, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var in records.EntryInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	entry, err := h.svc.Measurements.AddEntry(r.Context(), projectID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, entry)
}

func (h *Handler) EditEntry(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var in records.EntryInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	entry, err := h.svc.Measurements.EditEntry(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Measurements.DeleteEntry(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AreaByGauge godoc
// @Summary Sheet area per gauge
// @Tags measurements
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} map[string]number
// @Security BearerAuth
// @Router /api/v1/projects/{id}/area-by-gauge [get]
func (h *Handler) AreaByGauge(w http.ResponseWriter, r *http.Request) {
	projectID, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	totals, err := h.svc.Measurements.AreaByGauge(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, totals)
}
