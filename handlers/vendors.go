package handlers

import (
	"net/http"

	"p9e.in/fabtrack/pkg/records"
	"p9e.in/fabtrack/utils"
)

// ListVendors godoc
// @Summary List vendors
// @Tags vendors
// @Produce json
// @Success 200 {array} models.Vendor
// @Security BearerAuth
// @Router /api/v1/vendors [get]
func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.svc.Vendors.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, vendors)
}

// VendorNames returns vendor names for client pickers.
func (h *Handler) VendorNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Vendors.Names(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, names)
}

// CreateVendor godoc
// @Summary Create a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param vendor body records.VendorInput true "Vendor"
// @Success 201 {object} models.Vendor
// @Failure 400 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/vendors [post]
func (h *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var in records.VendorInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	vendor, err := h.svc.Vendors.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, vendor)
}

func (h *Handler) GetVendor(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	vendor, err := h.svc.Vendors.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, vendor)
}

func (h *Handler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var in records.VendorInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	vendor, err := h.svc.Vendors.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, vendor)
}

func (h *Handler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Vendors.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
