package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"p9e.in/fabtrack/models"
	"p9e.in/fabtrack/pkg/records"
	"p9e.in/fabtrack/utils"
)

// uploadedDrawing is a drawing saved while handling the current request.
type uploadedDrawing struct {
	name string
}

// readProjectRequest decodes a project from JSON or, for multipart bodies,
// from form fields plus an optional "drawing" file. A stored drawing is
// returned so the caller can remove it if the write fails.
func (h *Handler) readProjectRequest(w http.ResponseWriter, r *http.Request) (records.ProjectInput, *uploadedDrawing, error) {
	var in records.ProjectInput
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := decodeJSON(w, r, &in); err != nil {
			return in, nil, fmt.Errorf("%w: invalid JSON", records.ErrValidation)
		}
		return in, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return in, nil, fmt.Errorf("%w: bad multipart form: %v", records.ErrValidation, err)
	}
	in = records.ProjectInput{
		EnquiryID:    r.FormValue("enquiry_id"),
		Client:       r.FormValue("client"),
		QuotationRef: r.FormValue("quotation_ref"),
		Location:     r.FormValue("location"),
		GSTNumber:    r.FormValue("gst_number"),
		Address:      r.FormValue("address"),
		Incharge:     r.FormValue("incharge"),
		Notes:        r.FormValue("notes"),
	}
	var err error
	if in.StartDate, err = models.ParseDate(r.FormValue("start_date")); err != nil {
		return in, nil, fmt.Errorf("%w: start_date: %v", records.ErrValidation, err)
	}
	if in.EndDate, err = models.ParseDate(r.FormValue("end_date")); err != nil {
		return in, nil, fmt.Errorf("%w: end_date: %v", records.ErrValidation, err)
	}

	file, header, err := r.FormFile("drawing")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, nil
	}
	if err != nil {
		return in, nil, fmt.Errorf("%w: drawing: %v", records.ErrValidation, err)
	}
	defer file.Close()

	name, err := h.drawings.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		h.log.Error("Failed to store drawing", zap.String("file", header.Filename), zap.Error(err))
		return in, nil, err
	}
	in.SourceDrawing = name
	return in, &uploadedDrawing{name: name}, nil
}

// discardDrawing removes a drawing that no project refers to.
func (h *Handler) discardDrawing(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := h.drawings.Delete(ctx, name); err != nil {
		h.log.Error("Failed to delete drawing", zap.String("drawing", name), zap.Error(err))
	}
}

// ListProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param status query string false "preparation or completed"
// @Success 200 {array} models.Project
// @Security BearerAuth
// @Router /api/v1/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	var (
		projects []models.Project
		err      error
	)
	switch status := models.DesignStatus(r.URL.Query().Get("status")); status {
	case "":
		projects, err = h.svc.Projects.List(r.Context())
	case models.DesignPreparation, models.DesignCompleted:
		projects, err = h.svc.Projects.ListByStatus(r.Context(), status)
	default:
		h.writeMessage(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", status))
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, projects)
}

// CreateProject godoc
// @Summary Create a project
// @Description Accepts JSON, or multipart/form-data with the same fields and an optional "drawing" file. Without enquiry_id one is allocated.
// @Tags projects
// @Accept json,mpfd
// @Produce json
// @Param project body records.ProjectInput true "Project"
// @Success 201 {object} models.Project
// @Failure 409 {object} errorResponse "enquiry id taken"
// @Security BearerAuth
// @Router /api/v1/projects [post]
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	in, upload, err := h.readProjectRequest(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	project, err := h.svc.Projects.Create(r.Context(), in)
	if err != nil {
		if upload != nil {
			h.discardDrawing(r.Context(), upload.name)
		}
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, project)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.svc.Projects.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, project)
}

// UpdateProject replaces the editable fields. A new drawing replaces the
// stored one, which is then deleted.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	current, err := h.svc.Projects.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	in, upload, err := h.readProjectRequest(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	project, err := h.svc.Projects.Update(r.Context(), id, in)
	if err != nil {
		if upload != nil {
			h.discardDrawing(r.Context(), upload.name)
		}
		h.writeError(w, r, err)
		return
	}
	if upload != nil && current.SourceDrawing != project.SourceDrawing {
		h.discardDrawing(r.Context(), current.SourceDrawing)
	}
	h.writeJSON(w, http.StatusOK, project)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.svc.Projects.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.Projects.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.discardDrawing(r.Context(), project.SourceDrawing)
	w.WriteHeader(http.StatusNoContent)
}

// FinalizeProject godoc
// @Summary Finalize a project's design
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project
// @Failure 409 {object} errorResponse "already finalized"
// @Security BearerAuth
// @Router /api/v1/projects/{id}/finalize [post]
func (h *Handler) FinalizeProject(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.svc.Projects.FinalizeDesign(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, project)
}

// GetDrawing streams the project's stored drawing.
func (h *Handler) GetDrawing(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.svc.Projects.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if project.SourceDrawing == "" {
		h.writeMessage(w, http.StatusNotFound, "project has no drawing")
		return
	}
	rc, err := h.drawings.Open(r.Context(), project.SourceDrawing)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(project.SourceDrawing))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", project.SourceDrawing))
	if _, err := io.Copy(w, rc); err != nil {
		h.log.Warn("Drawing download interrupted", zap.String("drawing", project.SourceDrawing), zap.Error(err))
	}
}
