package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"p9e.in/fabtrack/middleware"
	"p9e.in/fabtrack/pkg/drawings"
	"p9e.in/fabtrack/pkg/records"
)

// Handler serves the HTTP API on top of the record services.
type Handler struct {
	db        *gorm.DB
	svc       *records.Services
	drawings  drawings.Store
	tokens    *middleware.TokenIssuer
	log       *zap.Logger
	maxUpload int64
}

// Options configures New.
type Options struct {
	// MaxUploadMB caps multipart request bodies; 0 means 50 MB.
	MaxUploadMB int64
}

func New(db *gorm.DB, svc *records.Services, store drawings.Store, tokens *middleware.TokenIssuer, log *zap.Logger, opts Options) *Handler {
	maxUpload := opts.MaxUploadMB
	if maxUpload <= 0 {
		maxUpload = 50
	}
	return &Handler{
		db:        db,
		svc:       svc,
		drawings:  store,
		tokens:    tokens,
		log:       log,
		maxUpload: maxUpload << 20,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are already out; the client sees a truncated body
		h.log.Warn("Failed to write response", zap.Int("status", status), zap.Error(err))
	}
}

func (h *Handler) writeMessage(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, records.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, records.ErrNotFound), errors.Is(err, drawings.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, records.ErrDuplicate), errors.Is(err, records.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, records.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err to the client. Internal errors are logged and
// replaced with a generic message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("Request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r)))
		h.writeMessage(w, status, "internal server error")
		return
	}
	h.writeMessage(w, status, err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	return json.NewDecoder(r.Body).Decode(v)
}
