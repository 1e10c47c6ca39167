// Package httphandler implements the JSON REST API driving adapter.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/myjournal/internal/adapter/driving/web"
	"github.com/ericfisherdev/myjournal/internal/application"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	entrySvc  *application.EntryService
	entryList *application.EntryList
	exportSvc *application.ExportService
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. exportSvc may
// be nil, in which case the export endpoint answers 503.
func NewHandler(
	entrySvc *application.EntryService,
	entryList *application.EntryList,
	exportSvc *application.ExportService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		entrySvc:  entrySvc,
		entryList: entryList,
		exportSvc: exportSvc,
		logger:    logger,
	}
}

// RegisterAPIRoutes registers all REST API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/entries", h.ListEntries)
	mux.HandleFunc("POST /api/v1/entries", h.CreateEntry)
	mux.HandleFunc("GET /api/v1/list/{index}", h.GetEntryAt)
	mux.HandleFunc("GET /api/v1/entries/{id}", h.GetEntry)
	mux.HandleFunc("GET /api/v1/entries/{id}/html", h.GetEntryHTML)
	mux.HandleFunc("PUT /api/v1/entries/{id}/content", h.UpdateContent)
	mux.HandleFunc("DELETE /api/v1/entries/{id}", h.DeleteEntry)
	mux.HandleFunc("POST /api/v1/export", h.ExportEntries)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// ApplyMiddleware wraps handler with logging and recovery middleware.
func ApplyMiddleware(handler http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, handler)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// ListEntries refreshes the projection and returns every entry, newest first.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	if err := h.entryList.Refresh(r.Context()); err != nil {
		h.writeServiceError(w, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponses(h.entryList.Entries()))
}

// CreateEntry creates an entry dated now with empty content.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.entrySvc.Create(r.Context(), req.Title, time.Time{})
	if err != nil {
		h.writeServiceError(w, "failed to create entry", err)
		return
	}
	h.refresh(r)

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// GetEntry returns a single entry by id.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	entry, err := h.entrySvc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "failed to get entry", err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// GetEntryAt resolves a zero-based list position to its entry.
func (h *Handler) GetEntryAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}

	entry, err := h.entryList.EntryAt(index)
	if err != nil {
		h.writeServiceError(w, "failed to resolve entry index", err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// GetEntryHTML returns an entry's content rendered from markdown.
func (h *Handler) GetEntryHTML(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	entry, err := h.entrySvc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "failed to get entry", err)
		return
	}

	writeJSON(w, http.StatusOK, EntryHTMLResponse{
		ID:   entry.ID.String(),
		HTML: web.RenderMarkdown(entry.Content),
	})
}

// UpdateContent replaces an entry's content and returns the updated entry.
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == nil {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	if err := h.entrySvc.UpdateContent(r.Context(), id, *req.Content); err != nil {
		h.writeServiceError(w, "failed to update entry", err)
		return
	}
	h.refresh(r)

	entry, err := h.entrySvc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "failed to get entry", err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// DeleteEntry removes an entry.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.entrySvc.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, "failed to delete entry", err)
		return
	}
	h.refresh(r)

	w.WriteHeader(http.StatusNoContent)
}

// ExportEntries writes the journal to the export directory now.
func (h *Handler) ExportEntries(w http.ResponseWriter, r *http.Request) {
	if h.exportSvc == nil {
		writeError(w, http.StatusServiceUnavailable, "export not configured")
		return
	}

	count, err := h.exportSvc.ExportNow(r.Context())
	if err != nil {
		h.logger.Error("failed to export entries", "exported", count, "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	writeJSON(w, http.StatusOK, ExportResponse{Exported: count})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// refresh re-derives the projection after a committed mutation. The mutation
// already succeeded, so a failed refresh is logged and not reported.
func (h *Handler) refresh(r *http.Request) {
	if err := h.entryList.Refresh(r.Context()); err != nil {
		h.logger.Warn("entry list refresh failed", "error", err)
	}
}

// writeServiceError maps application errors to HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, application.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "entry not found")
	case errors.Is(err, application.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, "index out of range")
	case errors.Is(err, application.ErrStorageUnavailable):
		h.logger.Error(msg, "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		h.logger.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return uuid.UUID{}, false
	}
	return id, true
}
