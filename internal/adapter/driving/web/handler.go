// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/ericfisherdev/myjournal/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/myjournal/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/myjournal/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/myjournal/internal/application"
)

const pageTitle = "My Journal"

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	entrySvc  *application.EntryService
	entryList *application.EntryList
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	entrySvc *application.EntryService,
	entryList *application.EntryList,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		entrySvc:  entrySvc,
		entryList: entryList,
		logger:    logger,
	}
}

// EntryList renders the list page. A failed refresh still renders the last
// known entries, with a banner.
func (h *Handler) EntryList(w http.ResponseWriter, r *http.Request) {
	model := vm.EntryListViewModel{CSRFToken: csrfToken(w, r)}

	if err := h.entryList.Refresh(r.Context()); err != nil {
		h.logger.Error("failed to refresh entry list", "error", err)
		model.Banner = "The journal could not be reloaded. Showing the last known entries."
	}
	model.Rows = toEntryRowViewModels(h.entryList.Entries())

	h.render(w, r, pages.EntryList(model))
}

// EntryDetail renders a single entry with its edit form.
func (h *Handler) EntryDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	entry, err := h.entrySvc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, "failed to get entry", err)
		return
	}

	h.render(w, r, pages.EntryDetail(toEntryDetailViewModel(entry, csrfToken(w, r))))
}

// CreateEntry adds an entry titled from the form, dated now.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	if _, err := h.entrySvc.Create(r.Context(), r.FormValue("title"), time.Time{}); err != nil {
		h.writeError(w, "failed to create entry", err)
		return
	}
	h.refresh(r)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UpdateContent saves the edited content and returns to the detail page.
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.entrySvc.UpdateContent(r.Context(), id, r.FormValue("content")); err != nil {
		h.writeError(w, "failed to update entry", err)
		return
	}
	h.refresh(r)

	http.Redirect(w, r, "/app/entries/"+id.String(), http.StatusSeeOther)
}

// DeleteEntry removes an entry and returns to the list.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.entrySvc.Delete(r.Context(), id); err != nil {
		h.writeError(w, "failed to delete entry", err)
		return
	}
	h.refresh(r)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Layout(pageTitle, page).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) refresh(r *http.Request) {
	if err := h.entryList.Refresh(r.Context()); err != nil {
		h.logger.Warn("entry list refresh failed", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, application.ErrEntryNotFound):
		http.Error(w, "entry not found", http.StatusNotFound)
	case errors.Is(err, application.ErrStorageUnavailable):
		h.logger.Error(msg, "error", err)
		http.Error(w, "journal storage unavailable", http.StatusServiceUnavailable)
	default:
		h.logger.Error(msg, "error", err)
		http.Error(w, "the change could not be saved", http.StatusInternalServerError)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return uuid.UUID{}, false
	}
	return id, true
}
