package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Web routes serve HTML at / and /app/* paths.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Page routes.
	mux.HandleFunc("GET /{$}", h.EntryList)
	mux.HandleFunc("GET /app/entries/{id}", h.EntryDetail)

	// Form posts. Each redirects with 303 See Other.
	mux.HandleFunc("POST /app/entries", h.CreateEntry)
	mux.HandleFunc("POST /app/entries/{id}/content", h.UpdateContent)
	mux.HandleFunc("POST /app/entries/{id}/delete", h.DeleteEntry)
}
