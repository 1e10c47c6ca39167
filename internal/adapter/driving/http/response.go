package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/myjournal/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// EntryResponse is the JSON representation of a journal entry.
type EntryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	ShortDate string `json:"short_date"`
	Content   string `json:"content"`
}

// EntryHTMLResponse carries an entry's content rendered as sanitized HTML.
type EntryHTMLResponse struct {
	ID   string `json:"id"`
	HTML string `json:"html"`
}

// CreateEntryRequest is the JSON body for the create entry endpoint.
type CreateEntryRequest struct {
	Title string `json:"title"`
}

// UpdateContentRequest is the JSON body for the update content endpoint.
// Content is a pointer so that an absent field can be told apart from "".
type UpdateContentRequest struct {
	Content *string `json:"content"`
}

// ExportResponse reports how many entries an export wrote.
type ExportResponse struct {
	Exported int `json:"exported"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toEntryResponse converts a domain JournalEntry to its JSON response representation.
func toEntryResponse(e model.JournalEntry) EntryResponse {
	return EntryResponse{
		ID:        e.ID.String(),
		Title:     e.Title,
		Date:      e.Date.UTC().Format(time.RFC3339Nano),
		ShortDate: e.ShortDate(),
		Content:   e.Content,
	}
}

func toEntryResponses(entries []model.JournalEntry) []EntryResponse {
	resp := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toEntryResponse(e))
	}
	return resp
}
