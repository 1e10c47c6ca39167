package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/ericfisherdev/myjournal/internal/adapter/driving/http"
	"github.com/ericfisherdev/myjournal/internal/application"
	"github.com/ericfisherdev/myjournal/internal/domain/model"
	"github.com/ericfisherdev/myjournal/internal/domain/port/driven"
)

// --- Mock implementations ---

type mockEntryStore struct {
	committed []model.JournalEntry
	staged    []func()

	fetchErr  error
	commitErr error
}

func (m *mockEntryStore) Fetch(_ context.Context) ([]model.JournalEntry, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	out := slices.Clone(m.committed)
	slices.SortStableFunc(out, func(a, b model.JournalEntry) int { return b.Date.Compare(a.Date) })
	return out, nil
}

func (m *mockEntryStore) Insert(_ context.Context, entry model.JournalEntry) error {
	m.staged = append(m.staged, func() { m.committed = append(m.committed, entry) })
	return nil
}

func (m *mockEntryStore) Update(_ context.Context, entry model.JournalEntry) error {
	if m.index(entry.ID) < 0 {
		return driven.ErrEntryNotFound
	}
	m.staged = append(m.staged, func() { m.committed[m.index(entry.ID)].Content = entry.Content })
	return nil
}

func (m *mockEntryStore) Delete(_ context.Context, id uuid.UUID) error {
	if m.index(id) < 0 {
		return driven.ErrEntryNotFound
	}
	m.staged = append(m.staged, func() {
		i := m.index(id)
		m.committed = slices.Delete(m.committed, i, i+1)
	})
	return nil
}

func (m *mockEntryStore) Commit(_ context.Context) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	for _, apply := range m.staged {
		apply()
	}
	m.staged = nil
	return nil
}

func (m *mockEntryStore) Rollback(_ context.Context) error {
	m.staged = nil
	return nil
}

func (m *mockEntryStore) index(id uuid.UUID) int {
	return slices.IndexFunc(m.committed, func(e model.JournalEntry) bool { return e.ID == id })
}

// --- Test helpers ---

var baseTime = time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

type testEnv struct {
	store *mockEntryStore
	svc   *application.EntryService
	mux   http.Handler
}

func setupHandler(t *testing.T, seed ...model.JournalEntry) *testEnv {
	t.Helper()

	store := &mockEntryStore{committed: seed}
	svc := application.NewEntryService(store)
	_, err := svc.LoadAll(context.Background())
	require.NoError(t, err)

	list := application.NewEntryList(svc)
	logger := slog.New(slog.DiscardHandler)
	h := httphandler.NewHandler(svc, list, nil, logger)

	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, h)

	return &testEnv{store: store, svc: svc, mux: httphandler.ApplyMiddleware(mux, logger)}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func makeEntry(title, content string, at time.Time) model.JournalEntry {
	e := model.NewJournalEntry(title, at)
	e.Content = content
	return e
}

func decodeEntries(t *testing.T, rec *httptest.ResponseRecorder) []httphandler.EntryResponse {
	t.Helper()
	var resp []httphandler.EntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func decodeEntry(t *testing.T, rec *httptest.ResponseRecorder) httphandler.EntryResponse {
	t.Helper()
	var resp httphandler.EntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// --- Tests ---

func TestListEntries_Empty(t *testing.T) {
	env := setupHandler(t)

	rec := env.do(t, http.MethodGet, "/api/v1/entries", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListEntries_NewestFirst(t *testing.T) {
	run := makeEntry("Morning run", "", baseTime)
	lunch := makeEntry("Lunch", "", baseTime.Add(5*time.Hour))
	env := setupHandler(t, run, lunch)

	rec := env.do(t, http.MethodGet, "/api/v1/entries", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEntries(t, rec)
	require.Len(t, resp, 2)
	assert.Equal(t, lunch.ID.String(), resp[0].ID)
	assert.Equal(t, run.ID.String(), resp[1].ID)
	assert.Equal(t, "2026-03-01T12:00:00Z", resp[0].Date)
}

func TestListEntries_StorageUnavailable(t *testing.T) {
	env := setupHandler(t, makeEntry("a", "", baseTime))
	env.store.fetchErr = errors.New("unable to open database file")

	rec := env.do(t, http.MethodGet, "/api/v1/entries", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "storage unavailable")
}

func TestCreateEntry(t *testing.T) {
	env := setupHandler(t, makeEntry("old", "", baseTime))

	rec := env.do(t, http.MethodPost, "/api/v1/entries", `{"title":"Lunch"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeEntry(t, rec)
	assert.Equal(t, "Lunch", created.Title)
	assert.Empty(t, created.Content)

	first := env.do(t, http.MethodGet, "/api/v1/list/0", "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, created.ID, decodeEntry(t, first).ID)
}

func TestCreateEntry_EmptyTitleAccepted(t *testing.T) {
	env := setupHandler(t)

	rec := env.do(t, http.MethodPost, "/api/v1/entries", `{}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "", decodeEntry(t, rec).Title)
}

func TestCreateEntry_InvalidBody(t *testing.T) {
	env := setupHandler(t)

	rec := env.do(t, http.MethodPost, "/api/v1/entries", `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEntry_WriteFailed(t *testing.T) {
	env := setupHandler(t)
	env.store.commitErr = errors.New("disk I/O error")

	rec := env.do(t, http.MethodPost, "/api/v1/entries", `{"title":"Lunch"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, env.svc.Snapshot())
}

func TestGetEntry(t *testing.T) {
	e := makeEntry("Lunch", "Pasta", baseTime)
	env := setupHandler(t, e)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"found", "/api/v1/entries/" + e.ID.String(), http.StatusOK},
		{"unknown id", "/api/v1/entries/" + uuid.NewString(), http.StatusNotFound},
		{"malformed id", "/api/v1/entries/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetEntryAt(t *testing.T) {
	older := makeEntry("older", "", baseTime)
	newer := makeEntry("newer", "", baseTime.Add(time.Hour))
	env := setupHandler(t, older, newer)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/entries", "").Code)

	tests := []struct {
		index      string
		wantStatus int
		wantID     string
	}{
		{"0", http.StatusOK, newer.ID.String()},
		{"1", http.StatusOK, older.ID.String()},
		{"2", http.StatusNotFound, ""},
		{"-1", http.StatusNotFound, ""},
		{"abc", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.index, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/list/"+tt.index, "")
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, decodeEntry(t, rec).ID)
			}
		})
	}
}

func TestUpdateContent(t *testing.T) {
	e := makeEntry("Lunch", "", baseTime)
	env := setupHandler(t, e)

	rec := env.do(t, http.MethodPut, "/api/v1/entries/"+e.ID.String()+"/content", `{"content":"Pasta"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEntry(t, rec)
	assert.Equal(t, "Pasta", resp.Content)
	assert.Equal(t, "Lunch", resp.Title)
	assert.Equal(t, "Pasta", env.store.committed[0].Content)
}

func TestUpdateContent_Errors(t *testing.T) {
	e := makeEntry("Lunch", "", baseTime)

	tests := []struct {
		name       string
		id         string
		body       string
		commitErr  error
		wantStatus int
	}{
		{"missing content", e.ID.String(), `{}`, nil, http.StatusBadRequest},
		{"bad json", e.ID.String(), `{`, nil, http.StatusBadRequest},
		{"bad id", "nope", `{"content":"x"}`, nil, http.StatusBadRequest},
		{"unknown id", uuid.NewString(), `{"content":"x"}`, nil, http.StatusNotFound},
		{"write failed", e.ID.String(), `{"content":"x"}`, errors.New("disk I/O error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupHandler(t, e)
			env.store.commitErr = tt.commitErr

			rec := env.do(t, http.MethodPut, "/api/v1/entries/"+tt.id+"/content", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, env.store.committed[0].Content)
		})
	}
}

func TestDeleteEntry(t *testing.T) {
	keep := makeEntry("keep", "", baseTime)
	drop := makeEntry("drop", "", baseTime.Add(time.Hour))
	env := setupHandler(t, keep, drop)

	rec := env.do(t, http.MethodDelete, "/api/v1/entries/"+drop.ID.String(), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	list := decodeEntries(t, env.do(t, http.MethodGet, "/api/v1/entries", ""))
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID.String(), list[0].ID)

	rec = env.do(t, http.MethodDelete, "/api/v1/entries/"+drop.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEntry_WriteFailedKeepsEntry(t *testing.T) {
	e := makeEntry("keep", "", baseTime)
	env := setupHandler(t, e)
	env.store.commitErr = errors.New("disk I/O error")

	rec := env.do(t, http.MethodDelete, "/api/v1/entries/"+e.ID.String(), "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, env.svc.Snapshot(), 1)
}

func TestGetEntryHTML(t *testing.T) {
	e := makeEntry("Lunch", "**Pasta** <script>alert(1)</script>", baseTime)
	env := setupHandler(t, e)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/entries/%s/html", e.ID), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.EntryHTMLResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, e.ID.String(), resp.ID)
	assert.Contains(t, resp.HTML, "<strong>Pasta</strong>")
	assert.NotContains(t, resp.HTML, "<script>")
}

func TestHealth(t *testing.T) {
	env := setupHandler(t)

	rec := env.do(t, http.MethodGet, "/api/v1/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	_, err := time.Parse(time.RFC3339, resp.Time)
	assert.NoError(t, err)
}

// recordingExporter counts exported entries.
type recordingExporter struct {
	exported int
}

func (r *recordingExporter) Export(entries []model.JournalEntry) ([]string, error) {
	r.exported += len(entries)
	return make([]string, len(entries)), nil
}

func TestExportEntries(t *testing.T) {
	store := &mockEntryStore{committed: []model.JournalEntry{makeEntry("a", "", baseTime), makeEntry("b", "", baseTime)}}
	svc := application.NewEntryService(store)
	_, err := svc.LoadAll(context.Background())
	require.NoError(t, err)

	exporter := &recordingExporter{}
	exportSvc := application.NewExportService(svc, exporter, 0)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		exportSvc.Start(ctx)
		close(stopped)
	}()
	defer func() {
		cancel()
		<-stopped
	}()

	logger := slog.New(slog.DiscardHandler)
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(svc, application.NewEntryList(svc), exportSvc, logger))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exported":2}`, rec.Body.String())
	assert.Equal(t, 2, exporter.exported)
}

func TestExportEntries_NotConfigured(t *testing.T) {
	env := setupHandler(t)

	rec := env.do(t, http.MethodPost, "/api/v1/export", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
	handler := httphandler.ApplyMiddleware(mux, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}
