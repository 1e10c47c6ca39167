package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/myjournal/internal/domain/model"
	"github.com/ericfisherdev/myjournal/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.EntryStore = (*EntryRepo)(nil)

// occurredAtLayout is fixed-width so that lexical order in SQLite matches
// chronological order.
const occurredAtLayout = "2006-01-02T15:04:05.000000000Z"

// EntryRepo is the SQLite implementation of the EntryStore port interface.
// Mutations are staged in a writer transaction that is begun on the first
// Insert, Update or Delete and ended by Commit or Rollback.
type EntryRepo struct {
	db *DB

	mu sync.Mutex
	tx *sql.Tx
}

// NewEntryRepo creates a new EntryRepo backed by the given DB.
func NewEntryRepo(db *DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// Fetch returns all committed entries ordered by occurred_at DESC, then by
// insertion order DESC.
func (r *EntryRepo) Fetch(ctx context.Context) ([]model.JournalEntry, error) {
	const query = `SELECT id, title, occurred_at, content FROM journal_entries ORDER BY occurred_at DESC, seq DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch entries: %w", err)
	}
	defer rows.Close()

	entries := []model.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// Insert stages a new entry. Returns driven.ErrEntryExists if the ID is taken.
func (r *EntryRepo) Insert(ctx context.Context, entry model.JournalEntry) error {
	const query = `INSERT INTO journal_entries (id, title, occurred_at, content) VALUES (?, ?, ?, ?)`

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, query,
		entry.ID.String(), entry.Title, formatOccurredAt(entry.Date), entry.Content,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("insert entry %s: %w", entry.ID, driven.ErrEntryExists)
		}
		return fmt.Errorf("insert entry %s: %w", entry.ID, err)
	}

	return nil
}

// Update stages a content change. Title and date are never rewritten.
// Returns driven.ErrEntryNotFound if no row matched.
func (r *EntryRepo) Update(ctx context.Context, entry model.JournalEntry) error {
	const query = `UPDATE journal_entries SET content = ? WHERE id = ?`

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, query, entry.Content, entry.ID.String())
	if err != nil {
		return fmt.Errorf("update entry %s: %w", entry.ID, err)
	}

	return expectOneRow(result, "update entry", entry.ID)
}

// Delete stages removal of an entry. Returns driven.ErrEntryNotFound if no row matched.
func (r *EntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM journal_entries WHERE id = ?`

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}

	return expectOneRow(result, "delete entry", id)
}

// Commit makes all staged changes durable. It is a no-op when nothing is staged.
func (r *EntryRepo) Commit(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tx == nil {
		return nil
	}

	tx := r.tx
	r.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit entries: %w", err)
	}
	return nil
}

// Rollback discards all staged changes. It is a no-op when nothing is staged.
func (r *EntryRepo) Rollback(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tx == nil {
		return nil
	}

	tx := r.tx
	r.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback entries: %w", err)
	}
	return nil
}

// begin returns the open staging transaction, starting one if needed.
// Callers must hold r.mu.
func (r *EntryRepo) begin(ctx context.Context) (*sql.Tx, error) {
	if r.tx != nil {
		return r.tx, nil
	}

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	r.tx = tx
	return tx, nil
}

func expectOneRow(result sql.Result, op string, id uuid.UUID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s %s: %w", op, id, driven.ErrEntryNotFound)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (model.JournalEntry, error) {
	var entry model.JournalEntry
	var id, occurredAt string

	if err := s.Scan(&id, &entry.Title, &occurredAt, &entry.Content); err != nil {
		return model.JournalEntry{}, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parse id %q: %w", id, err)
	}
	entry.ID = parsedID

	entry.Date, err = parseTime(occurredAt)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parse occurred_at for %s: %w", id, err)
	}

	return entry, nil
}

func formatOccurredAt(t time.Time) string {
	return t.UTC().Format(occurredAtLayout)
}

// parseTime tries the fixed-width layout first, then common SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		occurredAtLayout,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
