// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ericfisherdev/myjournal/internal/domain/model"
)

// Sentinel errors returned by EntryStore implementations.
var (
	// ErrEntryNotFound indicates no stored entry matched the given ID.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEntryExists indicates an entry with the same ID is already stored.
	ErrEntryExists = errors.New("entry already exists")
)

// EntryStore defines the driven port for the journal persistence engine.
//
// Insert, Update and Delete stage changes; nothing is durable until Commit
// returns nil. Rollback discards every change staged since the last Commit.
// Fetch returns committed entries ordered by date descending, with entries
// sharing a date ordered newest insert first.
type EntryStore interface {
	Fetch(ctx context.Context) ([]model.JournalEntry, error)
	Insert(ctx context.Context, entry model.JournalEntry) error
	Update(ctx context.Context, entry model.JournalEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
