package application

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ericfisherdev/myjournal/internal/domain/model"
)

// EntrySource supplies the ordered entries an EntryList projects.
// *EntryService satisfies it.
type EntrySource interface {
	LoadAll(ctx context.Context) ([]model.JournalEntry, error)
}

// EntryList is a read-only, zero-indexed, date-descending view of the journal
// for list rendering and index-to-entry resolution. It never refreshes on its
// own: callers invoke Refresh after every mutation.
type EntryList struct {
	source EntrySource

	// refreshMu serializes Refresh calls so the last one to start is the
	// last one to store its result.
	refreshMu sync.Mutex

	mu      sync.RWMutex
	entries []model.JournalEntry
}

// NewEntryList creates an empty EntryList over source.
func NewEntryList(source EntrySource) *EntryList {
	return &EntryList{
		source:  source,
		entries: []model.JournalEntry{},
	}
}

// Refresh re-derives the cached sequence from the source. When the source
// fails it still returns its last good state, which becomes the cache, and the
// error is passed through.
func (l *EntryList) Refresh(ctx context.Context) error {
	l.refreshMu.Lock()
	defer l.refreshMu.Unlock()

	entries, err := l.source.LoadAll(ctx)
	if err != nil && entries == nil {
		return fmt.Errorf("refresh entry list: %w", err)
	}

	cached := slices.Clone(entries)
	if cached == nil {
		cached = []model.JournalEntry{}
	}

	l.mu.Lock()
	l.entries = cached
	l.mu.Unlock()

	if err != nil {
		return fmt.Errorf("refresh entry list: %w", err)
	}
	return nil
}

// EntryAt returns the entry at index. It fails with ErrIndexOutOfRange
// outside [0, Count).
func (l *EntryList) EntryAt(index int) (model.JournalEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.entries) {
		return model.JournalEntry{}, fmt.Errorf("entry at %d of %d: %w", index, len(l.entries), ErrIndexOutOfRange)
	}
	return l.entries[index], nil
}

// Count returns the number of projected entries.
func (l *EntryList) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns a copy of the projected sequence.
func (l *EntryList) Entries() []model.JournalEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}
