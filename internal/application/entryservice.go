// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/myjournal/internal/domain/model"
	"github.com/ericfisherdev/myjournal/internal/domain/port/driven"
)

// EntryService is the single authority for journal entry lifecycle. It owns
// the canonical date-descending collection and keeps it consistent with the
// persistence engine: an in-memory change is applied only after the engine
// commits it. All operations are serialized.
type EntryService struct {
	store driven.EntryStore
	now   func() time.Time

	mu      sync.Mutex
	entries []model.JournalEntry
}

// NewEntryService creates an EntryService over the given persistence engine.
// The collection starts empty; call LoadAll to populate it.
func NewEntryService(store driven.EntryStore) *EntryService {
	return &EntryService{
		store:   store,
		now:     time.Now,
		entries: []model.JournalEntry{},
	}
}

// LoadAll replaces the collection with the engine's committed entries and
// returns them sorted by date descending. If the engine cannot be read, the
// previous collection is returned unchanged together with an error wrapping
// ErrStorageUnavailable.
func (s *EntryService) LoadAll(ctx context.Context) ([]model.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fetched, err := s.store.Fetch(ctx)
	if err != nil {
		return s.snapshotLocked(), fmt.Errorf("load entries: %w: %w", ErrStorageUnavailable, err)
	}

	entries := slices.Clone(fetched)
	sortEntries(entries)
	s.entries = entries

	return s.snapshotLocked(), nil
}

// Create persists a new entry with empty content and adds it to the front of
// the collection. A zero occurredAt means now. On failure nothing is added.
func (s *EntryService) Create(ctx context.Context, title string, occurredAt time.Time) (model.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if occurredAt.IsZero() {
		occurredAt = s.now()
	}
	entry := model.NewJournalEntry(title, occurredAt)

	if err := s.store.Insert(ctx, entry); err != nil {
		return model.JournalEntry{}, s.writeFailed(ctx, "create entry", err)
	}
	if err := s.store.Commit(ctx); err != nil {
		return model.JournalEntry{}, s.writeFailed(ctx, "create entry", err)
	}

	// Newest first, then a stable sort so an equal timestamp keeps the new
	// entry ahead of older ones.
	s.entries = append([]model.JournalEntry{entry}, s.entries...)
	sortEntries(s.entries)

	return entry, nil
}

// UpdateContent replaces an entry's content and persists it. Title and date
// are never changed. On a failed write the in-memory content is left as it was.
func (s *EntryService) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("update entry %s: %w", id, ErrEntryNotFound)
	}

	updated := s.entries[idx]
	updated.Content = content

	if err := s.store.Update(ctx, updated); err != nil {
		if errors.Is(err, driven.ErrEntryNotFound) {
			return s.rollback(ctx, fmt.Errorf("update entry %s: %w: %w", id, ErrEntryNotFound, err))
		}
		return s.writeFailed(ctx, "update entry", err)
	}
	if err := s.store.Commit(ctx); err != nil {
		return s.writeFailed(ctx, "update entry", err)
	}

	s.entries[idx] = updated
	return nil
}

// Delete removes an entry from storage and then from the collection. If the
// engine delete does not commit, the entry stays in the collection.
func (s *EntryService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("delete entry %s: %w", id, ErrEntryNotFound)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, driven.ErrEntryNotFound) {
			return s.rollback(ctx, fmt.Errorf("delete entry %s: %w: %w", id, ErrEntryNotFound, err))
		}
		return s.writeFailed(ctx, "delete entry", err)
	}
	if err := s.store.Commit(ctx); err != nil {
		return s.writeFailed(ctx, "delete entry", err)
	}

	s.entries = slices.Delete(s.entries, idx, idx+1)
	return nil
}

// Get returns the entry with the given ID from the collection.
func (s *EntryService) Get(_ context.Context, id uuid.UUID) (model.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return model.JournalEntry{}, fmt.Errorf("get entry %s: %w", id, ErrEntryNotFound)
	}
	return s.entries[idx], nil
}

// Snapshot returns a copy of the collection without consulting the engine.
func (s *EntryService) Snapshot() []model.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// writeFailed discards whatever the engine staged and wraps cause as
// ErrPersistenceWriteFailed. Callers must hold s.mu.
func (s *EntryService) writeFailed(ctx context.Context, op string, cause error) error {
	return s.rollback(ctx, fmt.Errorf("%s: %w: %w", op, ErrPersistenceWriteFailed, cause))
}

// rollback discards staged work and returns err, joined with the rollback
// failure if there was one. Callers must hold s.mu.
func (s *EntryService) rollback(ctx context.Context, err error) error {
	if rbErr := s.store.Rollback(ctx); rbErr != nil {
		return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
	}
	return err
}

func (s *EntryService) indexLocked(id uuid.UUID) int {
	return slices.IndexFunc(s.entries, func(e model.JournalEntry) bool {
		return e.ID == id
	})
}

func (s *EntryService) snapshotLocked() []model.JournalEntry {
	return slices.Clone(s.entries)
}

// sortEntries orders entries by date descending. The sort is stable, so
// entries sharing a date keep their relative order.
func sortEntries(entries []model.JournalEntry) {
	slices.SortStableFunc(entries, func(a, b model.JournalEntry) int {
		switch {
		case a.NewerThan(b):
			return -1
		case b.NewerThan(a):
			return 1
		default:
			return 0
		}
	})
}
