package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	shortDateLayout = "1/2/06, 3:04 PM"
	longDateLayout  = "Jan 2, 2006 at 3:04 PM"
)

// JournalEntry is a single journal record. ID, Title and Date are fixed at
// creation; only Content changes afterwards.
type JournalEntry struct {
	ID      uuid.UUID
	Title   string
	Date    time.Time // Sole sort key, newest first.
	Content string
}

// NewJournalEntry creates an entry with a fresh ID and empty content.
// A zero occurredAt is replaced with the current time.
func NewJournalEntry(title string, occurredAt time.Time) JournalEntry {
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return JournalEntry{
		ID:    uuid.New(),
		Title: title,
		Date:  occurredAt.UTC(),
	}
}

// ShortDate formats Date for a list row.
func (e JournalEntry) ShortDate() string {
	if e.Date.IsZero() {
		return ""
	}
	return e.Date.Local().Format(shortDateLayout)
}

// LongDate formats Date for the detail view.
func (e JournalEntry) LongDate() string {
	if e.Date.IsZero() {
		return ""
	}
	return e.Date.Local().Format(longDateLayout)
}

// NewerThan reports whether e sorts before other in the date-descending order.
func (e JournalEntry) NewerThan(other JournalEntry) bool {
	return e.Date.After(other.Date)
}
