package driven

import "github.com/ericfisherdev/myjournal/internal/domain/model"

// EntryExporter writes a copy of the journal outside the persistence engine.
type EntryExporter interface {
	// Export writes every entry and returns the written locations in input
	// order. On failure the locations written so far are returned.
	Export(entries []model.JournalEntry) ([]string, error)
}
