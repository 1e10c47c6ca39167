package web

import (
	vm "github.com/ericfisherdev/myjournal/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/myjournal/internal/domain/model"
)

// toEntryRowViewModels converts the projected entries to list rows, keeping
// each entry's zero-based position.
func toEntryRowViewModels(entries []model.JournalEntry) []vm.EntryRowViewModel {
	rows := make([]vm.EntryRowViewModel, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, vm.EntryRowViewModel{
			Index:      i,
			ID:         e.ID.String(),
			Title:      e.Title,
			ShortDate:  e.ShortDate(),
			DetailPath: entryPath(e),
			DeletePath: entryPath(e) + "/delete",
		})
	}
	return rows
}

// toEntryDetailViewModel converts an entry into the detail page view model.
func toEntryDetailViewModel(e model.JournalEntry, csrf string) vm.EntryDetailViewModel {
	return vm.EntryDetailViewModel{
		ID:          e.ID.String(),
		Title:       e.Title,
		LongDate:    e.LongDate(),
		Content:     e.Content,
		ContentHTML: RenderMarkdown(e.Content),
		UpdatePath:  entryPath(e) + "/content",
		DeletePath:  entryPath(e) + "/delete",
		CSRFToken:   csrf,
	}
}

func entryPath(e model.JournalEntry) string {
	return "/app/entries/" + e.ID.String()
}
