// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// EntryRowViewModel holds presentation-ready data for one row of the entry list.
type EntryRowViewModel struct {
	Index      int
	ID         string
	Title      string
	ShortDate  string
	DetailPath string
	DeletePath string
}

// EntryListViewModel holds everything the list page renders.
type EntryListViewModel struct {
	Rows      []EntryRowViewModel
	CSRFToken string
	// Banner is a user-facing message shown above the list, e.g. when the
	// journal could not be reloaded.
	Banner string
}

// EntryDetailViewModel holds presentation-ready data for the detail page.
type EntryDetailViewModel struct {
	ID          string
	Title       string
	LongDate    string
	Content     string
	ContentHTML string // sanitized HTML rendered from Content
	UpdatePath  string // POST target for the edit form
	DeletePath  string
	CSRFToken   string
}
