// Package pages contains the GUI page components.
package pages

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/myjournal/internal/adapter/driving/web/viewmodel"
)

// EntryList renders the journal list: an add form, then one row per entry
// with its title, short date and a delete button.
func EntryList(m vm.EntryListViewModel) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<h1>Journal</h1>`)
		if m.Banner != "" {
			b.WriteString(`<p class="banner" role="alert">` + templ.EscapeString(m.Banner) + `</p>`)
		}

		b.WriteString(`<form method="post" action="/app/entries" class="add">`)
		csrfField(&b, m.CSRFToken)
		b.WriteString(`<input type="text" name="title" placeholder="New entry title" aria-label="Title">`)
		b.WriteString(`<button type="submit">Add</button></form>`)

		if len(m.Rows) == 0 {
			b.WriteString(`<p class="empty">No entries yet.</p>`)
			_, err := io.WriteString(w, b.String())
			return err
		}

		b.WriteString(`<ul class="entries">`)
		for _, row := range m.Rows {
			b.WriteString(`<li data-index="` + strconv.Itoa(row.Index) + `">`)
			b.WriteString(`<a href="` + templ.EscapeString(row.DetailPath) + `">`)
			b.WriteString(`<span class="title">` + templ.EscapeString(row.Title) + `</span>`)
			b.WriteString(`<span class="date">` + templ.EscapeString(row.ShortDate) + `</span></a>`)
			b.WriteString(`<form method="post" class="inline" action="` + templ.EscapeString(row.DeletePath) + `">`)
			csrfField(&b, m.CSRFToken)
			b.WriteString(`<button type="submit">Delete</button></form></li>`)
		}
		b.WriteString(`</ul>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// EntryDetail renders one entry: title, long date, rendered content and an
// edit form for the raw content.
func EntryDetail(m vm.EntryDetailViewModel) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<p><a href="/">&larr; All entries</a></p>`)
		b.WriteString(`<h1>` + templ.EscapeString(m.Title) + `</h1>`)
		b.WriteString(`<p class="date">` + templ.EscapeString(m.LongDate) + `</p>`)
		b.WriteString(`<div class="content">` + m.ContentHTML + `</div>`)

		b.WriteString(`<form method="post" action="` + templ.EscapeString(m.UpdatePath) + `">`)
		csrfField(&b, m.CSRFToken)
		b.WriteString(`<textarea name="content" aria-label="Content">` + templ.EscapeString(m.Content) + `</textarea>`)
		b.WriteString(`<button type="submit">Save</button></form>`)

		b.WriteString(`<form method="post" action="` + templ.EscapeString(m.DeletePath) + `">`)
		csrfField(&b, m.CSRFToken)
		b.WriteString(`<button type="submit">Delete entry</button></form>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func csrfField(b *strings.Builder, token string) {
	b.WriteString(`<input type="hidden" name="csrf_token" value="` + templ.EscapeString(token) + `">`)
}
