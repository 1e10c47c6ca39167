package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/myjournal/internal/domain/model"
)

var at = time.Date(2026, 3, 1, 7, 30, 15, 123456789, time.UTC)

func makeEntry(title, content string) model.JournalEntry {
	e := model.NewJournalEntry(title, at)
	e.Content = content
	return e
}

func TestRender_Frontmatter(t *testing.T) {
	e := makeEntry("Morning run", "5k\n\n**felt good**")

	data, err := Render(e)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "---\n"))
	assert.Contains(t, text, "id: "+e.ID.String())
	assert.Contains(t, text, "title: Morning run")
	assert.Contains(t, text, "date: \"2026-03-01T07:30:15.123456789Z\"")
	assert.True(t, strings.HasSuffix(text, "---\n5k\n\n**felt good**"))
}

func TestRenderParse_PreservesEntry(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
	}{
		{"plain", "Lunch", "Pasta"},
		{"empty content", "Lunch", ""},
		{"content with fence", "Notes", "before\n---\nafter\n"},
		{"title needing quotes", "key: value # not a comment", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := makeEntry(tt.title, tt.content)
			data, err := Render(e)
			require.NoError(t, err)

			got, err := Parse(data)
			require.NoError(t, err)
			assert.Equal(t, e.ID, got.ID)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.content, got.Content)
			assert.True(t, e.Date.Equal(got.Date))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no frontmatter", "just text", "no frontmatter"},
		{"unterminated", "---\nid: x\n", "unterminated"},
		{"bad id", "---\nid: nope\ndate: \"2026-03-01T07:30:15Z\"\n---\n", "invalid id"},
		{"bad date", "---\nid: 6f1c1a52-6c38-4d5e-9f0a-3c1c4bd0a111\ndate: soon\n---\n", "invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExporter_Path(t *testing.T) {
	e := makeEntry("x", "")
	exp := NewExporter("/journal")

	want := filepath.Join("/journal", "2026-03-01", "07-30-15-123456-"+e.ID.String()[:8]+".md")
	assert.Equal(t, want, exp.Path(e))
}

func TestExporter_Path_Microseconds(t *testing.T) {
	exp := NewExporter("/journal")
	tests := []struct {
		name string
		nsec int
		want string
	}{
		{"whole second", 0, "07-30-15-000000"},
		{"zero padded", 42_000, "07-30-15-000042"},
		{"truncates nanoseconds", 999_999_999, "07-30-15-999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := model.NewJournalEntry("x", time.Date(2026, 3, 1, 7, 30, 15, tt.nsec, time.UTC))
			want := filepath.Join("/journal", "2026-03-01", tt.want+"-"+e.ID.String()[:8]+".md")
			assert.Equal(t, want, exp.Path(e))
		})
	}
}

func TestExporter_Export_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(dir)
	entries := []model.JournalEntry{
		makeEntry("Lunch", "Pasta"),
		makeEntry("Morning run", ""),
	}

	paths, err := exp.Export(entries)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for i, path := range paths {
		got, err := ParseFile(path)
		require.NoError(t, err)
		assert.Equal(t, entries[i].ID, got.ID)
		assert.Equal(t, entries[i].Title, got.Title)
		assert.Equal(t, entries[i].Content, got.Content)
	}
}

func TestExporter_Export_Overwrites(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(dir)
	e := makeEntry("Lunch", "Pasta")

	_, err := exp.Export([]model.JournalEntry{e})
	require.NoError(t, err)

	e.Content = "Salad"
	paths, err := exp.Export([]model.JournalEntry{e})
	require.NoError(t, err)

	got, err := ParseFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "Salad", got.Content)

	files, err := os.ReadDir(filepath.Dir(paths[0]))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
}
