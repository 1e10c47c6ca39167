// Package markdown exports journal entries as markdown files with YAML frontmatter.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/myjournal/internal/domain/model"
	"github.com/ericfisherdev/myjournal/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.EntryExporter = (*Exporter)(nil)

const fence = "---\n"

// frontmatter is the YAML header of an exported entry file.
type frontmatter struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
}

// Exporter writes entries under a root directory, one file per entry in a
// per-day directory: <root>/2006-01-02/15-04-05-<microseconds>-<short id>.md.
type Exporter struct {
	root string
}

// NewExporter creates an Exporter rooted at root.
func NewExporter(root string) *Exporter {
	return &Exporter{root: root}
}

// Path returns the file path an entry is exported to.
func (e *Exporter) Path(entry model.JournalEntry) string {
	date := entry.Date.UTC()
	filename := fmt.Sprintf("%s-%06d-%s.md", date.Format("15-04-05"), date.Nanosecond()/1000, entry.ID.String()[:8])
	return filepath.Join(e.root, date.Format("2006-01-02"), filename)
}

// Export writes every entry and returns the written paths in input order.
// Existing files for the same entry are replaced atomically.
func (e *Exporter) Export(entries []model.JournalEntry) ([]string, error) {
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := e.Path(entry)

		data, err := Render(entry)
		if err != nil {
			return paths, err
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return paths, fmt.Errorf("create export dir: %w", err)
		}
		if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			return paths, fmt.Errorf("write entry %s: %w", entry.ID, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Render converts an entry to frontmatter plus a body holding its content verbatim.
func Render(entry model.JournalEntry) ([]byte, error) {
	fm := frontmatter{
		ID:    entry.ID.String(),
		Title: entry.Title,
		Date:  entry.Date.UTC().Format(time.RFC3339Nano),
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("render frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(fence)
	buf.Write(header)
	buf.WriteString(fence)
	buf.WriteString(entry.Content)
	return buf.Bytes(), nil
}

// ParseFile reads an exported entry file.
func ParseFile(path string) (model.JournalEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("read entry: %w", err)
	}
	entry, err := Parse(data)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return entry, nil
}

// Parse is the inverse of Render.
func Parse(data []byte) (model.JournalEntry, error) {
	text := string(data)
	if !strings.HasPrefix(text, fence) {
		return model.JournalEntry{}, errors.New("no frontmatter found")
	}
	rest := text[len(fence):]

	end := strings.Index(rest, "\n"+fence)
	if end < 0 {
		return model.JournalEntry{}, errors.New("unterminated frontmatter")
	}
	header, body := rest[:end+1], rest[end+1+len(fence):]

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return model.JournalEntry{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("invalid id in frontmatter: %w", err)
	}
	date, err := time.Parse(time.RFC3339Nano, fm.Date)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("invalid date in frontmatter: %w", err)
	}

	return model.JournalEntry{
		ID:      id,
		Title:   fm.Title,
		Date:    date.UTC(),
		Content: body,
	}, nil
}
