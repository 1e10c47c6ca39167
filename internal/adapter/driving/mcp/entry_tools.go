package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ericfisherdev/myjournal/internal/domain/model"
)

func (s *Server) registerEntryTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_entries",
		Description: "List all journal entries, newest first. Each line shows the entry's position, date, title and id.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListEntries)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "read_entry",
		Description: "Read one journal entry by id, or by its zero-based position in the newest-first list.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Entry id (UUID)"},
				"index": {"type": "integer", "minimum": 0, "description": "Position in the list returned by list_entries"}
			}
		}`),
	}, s.handleReadEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "create_entry",
		Description: "Create a journal entry dated now, with the given title and empty content.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Entry title"}
			},
			"required": ["title"]
		}`),
	}, s.handleCreateEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "update_entry_content",
		Description: "Replace the content of a journal entry. The title and date never change.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Entry id (UUID)"},
				"content": {"type": "string", "description": "New content, markdown allowed"}
			},
			"required": ["id", "content"]
		}`),
	}, s.handleUpdateEntryContent)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "delete_entry",
		Description: "Permanently delete a journal entry.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Entry id (UUID)"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteEntry)
}

func (s *Server) handleListEntries(ctx context.Context, _ *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	if err := s.entryList.Refresh(ctx); err != nil {
		return toolError("failed to load entries: %v", err), nil
	}

	entries := s.entryList.Entries()
	if len(entries) == 0 {
		return toolText("No journal entries."), nil
	}

	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s | %s | %s\n", i, e.ShortDate(), e.Title, e.ID)
	}
	return toolText(b.String()), nil
}

func (s *Server) handleReadEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID    string `json:"id"`
		Index *int   `json:"index"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	var (
		entry model.JournalEntry
		err   error
	)
	switch {
	case args.ID != "":
		id, parseErr := uuid.Parse(args.ID)
		if parseErr != nil {
			return toolError("invalid id %q", args.ID), nil
		}
		entry, err = s.entrySvc.Get(ctx, id)
	case args.Index != nil:
		if err := s.entryList.Refresh(ctx); err != nil {
			return toolError("failed to load entries: %v", err), nil
		}
		entry, err = s.entryList.EntryAt(*args.Index)
	default:
		return toolError("either id or index is required"), nil
	}
	if err != nil {
		return toolError("%v", err), nil
	}

	return toolText(formatEntry(entry)), nil
}

func (s *Server) handleCreateEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	entry, err := s.entrySvc.Create(ctx, args.Title, time.Time{})
	if err != nil {
		return toolError("failed to create entry: %v", err), nil
	}

	return toolText(s.refresh(ctx, fmt.Sprintf("Created entry %s (%s)", entry.ID, entry.LongDate()))), nil
}

func (s *Server) handleUpdateEntryContent(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID      string  `json:"id"`
		Content *string `json:"content"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	id, err := uuid.Parse(args.ID)
	if err != nil {
		return toolError("invalid id %q", args.ID), nil
	}
	if args.Content == nil {
		return toolError("content is required"), nil
	}

	if err := s.entrySvc.UpdateContent(ctx, id, *args.Content); err != nil {
		return toolError("failed to update entry: %v", err), nil
	}

	return toolText(s.refresh(ctx, fmt.Sprintf("Updated entry %s", id))), nil
}

func (s *Server) handleDeleteEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	id, err := uuid.Parse(args.ID)
	if err != nil {
		return toolError("invalid id %q", args.ID), nil
	}

	if err := s.entrySvc.Delete(ctx, id); err != nil {
		return toolError("failed to delete entry: %v", err), nil
	}

	return toolText(s.refresh(ctx, fmt.Sprintf("Deleted entry %s", id))), nil
}

// refresh re-derives the entry list after a mutation. The mutation already
// succeeded, so a failed refresh is reported as a note on text.
func (s *Server) refresh(ctx context.Context, text string) string {
	if err := s.entryList.Refresh(ctx); err != nil {
		return fmt.Sprintf("%s\n(entry list refresh failed: %v)", text, err)
	}
	return text
}

func formatEntry(e model.JournalEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %s\nTitle: %s\nDate: %s\n", e.ID, e.Title, e.LongDate())
	if e.Content != "" {
		b.WriteString("\n")
		b.WriteString(e.Content)
	}
	return b.String()
}

func toolText(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
