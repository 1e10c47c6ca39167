// Package mcp exposes the journal as MCP tools over stdio.
package mcp

import (
	"context"
	"errors"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ericfisherdev/myjournal/internal/application"
)

// Server wraps the MCP server with the journal's entry service and list.
type Server struct {
	mcp       *gomcp.Server
	entrySvc  *application.EntryService
	entryList *application.EntryList
}

// NewServer creates an MCP server with the journal tools registered.
func NewServer(entrySvc *application.EntryService, entryList *application.EntryList, version string) (*Server, error) {
	if entrySvc == nil {
		return nil, errors.New("entry service is required")
	}
	if entryList == nil {
		return nil, errors.New("entry list is required")
	}

	s := &Server{
		mcp: gomcp.NewServer(
			&gomcp.Implementation{
				Name:    "myjournal",
				Version: version,
			},
			nil,
		),
		entrySvc:  entrySvc,
		entryList: entryList,
	}

	s.registerEntryTools()

	return s, nil
}

// Serve runs the MCP server in stdio mode until ctx is done or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
