package main

import (
	"github.com/spf13/cobra"

	mcppkg "github.com/ericfisherdev/myjournal/internal/adapter/driving/mcp"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server (stdio mode)",
		Long: `Start the Model Context Protocol server so AI agents can list, read,
create, edit and delete journal entries. The server speaks over stdio.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := mcppkg.NewServer(a.entrySvc, a.entryList, version)
			if err != nil {
				return err
			}
			return server.Serve(cmd.Context())
		},
	}
}
