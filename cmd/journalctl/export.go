package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/myjournal/internal/adapter/driven/markdown"
)

func newExportCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as markdown files",
		Long: `Write every entry to <dir>/<YYYY-MM-DD>/<HH-MM-SS-micro>-<id>.md with a YAML
frontmatter header holding id, title and date. Re-exporting overwrites.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = a.cfg.ExportDir
			}

			paths, err := markdown.NewExporter(dir).Export(a.entrySvc.Snapshot())
			if err != nil {
				return fmt.Errorf("export failed after %d entries: %w", len(paths), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %d entries to %s\n", okStyle.Render("Exported"), len(paths), dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "export directory (default $MYJOURNAL_EXPORT_DIR)")

	return cmd
}
