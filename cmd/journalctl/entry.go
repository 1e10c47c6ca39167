package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// atLayouts are the accepted --at formats, interpreted in local time.
var atLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC3339,
}

func newAddCmd(a *app) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "add [title...]",
		Short: "Add a journal entry",
		Long:  "Create an entry with the given title and empty content. It is dated now unless --at is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var occurredAt time.Time
			if at != "" {
				t, err := parseAt(at)
				if err != nil {
					return err
				}
				occurredAt = t
			}

			entry, err := a.entrySvc.Create(cmd.Context(), strings.Join(args, " "), occurredAt)
			if err != nil {
				return fmt.Errorf("failed to add entry: %w", err)
			}
			a.refresh(cmd.Context())

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Added"), entry.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", `entry date, e.g. "2026-03-01 07:30"`)

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			entries := a.entryList.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(out, dimStyle.Render("No entries."))
				return nil
			}

			for i, e := range entries {
				fmt.Fprintf(out, "%3d  %s  %s  %s\n",
					i,
					e.ShortDate(),
					titleStyle.Render(e.Title),
					dimStyle.Render(humanize.Time(e.Date)),
				)
			}
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|index>",
		Short: "Show a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(entry.Title))
			fmt.Fprintln(out, dimStyle.Render(entry.LongDate()+"  "+entry.ID.String()))
			if entry.Content != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, entry.Content)
			}
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "edit <id|index>",
		Short: "Replace an entry's content",
		Long:  "Replace an entry's content with --content, or with standard input when --content is not given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("content") {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read content: %w", err)
				}
				content = string(data)
			}

			if err := a.entrySvc.UpdateContent(cmd.Context(), entry.ID, content); err != nil {
				return fmt.Errorf("failed to update entry: %w", err)
			}
			a.refresh(cmd.Context())

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Updated"), entry.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "new content")

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id|index>",
		Aliases: []string{"rm"},
		Short:   "Delete a journal entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if err := a.entrySvc.Delete(cmd.Context(), entry.ID); err != nil {
				return fmt.Errorf("failed to delete entry: %w", err)
			}
			a.refresh(cmd.Context())

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Deleted"), entry.Title)
			return nil
		},
	}
}

func parseAt(s string) (time.Time, error) {
	for _, layout := range atLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --at %q: want YYYY-MM-DD [HH:MM]", s)
}
