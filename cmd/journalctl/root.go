package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	sqliteadapter "github.com/ericfisherdev/myjournal/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/myjournal/internal/application"
	"github.com/ericfisherdev/myjournal/internal/config"
	"github.com/ericfisherdev/myjournal/internal/domain/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

// app holds what every subcommand needs once the journal is open.
type app struct {
	cfg       *config.Config
	db        *sqliteadapter.DB
	entrySvc  *application.EntryService
	entryList *application.EntryList
}

// newRootCmd builds the command tree over a. The caller closes a once the
// command has run.
func newRootCmd(a *app) *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:           "journalctl",
		Short:         "Manage a myjournal database",
		Long:          "Add, list, read, edit, delete and export journal entries, or serve them over MCP.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.open(cmd.Context(), dbPath)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&dbPath, "db", "", "journal database path (default $MYJOURNAL_DB_PATH)")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newMCPCmd(a),
	)

	return root
}

// open loads config, opens and migrates the database and loads the journal.
func (a *app) open(ctx context.Context, dbPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	a.cfg = cfg

	// stdout may carry the MCP protocol, so logs always go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	a.db = db

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	a.entrySvc = application.NewEntryService(sqliteadapter.NewEntryRepo(db))
	if _, err := a.entrySvc.LoadAll(ctx); err != nil {
		return err
	}
	a.entryList = application.NewEntryList(a.entrySvc)
	return a.entryList.Refresh(ctx)
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// resolve finds an entry by id, or by its position in the newest-first list.
func (a *app) resolve(ctx context.Context, ref string) (model.JournalEntry, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return a.entrySvc.Get(ctx, id)
	}

	index, err := strconv.Atoi(ref)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("%q is neither an entry id nor a list index", ref)
	}
	entry, err := a.entryList.EntryAt(index)
	if errors.Is(err, application.ErrIndexOutOfRange) {
		return model.JournalEntry{}, fmt.Errorf("no entry at index %d (journal has %d)", index, a.entryList.Count())
	}
	return entry, err
}

// refresh re-derives the list after a committed change. A failure only
// means the list is stale, so it is logged.
func (a *app) refresh(ctx context.Context) {
	if err := a.entryList.Refresh(ctx); err != nil {
		slog.Warn("entry list refresh failed", "error", err)
	}
}
