package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericfisherdev/myjournal/internal/adapter/driven/markdown"
	sqliteadapter "github.com/ericfisherdev/myjournal/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/myjournal/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/myjournal/internal/adapter/driving/web"
	"github.com/ericfisherdev/myjournal/internal/application"
	"github.com/ericfisherdev/myjournal/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"log_level", cfg.LogLevel,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire the entry service and load the journal.
	entrySvc := application.NewEntryService(sqliteadapter.NewEntryRepo(db))
	entries, err := entrySvc.LoadAll(ctx)
	if err != nil {
		return err
	}
	entryList := application.NewEntryList(entrySvc)
	if err := entryList.Refresh(ctx); err != nil {
		return err
	}
	slog.Info("journal loaded", "entries", len(entries))

	// 6. Start the export service (periodic when MYJOURNAL_EXPORT_INTERVAL > 0).
	exportSvc := application.NewExportService(entrySvc, markdown.NewExporter(cfg.ExportDir), cfg.ExportInterval)
	go exportSvc.Start(ctx)

	// 7. Register API and GUI routes on one mux.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(entrySvc, entryList, exportSvc, slog.Default()))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(entrySvc, entryList, slog.Default()))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.ApplyMiddleware(mux, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("myjournal started",
		"listen_addr", cfg.ListenAddr,
		"export_dir", cfg.ExportDir,
		"export_interval", cfg.ExportInterval,
	)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
