package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/myjournal/internal/domain/model"
	"github.com/ericfisherdev/myjournal/internal/domain/port/driven"
)

// EntrySnapshotter supplies the entries to export. *EntryService satisfies it.
type EntrySnapshotter interface {
	Snapshot() []model.JournalEntry
}

// exportRequest represents a manual export trigger.
type exportRequest struct {
	done chan exportResult
}

type exportResult struct {
	count int
	err   error
}

// ExportService periodically copies the journal to an EntryExporter and
// serves on-demand exports. Exports run one at a time on the Start goroutine.
type ExportService struct {
	source    EntrySnapshotter
	exporter  driven.EntryExporter
	interval  time.Duration
	requestCh chan exportRequest
}

// NewExportService creates an ExportService. An interval of zero or less
// disables periodic exports; ExportNow still works while Start runs.
func NewExportService(source EntrySnapshotter, exporter driven.EntryExporter, interval time.Duration) *ExportService {
	return &ExportService{
		source:    source,
		exporter:  exporter,
		interval:  interval,
		requestCh: make(chan exportRequest),
	}
}

// Start runs the export loop until ctx is canceled. With periodic exports
// enabled it exports immediately and then on every interval.
func (s *ExportService) Start(ctx context.Context) {
	var tick <-chan time.Time
	if s.interval > 0 {
		if _, err := s.exportAll(); err != nil {
			slog.Error("initial export failed", "error", err)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("export service stopped")
			return
		case <-tick:
			if _, err := s.exportAll(); err != nil {
				slog.Error("export cycle failed", "error", err)
			}
		case req := <-s.requestCh:
			count, err := s.exportAll()
			req.done <- exportResult{count: count, err: err}
		}
	}
}

// ExportNow triggers an export, bypassing the interval, and returns the number
// of entries written. It blocks until the export completes or ctx is canceled,
// so Start must be running.
func (s *ExportService) ExportNow(ctx context.Context) (int, error) {
	done := make(chan exportResult, 1)

	select {
	case s.requestCh <- exportRequest{done: done}:
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	select {
	case res := <-done:
		return res.count, res.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (s *ExportService) exportAll() (int, error) {
	entries := s.source.Snapshot()

	written, err := s.exporter.Export(entries)
	if err != nil {
		return len(written), fmt.Errorf("export entries: %w", err)
	}

	slog.Info("journal exported", "entries", len(written))
	return len(written), nil
}
