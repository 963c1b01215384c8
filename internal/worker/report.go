package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

// SnapshotGenerator persists a dated portfolio snapshot.
type SnapshotGenerator interface {
	Generate(ctx context.Context, slug string, date time.Time) (domain.PortfolioData, error)
}

// AfterSnapshotHook is called after each successful snapshot generation.
type AfterSnapshotHook interface {
	Export(ctx context.Context, data domain.PortfolioData) error
}

// SnapshotWorker periodically generates portfolio snapshots.
type SnapshotWorker struct {
	generator SnapshotGenerator
	slug      string
	interval  time.Duration
	hook      AfterSnapshotHook // optional
}

// NewSnapshotWorker creates a new SnapshotWorker with an optional
// post-generation hook.
func NewSnapshotWorker(generator SnapshotGenerator, slug string, interval time.Duration, hook AfterSnapshotHook) *SnapshotWorker {
	return &SnapshotWorker{
		generator: generator,
		slug:      slug,
		interval:  interval,
		hook:      hook,
	}
}

// runHook calls the post-generation hook if one is configured.
func (w *SnapshotWorker) runHook(ctx context.Context, data domain.PortfolioData) {
	if w.hook == nil {
		return
	}
	if err := w.hook.Export(ctx, data); err != nil {
		slog.Error("SnapshotWorker: export hook failed", "error", err)
	} else {
		slog.Info("SnapshotWorker: export hook completed")
	}
}

// utcDate returns the current date normalized to midnight UTC.
func utcDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Run starts the snapshot worker loop. It blocks until the context is
// cancelled.
func (w *SnapshotWorker) Run(ctx context.Context) {
	slog.Info("SnapshotWorker: starting")

	// Generate immediately on startup
	if data, err := w.generator.Generate(ctx, w.slug, utcDate()); err != nil {
		slog.Error("SnapshotWorker: initial generation failed", "error", err)
	} else {
		slog.Info("SnapshotWorker: initial generation completed")
		w.runHook(ctx, data)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("SnapshotWorker: shutting down")
			return
		case <-ticker.C:
			if data, err := w.generator.Generate(ctx, w.slug, utcDate()); err != nil {
				slog.Error("SnapshotWorker: generation failed", "error", err)
			} else {
				slog.Info("SnapshotWorker: generation completed")
				w.runHook(ctx, data)
			}
		}
	}
}
