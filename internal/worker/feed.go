package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

// Refresher re-runs the portfolio pipeline on fresh collaborator inputs.
type Refresher interface {
	Refresh(ctx context.Context) (domain.PortfolioData, error)
}

// FeedWorker periodically refetches the feed and recomputes the portfolio.
// Each completed refresh replaces the prior snapshot wholesale.
type FeedWorker struct {
	refresher Refresher
	interval  time.Duration
}

// NewFeedWorker creates a new FeedWorker.
func NewFeedWorker(refresher Refresher, interval time.Duration) *FeedWorker {
	return &FeedWorker{
		refresher: refresher,
		interval:  interval,
	}
}

// Run starts the refresh loop. It blocks until the context is cancelled.
func (w *FeedWorker) Run(ctx context.Context) {
	slog.Info("FeedWorker: starting")

	// Refresh immediately on startup so the loading state ends as soon as
	// the collaborators answer.
	if _, err := w.refresher.Refresh(ctx); err != nil {
		slog.Error("FeedWorker: initial refresh failed", "error", err)
	} else {
		slog.Info("FeedWorker: initial refresh completed")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("FeedWorker: shutting down")
			return
		case <-ticker.C:
			if _, err := w.refresher.Refresh(ctx); err != nil {
				slog.Error("FeedWorker: refresh failed", "error", err)
			} else {
				slog.Info("FeedWorker: refresh completed")
			}
		}
	}
}
