// Package pipeline composes the normalize, rank and display stages over one
// immutable input snapshot per refresh.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tokenfolio/swapdesk/internal/display"
	"github.com/tokenfolio/swapdesk/internal/domain"
	"github.com/tokenfolio/swapdesk/internal/normalize"
	"github.com/tokenfolio/swapdesk/internal/rank"
)

// ErrFeedUnavailable indicates that a collaborator fetch failed and the
// refresh produced no new snapshot. The previous snapshot, if any, stays in
// place.
var ErrFeedUnavailable = errors.New("feed unavailable")

// FeedSource supplies raw price observations.
type FeedSource interface {
	FetchObservations(ctx context.Context) ([]domain.PriceObservation, error)
}

// BalanceSource supplies raw wallet balances.
type BalanceSource interface {
	FetchBalances(ctx context.Context) ([]domain.WalletBalance, error)
}

// snapshot pairs one pipeline output with the price table it was computed
// from, so quoting and display always read mutually consistent data.
type snapshot struct {
	portfolio domain.PortfolioData
	prices    domain.PriceTable
}

// Service runs the full pipeline and holds the latest completed snapshot.
// Refresh is the single writer; readers see either the previous complete
// snapshot or the new one, never partial state.
type Service struct {
	feed     FeedSource
	balances BalanceSource
	ranker   *rank.Ranker

	latest atomic.Pointer[snapshot]
}

// NewService creates a pipeline service.
func NewService(feed FeedSource, balances BalanceSource, ranker *rank.Ranker) *Service {
	return &Service{
		feed:     feed,
		balances: balances,
		ranker:   ranker,
	}
}

// Refresh fetches both collaborator inputs, runs the three pipeline stages
// and atomically replaces the held snapshot. Fetch failures surface as
// ErrFeedUnavailable; the pipeline stages themselves cannot fail — malformed
// records are dropped and missing prices default to zero, so an empty
// portfolio is a valid result.
func (s *Service) Refresh(ctx context.Context) (domain.PortfolioData, error) {
	observations, err := s.feed.FetchObservations(ctx)
	if err != nil {
		return domain.PortfolioData{}, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	balances, err := s.balances.FetchBalances(ctx)
	if err != nil {
		return domain.PortfolioData{}, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	prices := normalize.Normalize(observations)
	ranked := s.ranker.Rank(balances)
	rows := display.Render(ranked, prices)

	data := domain.PortfolioData{
		Rows:        rows,
		Totals:      display.Totals(rows),
		GeneratedAt: time.Now().UTC(),
	}

	s.latest.Store(&snapshot{portfolio: data, prices: prices})

	slog.Info("pipeline refreshed",
		"observations", len(observations),
		"balances", len(balances),
		"rows", len(rows),
		"unpriced", data.Totals.UnpricedCount)

	return data, nil
}

// Latest returns the most recent completed portfolio. The boolean is false
// while the first refresh is still outstanding; callers must treat that as a
// loading state and must not render partial data.
func (s *Service) Latest() (domain.PortfolioData, bool) {
	snap := s.latest.Load()
	if snap == nil {
		return domain.PortfolioData{}, false
	}
	return snap.portfolio, true
}

// Prices returns the canonical price table of the latest snapshot. It
// implements swap.PriceSource.
func (s *Service) Prices() (domain.PriceTable, bool) {
	snap := s.latest.Load()
	if snap == nil {
		return nil, false
	}
	return snap.prices, true
}
