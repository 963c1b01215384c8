// Package snapshot persists and serves dated portfolio snapshots.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

// PortfolioSource produces a fresh portfolio from the current collaborator
// inputs.
type PortfolioSource interface {
	Refresh(ctx context.Context) (domain.PortfolioData, error)
}

// Service manages snapshot generation and retrieval.
type Service struct {
	source PortfolioSource
	repo   Repository
}

// NewService creates a new snapshot Service.
func NewService(source PortfolioSource, repo Repository) *Service {
	return &Service{source: source, repo: repo}
}

// Generate runs the pipeline on fresh inputs and stores the result under the
// given entity slug and date. Re-generating for an existing date overwrites
// the stored data.
func (s *Service) Generate(ctx context.Context, slug string, date time.Time) (domain.PortfolioData, error) {
	entityID, err := s.repo.GetEntityID(ctx, slug)
	if err != nil {
		return domain.PortfolioData{}, fmt.Errorf("getting entity: %w", err)
	}

	portfolio, err := s.source.Refresh(ctx)
	if err != nil {
		return domain.PortfolioData{}, fmt.Errorf("refreshing portfolio: %w", err)
	}

	data, err := json.Marshal(portfolio)
	if err != nil {
		return domain.PortfolioData{}, fmt.Errorf("marshaling portfolio: %w", err)
	}

	if err := s.repo.Save(ctx, entityID, date, data); err != nil {
		return domain.PortfolioData{}, fmt.Errorf("saving snapshot: %w", err)
	}

	return portfolio, nil
}

// GetLatest retrieves the most recent snapshot for the entity.
func (s *Service) GetLatest(ctx context.Context, slug string) (*Snapshot, error) {
	return s.repo.GetLatest(ctx, slug)
}

// GetByDate retrieves a snapshot for a specific date.
func (s *Service) GetByDate(ctx context.Context, slug string, date time.Time) (*Snapshot, error) {
	return s.repo.GetByDate(ctx, slug, date)
}

// List retrieves up to limit snapshots, newest first.
func (s *Service) List(ctx context.Context, slug string, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, slug, limit)
}
