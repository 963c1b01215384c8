// Package export renders portfolio snapshots into spreadsheet destinations.
package export

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

// portfolioHeader defines the Portfolio sheet columns.
// Columns: Blockchain | Currency | Precedence | Amount | Formatted | USD Value
var portfolioHeader = []any{"Blockchain", "Currency", "Precedence", "Amount", "Formatted", "USD Value"}

// SheetWriter writes tabular portfolio values to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, values [][]any) error
}

// Service renders portfolio data and delegates writing to a SheetWriter.
type Service struct {
	writer SheetWriter
}

// NewService creates a new export Service.
func NewService(writer SheetWriter) *Service {
	return &Service{writer: writer}
}

// Export writes the portfolio to the configured sheet destination.
// Implements worker.AfterSnapshotHook.
func (s *Service) Export(ctx context.Context, data domain.PortfolioData) error {
	if err := s.writer.Write(ctx, PortfolioValues(data)); err != nil {
		return fmt.Errorf("writing portfolio sheet: %w", err)
	}
	return nil
}

// PortfolioValues builds the Portfolio sheet data: a header, one row
// per display row in pipeline order, and a totals footer.
func PortfolioValues(data domain.PortfolioData) [][]any {
	values := make([][]any, 0, len(data.Rows)+3)
	values = append(values, portfolioHeader)

	values = append(values, lo.Map(data.Rows, func(r domain.DisplayRow, _ int) []any {
		return []any{
			r.Chain.String(),
			r.Currency,
			r.Precedence,
			r.Amount.String(),
			r.FormattedAmount,
			r.USDValue.String(),
		}
	})...)

	values = append(values,
		[]any{},
		[]any{"Total", "", "", "", "", data.Totals.TotalUSD.String()},
	)

	return values
}
