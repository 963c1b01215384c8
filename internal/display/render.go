// Package display projects ranked balances into formatted, USD-converted
// portfolio rows.
package display

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

// Render attaches the display projection to each ranked balance, preserving
// the ranked order exactly. A currency missing from the price table is a
// data-quality condition, not a failure: the row is kept and its USD value
// defaults to zero.
func Render(ranked []domain.RankedBalance, prices domain.PriceTable) []domain.DisplayRow {
	return lo.Map(ranked, func(b domain.RankedBalance, _ int) domain.DisplayRow {
		value := decimal.Zero
		if price, ok := prices.PriceFor(b.Currency); ok {
			value = b.Amount.Mul(price)
		}
		return domain.DisplayRow{
			RankedBalance:   b,
			FormattedAmount: domain.FormatAmount(b.Amount),
			USDValue:        value,
		}
	})
}

// Totals aggregates rendered rows into portfolio totals.
func Totals(rows []domain.DisplayRow) domain.PortfolioTotals {
	totalUSD := lo.Reduce(rows, func(acc decimal.Decimal, r domain.DisplayRow, _ int) decimal.Decimal {
		return domain.SafeSum(acc, r.USDValue)
	}, decimal.Zero)

	unpriced := lo.CountBy(rows, func(r domain.DisplayRow) bool {
		return r.USDValue.IsZero()
	})

	return domain.PortfolioTotals{
		TotalUSD:      totalUSD,
		RowCount:      len(rows),
		UnpricedCount: unpriced,
	}
}

// CrossRate converts an amount of the source currency into the target
// currency via each side's USD price. The conversion is undefined (ok=false)
// when the target price is zero or the amount is not strictly positive; the
// zero decimal returned in that case must not be displayed.
func CrossRate(amount, sourcePrice, targetPrice decimal.Decimal) (decimal.Decimal, bool) {
	if targetPrice.IsZero() || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount.Mul(sourcePrice).Div(targetPrice), true
}
