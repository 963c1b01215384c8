// Package normalize collapses a raw price feed into one canonical price per
// currency.
package normalize

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

// Normalize collapses raw observations into a canonical price table holding,
// per currency, the valid observation with the latest timestamp. Observations
// with an unparsable price or date, or with price <= 0, are dropped silently;
// a single malformed record never fails the run. The result is independent
// of input order: when two observations for the same currency carry the same
// timestamp, the higher price wins.
func Normalize(observations []domain.PriceObservation) domain.PriceTable {
	table := make(domain.PriceTable, len(observations))

	for _, obs := range observations {
		price, err := decimal.NewFromString(obs.Price)
		if err != nil || !price.IsPositive() {
			continue
		}
		observedAt, err := time.Parse(time.RFC3339, obs.ObservedAt)
		if err != nil {
			continue
		}

		candidate := domain.CanonicalPrice{
			Currency:   obs.Currency,
			Price:      price,
			ObservedAt: observedAt,
		}

		current, ok := table[obs.Currency]
		if !ok || fresher(candidate, current) {
			table[obs.Currency] = candidate
		}
	}

	return table
}

// fresher reports whether a should replace b as the canonical observation.
func fresher(a, b domain.CanonicalPrice) bool {
	if !a.ObservedAt.Equal(b.ObservedAt) {
		return a.ObservedAt.After(b.ObservedAt)
	}
	return a.Price.GreaterThan(b.Price)
}
