package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceObservation is one raw price reading from the feed. Price and
// ObservedAt are kept as the feed's wire strings; parsing (and the decision
// to drop malformed records) belongs to the normalizer.
type PriceObservation struct {
	Currency   string `json:"currency"`
	Price      string `json:"price"`
	ObservedAt string `json:"date"`
}

// CanonicalPrice is the single freshest valid observation retained per
// currency after normalization.
type CanonicalPrice struct {
	Currency   string          `json:"currency"`
	Price      decimal.Decimal `json:"price"`
	ObservedAt time.Time       `json:"observedAt"`
}

// PriceTable maps currency symbols to their canonical prices. Iteration
// order is undefined; downstream stages must not depend on it.
type PriceTable map[string]CanonicalPrice

// PriceFor returns the canonical price for a currency and whether one exists.
func (t PriceTable) PriceFor(currency string) (decimal.Decimal, bool) {
	p, ok := t[currency]
	if !ok {
		return decimal.Zero, false
	}
	return p.Price, true
}
