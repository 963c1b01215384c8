// Package swap validates swap requests and computes cross-rate quotes from
// the canonical price table.
package swap

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tokenfolio/swapdesk/internal/display"
	"github.com/tokenfolio/swapdesk/internal/domain"
)

// ErrRateUnavailable indicates that no conversion rate exists for the
// requested pair: the target currency has no positive canonical price. The
// quote result is empty, never infinite.
var ErrRateUnavailable = errors.New("conversion rate unavailable")

// ValidationError carries a human-readable message for a request the user
// can correct. The pipeline is not consulted for such requests.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PriceSource supplies the current canonical price table. The boolean is
// false while the first feed fetch is still outstanding.
type PriceSource interface {
	Prices() (domain.PriceTable, bool)
}

// QuoteRequest is a swap quote request as submitted by the caller. Amount is
// the raw free-text entry.
type QuoteRequest struct {
	SourceCurrency string `json:"source"`
	TargetCurrency string `json:"target"`
	Amount         string `json:"amount"`
}

// QuoteResult is a computed cross-rate quote.
type QuoteResult struct {
	SourceCurrency  string          `json:"source"`
	TargetCurrency  string          `json:"target"`
	SourceAmount    decimal.Decimal `json:"sourceAmount"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	FormattedTarget string          `json:"formattedTarget"`
}

// Quoter answers swap quote requests against the latest price snapshot.
type Quoter struct {
	prices PriceSource
}

// NewQuoter creates a Quoter reading prices from the given source.
func NewQuoter(prices PriceSource) *Quoter {
	return &Quoter{prices: prices}
}

// Quote validates the request and computes the converted target amount as
// sourceAmount * sourcePrice / targetPrice. User-correctable problems come
// back as *ValidationError; a missing or zero target price comes back as
// ErrRateUnavailable. A missing source price is a data-quality condition and
// quotes a zero target amount.
func (q *Quoter) Quote(req QuoteRequest) (QuoteResult, error) {
	if req.SourceCurrency == "" {
		return QuoteResult{}, &ValidationError{Message: "select a token to swap from"}
	}
	if req.TargetCurrency == "" {
		return QuoteResult{}, &ValidationError{Message: "select a token to swap to"}
	}
	if req.Amount == "" {
		return QuoteResult{}, &ValidationError{Message: "enter an amount"}
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return QuoteResult{}, &ValidationError{Message: "amount must be a valid number"}
	}
	if !amount.IsPositive() {
		return QuoteResult{}, &ValidationError{Message: "amount must be greater than zero"}
	}

	table, ready := q.prices.Prices()
	if !ready {
		return QuoteResult{}, ErrRateUnavailable
	}

	sourcePrice, _ := table.PriceFor(req.SourceCurrency)
	targetPrice, ok := table.PriceFor(req.TargetCurrency)
	if !ok {
		return QuoteResult{}, ErrRateUnavailable
	}

	target, ok := display.CrossRate(amount, sourcePrice, targetPrice)
	if !ok {
		return QuoteResult{}, ErrRateUnavailable
	}

	return QuoteResult{
		SourceCurrency:  req.SourceCurrency,
		TargetCurrency:  req.TargetCurrency,
		SourceAmount:    amount,
		TargetAmount:    target,
		FormattedTarget: domain.FormatAmount(target),
	}, nil
}
