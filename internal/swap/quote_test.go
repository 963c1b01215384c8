package swap

import (
	"errors"
	"testing"
	"time"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

type staticPrices struct {
	table domain.PriceTable
	ready bool
}

func (s staticPrices) Prices() (domain.PriceTable, bool) { return s.table, s.ready }

func tableOf(pairs map[string]string) domain.PriceTable {
	table := make(domain.PriceTable, len(pairs))
	for currency, price := range pairs {
		table[currency] = domain.CanonicalPrice{
			Currency:   currency,
			Price:      domain.SafeParse(price),
			ObservedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return table
}

func TestQuoteCrossRate(t *testing.T) {
	q := NewQuoter(staticPrices{table: tableOf(map[string]string{"AAA": "2", "BBB": "4"}), ready: true})

	res, err := q.Quote(QuoteRequest{SourceCurrency: "AAA", TargetCurrency: "BBB", Amount: "10"})
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if res.TargetAmount.String() != "5" {
		t.Errorf("TargetAmount = %s, want 5", res.TargetAmount)
	}
	if res.FormattedTarget != "5.00000000" {
		t.Errorf("FormattedTarget = %q, want 5.00000000", res.FormattedTarget)
	}
}

func TestQuoteValidation(t *testing.T) {
	q := NewQuoter(staticPrices{table: tableOf(map[string]string{"AAA": "2", "BBB": "4"}), ready: true})

	tests := []struct {
		name string
		req  QuoteRequest
	}{
		{"missing source", QuoteRequest{TargetCurrency: "BBB", Amount: "10"}},
		{"missing target", QuoteRequest{SourceCurrency: "AAA", Amount: "10"}},
		{"empty amount", QuoteRequest{SourceCurrency: "AAA", TargetCurrency: "BBB"}},
		{"zero amount", QuoteRequest{SourceCurrency: "AAA", TargetCurrency: "BBB", Amount: "0"}},
		{"negative amount", QuoteRequest{SourceCurrency: "AAA", TargetCurrency: "BBB", Amount: "-5"}},
		{"garbage amount", QuoteRequest{SourceCurrency: "AAA", TargetCurrency: "BBB", Amount: "ten"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := q.Quote(tt.req)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if vErr.Message == "" {
				t.Error("validation message is empty")
			}
		})
	}
}

func TestQuoteTargetPriceUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		table domain.PriceTable
		ready bool
	}{
		{"target absent", tableOf(map[string]string{"AAA": "2"}), true},
		{"prices not ready", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuoter(staticPrices{table: tt.table, ready: tt.ready})
			_, err := q.Quote(QuoteRequest{SourceCurrency: "AAA", TargetCurrency: "BBB", Amount: "10"})
			if !errors.Is(err, ErrRateUnavailable) {
				t.Errorf("err = %v, want ErrRateUnavailable", err)
			}
		})
	}
}

func TestQuoteMissingSourcePriceYieldsZero(t *testing.T) {
	q := NewQuoter(staticPrices{table: tableOf(map[string]string{"BBB": "4"}), ready: true})

	res, err := q.Quote(QuoteRequest{SourceCurrency: "AAA", TargetCurrency: "BBB", Amount: "10"})
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if !res.TargetAmount.IsZero() {
		t.Errorf("TargetAmount = %s, want 0 for unpriced source", res.TargetAmount)
	}
}
