package display

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

func ranked(chain domain.Chain, currency, amount string, precedence int) domain.RankedBalance {
	return domain.RankedBalance{
		Chain:      chain,
		Currency:   currency,
		Amount:     domain.SafeParse(amount),
		Precedence: precedence,
	}
}

func prices(pairs map[string]string) domain.PriceTable {
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

func TestRenderFormatsEightDecimals(t *testing.T) {
	rows := Render(
		[]domain.RankedBalance{ranked(domain.ChainEthereum, "ETH", "5.1", 50)},
		prices(map[string]string{"ETH": "1800"}),
	)

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].FormattedAmount != "5.10000000" {
		t.Errorf("FormattedAmount = %q, want 5.10000000", rows[0].FormattedAmount)
	}
	if rows[0].USDValue.String() != "9180" {
		t.Errorf("USDValue = %s, want 9180", rows[0].USDValue)
	}
}

func TestRenderMissingPriceDefaultsToZero(t *testing.T) {
	rows := Render(
		[]domain.RankedBalance{ranked(domain.ChainNeo, "NEO", "3", 20)},
		prices(nil),
	)

	if len(rows) != 1 {
		t.Fatalf("row with missing price was dropped, want kept")
	}
	if !rows[0].USDValue.IsZero() {
		t.Errorf("USDValue = %s, want 0 for missing price", rows[0].USDValue)
	}
}

func TestRenderPreservesOrder(t *testing.T) {
	in := []domain.RankedBalance{
		ranked(domain.ChainOsmosis, "OSMO", "1", 100),
		ranked(domain.ChainEthereum, "ETH", "1", 50),
		ranked(domain.ChainArbitrum, "ARB", "1", 30),
	}

	rows := Render(in, prices(map[string]string{"ETH": "1800"}))

	for i := range in {
		if rows[i].Currency != in[i].Currency {
			t.Errorf("position %d = %s, want %s (order must be preserved)", i, rows[i].Currency, in[i].Currency)
		}
	}
}

func TestTotals(t *testing.T) {
	rows := Render(
		[]domain.RankedBalance{
			ranked(domain.ChainEthereum, "ETH", "2", 50),
			ranked(domain.ChainNeo, "NEO", "3", 20),
		},
		prices(map[string]string{"ETH": "1000"}),
	)

	totals := Totals(rows)
	if totals.TotalUSD.String() != "2000" {
		t.Errorf("TotalUSD = %s, want 2000", totals.TotalUSD)
	}
	if totals.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", totals.RowCount)
	}
	if totals.UnpricedCount != 1 {
		t.Errorf("UnpricedCount = %d, want 1", totals.UnpricedCount)
	}
}

func TestCrossRate(t *testing.T) {
	tests := []struct {
		name                       string
		amount, srcPrice, tgtPrice string
		want                       string
		wantOK                     bool
	}{
		{"basic", "10", "2", "4", "5", true},
		{"target price zero", "10", "2", "0", "", false},
		{"zero amount", "0", "2", "4", "", false},
		{"negative amount", "-1", "2", "4", "", false},
		{"source price zero yields zero", "10", "0", "4", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CrossRate(
				domain.SafeParse(tt.amount),
				domain.SafeParse(tt.srcPrice),
				domain.SafeParse(tt.tgtPrice),
			)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("CrossRate = %s, want %s", got, want)
			}
		})
	}
}
