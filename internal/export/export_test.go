package export

import (
	"context"
	"testing"
	"time"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

func testPortfolio() domain.PortfolioData {
	eth := domain.RankedBalance{
		Chain:      domain.ChainEthereum,
		Currency:   "ETH",
		Amount:     domain.SafeParse("5.1"),
		Precedence: 50,
	}
	return domain.PortfolioData{
		Rows: []domain.DisplayRow{
			{RankedBalance: eth, FormattedAmount: "5.10000000", USDValue: domain.SafeParse("9180")},
		},
		Totals:      domain.PortfolioTotals{TotalUSD: domain.SafeParse("9180"), RowCount: 1},
		GeneratedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildPortfolioValues(t *testing.T) {
	values := PortfolioValues(testPortfolio())

	// header + 1 row + blank + totals
	if len(values) != 4 {
		t.Fatalf("value rows = %d, want 4", len(values))
	}
	if values[0][0] != "Blockchain" {
		t.Errorf("header[0] = %v, want Blockchain", values[0][0])
	}
	row := values[1]
	if row[0] != "Ethereum" || row[1] != "ETH" || row[4] != "5.10000000" {
		t.Errorf("data row = %v", row)
	}
	totals := values[3]
	if totals[0] != "Total" || totals[5] != "9180" {
		t.Errorf("totals row = %v", totals)
	}
}

type captureWriter struct {
	values [][]any
}

func (c *captureWriter) Write(_ context.Context, values [][]any) error {
	c.values = values
	return nil
}

func TestServiceExport(t *testing.T) {
	writer := &captureWriter{}
	svc := NewService(writer)

	if err := svc.Export(context.Background(), testPortfolio()); err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if len(writer.values) == 0 {
		t.Fatal("nothing written")
	}
}

func TestBuildWorkbook(t *testing.T) {
	f, err := BuildWorkbook(PortfolioValues(testPortfolio()))
	if err != nil {
		t.Fatalf("BuildWorkbook error: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Portfolio", "B2")
	if err != nil {
		t.Fatalf("GetCellValue error: %v", err)
	}
	if got != "ETH" {
		t.Errorf("B2 = %q, want ETH", got)
	}
}
