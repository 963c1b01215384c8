package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletBalance is one raw balance tuple as supplied by the balances
// collaborator. Blockchain is the collaborator's free-form name; it is
// classified into a Chain during ranking.
type WalletBalance struct {
	Blockchain string `json:"blockchain"`
	Currency   string `json:"currency"`
	Amount     string `json:"amount"`
}

// RankedBalance is a balance that survived classification and filtering,
// with its precedence computed once and carried immutably through sort and
// formatting.
type RankedBalance struct {
	Chain      Chain           `json:"blockchain"`
	Currency   string          `json:"currency"`
	Amount     decimal.Decimal `json:"amount"`
	Precedence int             `json:"precedence"`
}

// DisplayRow is a ranked balance with its display projection attached:
// a fixed 8-decimal textual amount and the USD value derived from the
// canonical price table.
type DisplayRow struct {
	RankedBalance
	FormattedAmount string          `json:"formattedAmount"`
	USDValue        decimal.Decimal `json:"usdValue"`
}

// PortfolioTotals aggregates a rendered portfolio.
type PortfolioTotals struct {
	TotalUSD      decimal.Decimal `json:"totalUsd"`
	RowCount      int             `json:"rowCount"`
	UnpricedCount int             `json:"unpricedCount"`
}

// PortfolioData is the immutable output snapshot of one full pipeline run.
// A completed refresh replaces the previous snapshot wholesale; rows are
// never mutated in place.
type PortfolioData struct {
	Rows        []DisplayRow    `json:"rows"`
	Totals      PortfolioTotals `json:"totals"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
