// Package rank classifies, filters and orders wallet balances by chain
// precedence.
package rank

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

// Unranked is the sentinel precedence for chains absent from the table.
// Records carrying it are excluded from the portfolio.
const Unranked = -99

// DefaultPrecedence returns the production precedence table. Higher values
// sort first.
func DefaultPrecedence() map[domain.Chain]int {
	return map[domain.Chain]int{
		domain.ChainOsmosis:  100,
		domain.ChainEthereum: 50,
		domain.ChainArbitrum: 30,
		domain.ChainZilliqa:  20,
		domain.ChainNeo:      20,
	}
}

// Ranker orders balances by an immutable precedence table injected at
// construction time.
type Ranker struct {
	precedence map[domain.Chain]int
}

// New creates a Ranker with its own copy of the given precedence table, so
// later mutation of the caller's map cannot change ranking results.
func New(precedence map[domain.Chain]int) *Ranker {
	table := make(map[domain.Chain]int, len(precedence))
	for chain, p := range precedence {
		table[chain] = p
	}
	return &Ranker{precedence: table}
}

// precedenceOf looks up a chain's precedence, mapping absent chains to
// Unranked.
func (r *Ranker) precedenceOf(chain domain.Chain) int {
	if p, ok := r.precedence[chain]; ok {
		return p
	}
	return Unranked
}

// Rank performs the single-pass classify/filter step and then sorts.
// Precedence is computed exactly once per balance and attached to the record;
// the sort comparator reads only the attached value, never the table. A
// balance survives iff its precedence is above Unranked and its amount is
// strictly positive. Surviving records are ordered by precedence descending;
// equal precedence resolves by currency ascending, then chain name ascending,
// so the order is total and reproducible for any input permutation.
func (r *Ranker) Rank(balances []domain.WalletBalance) []domain.RankedBalance {
	ranked := lo.FilterMap(balances, func(b domain.WalletBalance, _ int) (domain.RankedBalance, bool) {
		chain := domain.ChainFromName(b.Blockchain)
		precedence := r.precedenceOf(chain)
		amount := domain.SafeParse(b.Amount)

		if precedence <= Unranked || !amount.IsPositive() {
			return domain.RankedBalance{}, false
		}

		return domain.RankedBalance{
			Chain:      chain,
			Currency:   b.Currency,
			Amount:     amount,
			Precedence: precedence,
		}, true
	})

	slices.SortStableFunc(ranked, compareRanked)
	return ranked
}

// compareRanked defines the total display order: precedence descending,
// then currency ascending, then chain name ascending.
func compareRanked(a, b domain.RankedBalance) int {
	if a.Precedence != b.Precedence {
		if a.Precedence > b.Precedence {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.Currency, b.Currency); c != 0 {
		return c
	}
	return strings.Compare(string(a.Chain), string(b.Chain))
}
