// Package entity defines the valuation read models: holdings priced with market data,
// portfolio totals and the portfolio value series.
package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	portfolio "portfolio_backend/internal/feature/portfolio/domain/entity"
)

// PricedHolding is a holding joined with its latest quote and overview.
// Market fields are null when the market-data layer had no answer.
type PricedHolding struct {
	Holding portfolio.Holding

	CurrentPrice     decimal.NullDecimal
	Change           decimal.NullDecimal
	ChangePercent    decimal.NullDecimal
	DividendYield    decimal.NullDecimal
	DividendPerShare decimal.NullDecimal

	Cost           decimal.Decimal
	Value          decimal.NullDecimal
	Gain           decimal.NullDecimal
	GainPercent    decimal.NullDecimal
	AnnualDividend decimal.Decimal
}

// Summary aggregates a portfolio. Holdings without a price count as value 0.
type Summary struct {
	TotalCost        decimal.Decimal
	TotalValue       decimal.Decimal
	TotalGain        decimal.Decimal
	TotalGainPercent decimal.Decimal
	AnnualDividends  decimal.Decimal
}

// Valuation is the response of the valuation endpoint.
type Valuation struct {
	Holdings []PricedHolding
	Summary  Summary
}

// HistoryPoint is the portfolio on one trading date.
type HistoryPoint struct {
	Date        string
	Value       decimal.Decimal
	Cost        decimal.Decimal
	Gain        decimal.Decimal
	GainPercent decimal.Decimal
}

// Range selects how far back the history goes.
type Range string

const (
	Range1W  Range = "1W"
	Range1M  Range = "1M"
	Range3M  Range = "3M"
	Range6M  Range = "6M"
	Range1Y  Range = "1Y"
	RangeAll Range = "ALL"
)

// ParseRange accepts the range names case-insensitively. Empty means 1M.
func ParseRange(s string) (Range, bool) {
	if s == "" {
		return Range1M, true
	}
	switch r := Range(strings.ToUpper(s)); r {
	case Range1W, Range1M, Range3M, Range6M, Range1Y, RangeAll:
		return r, true
	}
	return "", false
}

// Start returns the first date included in r relative to now, and false for RangeAll.
func (r Range) Start(now time.Time) (time.Time, bool) {
	switch r {
	case Range1W:
		return now.AddDate(0, 0, -7), true
	case Range3M:
		return now.AddDate(0, -3, 0), true
	case Range6M:
		return now.AddDate(0, -6, 0), true
	case Range1Y:
		return now.AddDate(-1, 0, 0), true
	case RangeAll:
		return time.Time{}, false
	default:
		return now.AddDate(0, -1, 0), true
	}
}
