package entity

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DateLayout is the key format of a TimeSeries (calendar date, no time component).
const DateLayout = "2006-01-02"

// OHLCV is one trading day. Values serialize as JSON strings ("10.5").
type OHLCV struct {
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}

// TimeSeries maps a trading date (DateLayout) to its OHLCV. Map order carries no meaning.
type TimeSeries map[string]OHLCV

// Dates returns the keys in ascending order.
func (ts TimeSeries) Dates() []string {
	out := make([]string, 0, len(ts))
	for d := range ts {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// OutputSize selects how much history is requested.
type OutputSize string

const (
	// OutputSizeCompact asks for roughly the last 100 sessions.
	OutputSizeCompact OutputSize = "compact"
	// OutputSizeFull asks for up to a year of sessions.
	OutputSizeFull OutputSize = "full"
)

// ParseOutputSize maps anything other than "full" to OutputSizeCompact.
func ParseOutputSize(s string) OutputSize {
	if OutputSize(s) == OutputSizeFull {
		return OutputSizeFull
	}
	return OutputSizeCompact
}
