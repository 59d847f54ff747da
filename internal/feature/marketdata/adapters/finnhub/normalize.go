// Package finnhub adapts the Finnhub client to the market-data sources.
package finnhub

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"portfolio_backend/internal/feature/marketdata/domain/entity"
	"portfolio_backend/internal/platform/externalapi/finnhub/dto"
)

var (
	hundred = decimal.NewFromInt(100)
	million = decimal.NewFromInt(1_000_000)
)

// Metric keys, TTM first.
var (
	keysDividendYield    = []string{"currentDividendYieldTTM", "dividendYieldIndicatedAnnual"}
	keysDividendPerShare = []string{"dividendPerShareTTM", "dividendPerShareAnnual"}
	keysPERatio          = []string{"peTTM", "peBasicExclExtraTTM", "peAnnual"}
	keysEPS              = []string{"epsTTM", "epsBasicExclExtraItemsTTM", "epsAnnual"}
	keysBookValue        = []string{"bookValuePerShareQuarterly", "bookValuePerShareAnnual"}
	keysPayoutRatio      = []string{"payoutRatioTTM", "payoutRatioAnnual"}
	keysReturnOnEquity   = []string{"roeTTM", "roeRfy"}
	keysMarketCap        = []string{"marketCapitalization"}
)

func normalizeSearch(res *dto.SearchResponse) []entity.SearchMatch {
	n := min(len(res.Result), entity.MaxSecondarySearchMatches)
	out := make([]entity.SearchMatch, 0, n)
	for _, r := range res.Result[:n] {
		out = append(out, entity.SearchMatch{
			Symbol: r.Symbol,
			Name:   r.Description,
			Type:   r.Type,
		})
	}
	return out
}

// normalizeQuote derives change and changePercent from the previous close.
// changePercent is in percentage units.
func normalizeQuote(res *dto.QuoteResponse) *entity.Quote {
	change := res.Current.Sub(res.PreviousClose)
	pct := decimal.Zero
	if !res.PreviousClose.IsZero() {
		pct = change.Div(res.PreviousClose).Mul(hundred).Round(4)
	}
	return &entity.Quote{Price: res.Current, Change: change, ChangePercent: pct}
}

// normalizeOverview merges the company profile with its metrics. metric may be nil.
func normalizeOverview(profile *dto.ProfileResponse, metric *dto.MetricResponse) *entity.Overview {
	o := entity.NewOverview()
	o.Name = orNA(profile.Name)
	o.Exchange = orNA(profile.Exchange)
	o.Sector = orNA(profile.FinnhubIndustry)
	o.Industry = orNA(profile.FinnhubIndustry)

	var m map[string]any
	if metric != nil {
		m = metric.Metric
	}

	o.MarketCapitalization = profile.MarketCapitalization
	if !o.MarketCapitalization.Valid {
		o.MarketCapitalization = first(m, keysMarketCap...)
	}
	o.MarketCapitalization = scale(o.MarketCapitalization, million, false)

	o.DividendYield = scale(first(m, keysDividendYield...), hundred, true)
	o.DividendPerShare = first(m, keysDividendPerShare...)
	o.Week52High = first(m, "52WeekHigh")
	o.Week52Low = first(m, "52WeekLow")
	o.PERatio = first(m, keysPERatio...)
	o.EPS = first(m, keysEPS...)
	o.BookValue = first(m, keysBookValue...)
	o.PayoutRatio = scale(first(m, keysPayoutRatio...), hundred, true)
	o.ReturnOnEquity = scale(first(m, keysReturnOnEquity...), hundred, true)
	return &o
}

// normalizeCandles turns the parallel arrays into a date-keyed series.
// Timestamps are unix seconds; the key is their UTC calendar date.
func normalizeCandles(res *dto.CandleResponse) entity.TimeSeries {
	n := min(len(res.Timestamp), len(res.Open), len(res.High), len(res.Low), len(res.Close), len(res.Volume))
	out := make(entity.TimeSeries, n)
	for i := range n {
		day := time.Unix(res.Timestamp[i], 0).UTC().Format(entity.DateLayout)
		out[day] = entity.OHLCV{
			Open:   res.Open[i],
			High:   res.High[i],
			Low:    res.Low[i],
			Close:  res.Close[i],
			Volume: res.Volume[i],
		}
	}
	return out
}

func orNA(s string) string {
	if s == "" {
		return entity.NotAvailable
	}
	return s
}

// first returns the first key of m holding a number.
func first(m map[string]any, keys ...string) decimal.NullDecimal {
	for _, k := range keys {
		if d, ok := toDecimal(m[k]); ok {
			return decimal.NewNullDecimal(d)
		}
	}
	return decimal.NullDecimal{}
}

// scale divides (div=true) or multiplies a nullable value by f.
func scale(v decimal.NullDecimal, f decimal.Decimal, div bool) decimal.NullDecimal {
	if !v.Valid {
		return v
	}
	if div {
		return decimal.NewNullDecimal(v.Decimal.Div(f))
	}
	return decimal.NewNullDecimal(v.Decimal.Mul(f))
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case string:
		d, err := decimal.NewFromString(t)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

func candleWindow(now time.Time, size entity.OutputSize) (from, to time.Time) {
	days := 150
	if size == entity.OutputSizeFull {
		days = 365
	}
	return now.AddDate(0, 0, -days), now
}

func statusErr(status string) error {
	return fmt.Errorf("finnhub: candle status %q", status)
}
