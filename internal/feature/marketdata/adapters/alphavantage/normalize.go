package alphavantage

import (
	"fmt"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"portfolio_backend/internal/feature/marketdata/domain/entity"
)

func normalizeSearch(body any) ([]entity.SearchMatch, error) {
	raw, ok := lookup(body, markerSearch)
	if !ok {
		return nil, errMissingField
	}
	rows, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("alphavantage: bestMatches is %T", raw)
	}
	out := make([]entity.SearchMatch, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.SearchMatch{
			Symbol: text(row, `$["1. symbol"]`),
			Name:   text(row, `$["2. name"]`),
			Type:   text(row, `$["3. type"]`),
			Region: text(row, `$["4. region"]`),
		})
	}
	return out, nil
}

func normalizeQuote(body any) (*entity.Quote, error) {
	price := number(body, markerQuote)
	if !price.Valid {
		return nil, fmt.Errorf("alphavantage: unparsable price %q", text(body, markerQuote))
	}
	pct := strings.TrimSuffix(text(body, `$["Global Quote"]["10. change percent"]`), "%")
	return &entity.Quote{
		Price:         price.Decimal,
		Change:        number(body, `$["Global Quote"]["09. change"]`).Decimal,
		ChangePercent: parse(pct).Decimal,
	}, nil
}

// Overview yields arrive as fractions already.
func normalizeOverview(body any) (*entity.Overview, error) {
	o := entity.NewOverview()
	o.Name = descriptive(body, `$.Name`)
	o.Exchange = descriptive(body, `$.Exchange`)
	o.Sector = descriptive(body, `$.Sector`)
	o.Industry = descriptive(body, `$.Industry`)
	o.Description = descriptive(body, `$.Description`)
	o.MarketCapitalization = number(body, `$.MarketCapitalization`)
	o.DividendYield = number(body, `$.DividendYield`)
	o.DividendPerShare = number(body, `$.DividendPerShare`)
	o.Week52High = number(body, `$["52WeekHigh"]`)
	o.Week52Low = number(body, `$["52WeekLow"]`)
	o.PERatio = number(body, `$.PERatio`)
	o.EPS = number(body, `$.EPS`)
	o.BookValue = number(body, `$.BookValue`)
	o.PayoutRatio = number(body, `$.PayoutRatio`)
	o.ExDividendDate = date(body, `$.ExDividendDate`)
	o.ReturnOnEquity = number(body, `$.ReturnOnEquityTTM`)
	o.MovingAverage50Day = number(body, `$["50DayMovingAverage"]`)
	o.MovingAverage200Day = number(body, `$["200DayMovingAverage"]`)
	return &o, nil
}

func normalizeHistory(body any) (entity.TimeSeries, error) {
	raw, ok := lookup(body, markerHistory)
	if !ok {
		return nil, errMissingField
	}
	days, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("alphavantage: time series is %T", raw)
	}
	out := make(entity.TimeSeries, len(days))
	for day, bar := range days {
		if _, err := time.Parse(entity.DateLayout, day); err != nil {
			continue
		}
		out[day] = entity.OHLCV{
			Open:   number(bar, `$["1. open"]`).Decimal,
			High:   number(bar, `$["2. high"]`).Decimal,
			Low:    number(bar, `$["3. low"]`).Decimal,
			Close:  number(bar, `$["4. close"]`).Decimal,
			Volume: number(bar, `$["5. volume"]`).Decimal,
		}
	}
	return out, nil
}

// text returns the string at path, or "" when absent or not a string.
func text(v any, path string) string {
	raw, ok := lookup(v, path)
	if !ok {
		return ""
	}
	s, _ := raw.(string)
	return strings.TrimSpace(s)
}

func descriptive(v any, path string) string {
	s := text(v, path)
	if s == "" || s == "None" || s == "-" {
		return entity.NotAvailable
	}
	return s
}

func number(v any, path string) decimal.NullDecimal {
	return parse(text(v, path))
}

// parse maps Alpha Vantage placeholders ("None", "-", "") to null.
func parse(s string) decimal.NullDecimal {
	switch s {
	case "", "None", "-":
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func date(v any, path string) *openapi_types.Date {
	t, err := time.Parse(entity.DateLayout, text(v, path))
	if err != nil {
		return nil
	}
	return &openapi_types.Date{Time: t}
}
