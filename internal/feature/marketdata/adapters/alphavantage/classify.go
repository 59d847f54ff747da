// Package alphavantage adapts the Alpha Vantage client to the market-data sources.
//
// Alpha Vantage answers almost everything with HTTP 200, so throttling notices and unknown
// symbols are recognized from the body. The body is kept as generic JSON and probed with
// JSONPath because its keys ("05. price", "Time Series (Daily)") do not map onto Go names.
package alphavantage

import (
	"errors"
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"portfolio_backend/internal/feature/marketdata/usecase"
)

// Success markers, one per operation.
const (
	markerSearch   = `$.bestMatches`
	markerQuote    = `$["Global Quote"]["05. price"]`
	markerOverview = `$.Symbol`
	markerHistory  = `$["Time Series (Daily)"]`
)

var (
	errRateLimited  = errors.New("alphavantage: rate limited")
	errNotObject    = errors.New("alphavantage: body is not a JSON object")
	errMissingField = errors.New("alphavantage: success marker missing")
)

// classify inspects a decoded body for one operation. An empty value at marker counts as
// no data.
func classify(body any, marker string) (usecase.Outcome, error) {
	if _, ok := body.(map[string]any); !ok {
		return usecase.Malformed, errNotObject
	}
	for _, notice := range []string{`$.Note`, `$.Information`} {
		if v, ok := lookup(body, notice); ok {
			return usecase.RateLimited, fmt.Errorf("%w: %v", errRateLimited, v)
		}
	}
	if v, ok := lookup(body, `$["Error Message"]`); ok {
		return usecase.NoData, fmt.Errorf("alphavantage: %v", v)
	}

	v, ok := lookup(body, marker)
	if !ok || v == nil || isEmpty(v) {
		return usecase.NoData, fmt.Errorf("%w: %s", errMissingField, marker)
	}
	return usecase.Success, nil
}

func lookup(body any, path string) (any, bool) {
	v, err := jsonpath.Get(path, body)
	if err != nil {
		return nil, false
	}
	return v, true
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case string:
		return t == ""
	}
	return false
}
