package alphavantage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio_backend/internal/feature/marketdata/domain/entity"
	"portfolio_backend/internal/feature/marketdata/usecase"
)

type fakeClient struct {
	body  any
	err   error
	calls int
	args  []string
}

func (f *fakeClient) respond(args ...string) (any, error) {
	f.calls++
	f.args = args
	return f.body, f.err
}

func (f *fakeClient) SymbolSearch(_ context.Context, keywords string) (any, error) {
	return f.respond(keywords)
}

func (f *fakeClient) GlobalQuote(_ context.Context, symbol string) (any, error) {
	return f.respond(symbol)
}

func (f *fakeClient) Overview(_ context.Context, symbol string) (any, error) {
	return f.respond(symbol)
}

func (f *fakeClient) TimeSeriesDaily(_ context.Context, symbol, outputSize string) (any, error) {
	return f.respond(symbol, outputSize)
}

var _ Client = (*fakeClient)(nil)

func TestSources_Quote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		err     error
		outcome usecase.Outcome
	}{
		{"success", `{"Global Quote":{"05. price":"10","09. change":"1","10. change percent":"11.1111%"}}`, nil, usecase.Success},
		{"rate limited", `{"Note":"slow down"}`, nil, usecase.RateLimited},
		{"unknown symbol", `{"Global Quote":{}}`, nil, usecase.NoData},
		{"bad price", `{"Global Quote":{"05. price":"abc"}}`, nil, usecase.Malformed},
		{"transport", `{}`, errors.New("dial tcp: refused"), usecase.TransportFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fc := &fakeClient{body: decode(t, tt.body), err: tt.err}
			src := NewSources(fc).Quote

			r := src.Attempt(context.Background(), "AAPL")
			assert.Equal(t, tt.outcome, r.Outcome)
			assert.Equal(t, 1, fc.calls)
			assert.Equal(t, entity.ProviderAlphaVantage, src.Name())
			if tt.outcome == usecase.Success {
				assert.Equal(t, "10", r.Value.Price.String())
				assert.Equal(t, "11.1111", r.Value.ChangePercent.String())
			} else {
				assert.Nil(t, r.Value)
			}
		})
	}
}

func TestSources_SearchNoDataIsEmptySlice(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{body: decode(t, `{"bestMatches":[]}`)}
	r := NewSources(fc).Search.Attempt(context.Background(), "zzzz")

	assert.Equal(t, usecase.NoData, r.Outcome)
	assert.NotNil(t, r.Value)
	assert.Empty(t, r.Value)
}

func TestSources_HistoryPassesOutputSize(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{body: decode(t, `{"Time Series (Daily)":{"2024-01-02":{"4. close":"1"}}}`)}
	r := NewSources(fc).History.Attempt(context.Background(), entity.HistoryRequest{Symbol: "IBM", Size: entity.OutputSizeFull})

	assert.Equal(t, usecase.Success, r.Outcome)
	assert.Equal(t, []string{"IBM", "full"}, fc.args)
	assert.Len(t, r.Value, 1)
}
