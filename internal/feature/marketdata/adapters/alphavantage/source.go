package alphavantage

import (
	"context"

	"portfolio_backend/internal/feature/marketdata/domain/entity"
	"portfolio_backend/internal/feature/marketdata/usecase"
)

// Client is the subset of the Alpha Vantage API client used here.
type Client interface {
	SymbolSearch(ctx context.Context, keywords string) (any, error)
	GlobalQuote(ctx context.Context, symbol string) (any, error)
	Overview(ctx context.Context, symbol string) (any, error)
	TimeSeriesDaily(ctx context.Context, symbol, outputSize string) (any, error)
}

// NewSources builds the four Alpha Vantage sources.
func NewSources(c Client) usecase.ProviderSources {
	return usecase.ProviderSources{
		Search: usecase.SourceFunc[string, []entity.SearchMatch]{
			Provider: entity.ProviderAlphaVantage,
			Fn: func(ctx context.Context, q string) usecase.Result[[]entity.SearchMatch] {
				body, err := c.SymbolSearch(ctx, q)
				return run(body, err, markerSearch, []entity.SearchMatch{}, normalizeSearch)
			},
		},
		Quote: usecase.SourceFunc[string, *entity.Quote]{
			Provider: entity.ProviderAlphaVantage,
			Fn: func(ctx context.Context, symbol string) usecase.Result[*entity.Quote] {
				body, err := c.GlobalQuote(ctx, symbol)
				return run[*entity.Quote](body, err, markerQuote, nil, normalizeQuote)
			},
		},
		Overview: usecase.SourceFunc[string, *entity.Overview]{
			Provider: entity.ProviderAlphaVantage,
			Fn: func(ctx context.Context, symbol string) usecase.Result[*entity.Overview] {
				body, err := c.Overview(ctx, symbol)
				return run[*entity.Overview](body, err, markerOverview, nil, normalizeOverview)
			},
		},
		History: usecase.SourceFunc[entity.HistoryRequest, entity.TimeSeries]{
			Provider: entity.ProviderAlphaVantage,
			Fn: func(ctx context.Context, in entity.HistoryRequest) usecase.Result[entity.TimeSeries] {
				body, err := c.TimeSeriesDaily(ctx, in.Symbol, string(in.Size))
				return run[entity.TimeSeries](body, err, markerHistory, nil, normalizeHistory)
			},
		},
	}
}

// run classifies one response and normalizes it when it is a success.
func run[T any](body any, err error, marker string, empty T, normalize func(any) (T, error)) usecase.Result[T] {
	if err != nil {
		return usecase.Failed[T](usecase.TransportFailed, err)
	}
	outcome, cerr := classify(body, marker)
	switch outcome {
	case usecase.Success:
	case usecase.NoData:
		return usecase.Empty(empty, cerr)
	default:
		return usecase.Failed[T](outcome, cerr)
	}
	v, nerr := normalize(body)
	if nerr != nil {
		return usecase.Failed[T](usecase.Malformed, nerr)
	}
	return usecase.Succeeded(v)
}
