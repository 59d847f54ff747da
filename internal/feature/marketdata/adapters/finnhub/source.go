package finnhub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"portfolio_backend/internal/feature/marketdata/domain/entity"
	"portfolio_backend/internal/feature/marketdata/usecase"
	"portfolio_backend/internal/platform/externalapi/finnhub/dto"
)

// Client is the subset of the Finnhub API client used here.
type Client interface {
	Search(ctx context.Context, query string) (*dto.SearchResponse, error)
	Quote(ctx context.Context, symbol string) (*dto.QuoteResponse, error)
	Profile(ctx context.Context, symbol string) (*dto.ProfileResponse, error)
	Metric(ctx context.Context, symbol string) (*dto.MetricResponse, error)
	DailyCandles(ctx context.Context, symbol string, from, to time.Time) (*dto.CandleResponse, error)
}

var (
	errNoMatches     = errors.New("finnhub: no search results")
	errUnknownSymbol = errors.New("finnhub: unknown symbol")
	errEmptyBody     = errors.New("finnhub: empty response")
)

type sources struct {
	c   Client
	now func() time.Time
}

// NewSources builds the four Finnhub sources. now sets the end of the candle window;
// nil means time.Now.
func NewSources(c Client, now func() time.Time) usecase.ProviderSources {
	if now == nil {
		now = time.Now
	}
	s := &sources{c: c, now: now}
	return usecase.ProviderSources{
		Search:   usecase.SourceFunc[string, []entity.SearchMatch]{Provider: entity.ProviderFinnhub, Fn: s.search},
		Quote:    usecase.SourceFunc[string, *entity.Quote]{Provider: entity.ProviderFinnhub, Fn: s.quote},
		Overview: usecase.SourceFunc[string, *entity.Overview]{Provider: entity.ProviderFinnhub, Fn: s.overview},
		History:  usecase.SourceFunc[entity.HistoryRequest, entity.TimeSeries]{Provider: entity.ProviderFinnhub, Fn: s.history},
	}
}

func (s *sources) search(ctx context.Context, q string) usecase.Result[[]entity.SearchMatch] {
	res, err := s.c.Search(ctx, q)
	if err != nil {
		return usecase.Failed[[]entity.SearchMatch](usecase.TransportFailed, err)
	}
	if res == nil || len(res.Result) == 0 {
		return usecase.Empty([]entity.SearchMatch{}, errNoMatches)
	}
	return usecase.Succeeded(normalizeSearch(res))
}

func (s *sources) quote(ctx context.Context, symbol string) usecase.Result[*entity.Quote] {
	res, err := s.c.Quote(ctx, symbol)
	if err != nil {
		return usecase.Failed[*entity.Quote](usecase.TransportFailed, err)
	}
	if res == nil {
		return usecase.Failed[*entity.Quote](usecase.Malformed, errEmptyBody)
	}
	if res.Timestamp == 0 && res.Current.IsZero() {
		return usecase.Empty[*entity.Quote](nil, fmt.Errorf("%w: %s", errUnknownSymbol, symbol))
	}
	return usecase.Succeeded(normalizeQuote(res))
}

// overview needs the profile; a metrics failure only blanks the numbers.
func (s *sources) overview(ctx context.Context, symbol string) usecase.Result[*entity.Overview] {
	profile, err := s.c.Profile(ctx, symbol)
	if err != nil {
		return usecase.Failed[*entity.Overview](usecase.TransportFailed, err)
	}
	if profile == nil {
		profile = &dto.ProfileResponse{}
	}

	metric, err := s.c.Metric(ctx, symbol)
	if err != nil {
		slog.Warn("finnhub metrics unavailable, overview numbers left null", "symbol", symbol, "error", err)
		metric = nil
	}

	if profile.IsEmpty() && (metric == nil || len(metric.Metric) == 0) {
		return usecase.Empty[*entity.Overview](nil, fmt.Errorf("%w: %s", errUnknownSymbol, symbol))
	}
	return usecase.Succeeded(normalizeOverview(profile, metric))
}

func (s *sources) history(ctx context.Context, in entity.HistoryRequest) usecase.Result[entity.TimeSeries] {
	from, to := candleWindow(s.now(), in.Size)
	res, err := s.c.DailyCandles(ctx, in.Symbol, from, to)
	if err != nil {
		return usecase.Failed[entity.TimeSeries](usecase.TransportFailed, err)
	}
	if res == nil || res.Status != "ok" {
		status := ""
		if res != nil {
			status = res.Status
		}
		return usecase.Empty[entity.TimeSeries](nil, statusErr(status))
	}
	return usecase.Succeeded(normalizeCandles(res))
}
