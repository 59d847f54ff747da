package usecase

import (
	"context"
	"log/slog"

	"portfolio_backend/internal/feature/marketdata/domain/entity"
)

const (
	opSearch   = "search"
	opQuote    = "quote"
	opOverview = "overview"
	opHistory  = "history"
)

// ProviderSources bundles one provider's sources for the four operations.
// Adapters build one of these per upstream; the usecase orders them.
type ProviderSources struct {
	Search   Source[string, []entity.SearchMatch]
	Quote    Source[string, *entity.Quote]
	Overview Source[string, *entity.Overview]
	History  Source[entity.HistoryRequest, entity.TimeSeries]
}

// MarketDataUsecase serves the canonical market-data operations. It is stateless and safe
// for concurrent use; invocations for different symbols race freely.
type MarketDataUsecase struct {
	search   *Chain[string, []entity.SearchMatch]
	quote    *Chain[string, *entity.Quote]
	overview *Chain[string, *entity.Overview]
	history  *Chain[entity.HistoryRequest, entity.TimeSeries]
}

// NewMarketDataUsecase wires the chains. providers are tried in the order given.
func NewMarketDataUsecase(logger *slog.Logger, providers ...ProviderSources) *MarketDataUsecase {
	var (
		search   []Source[string, []entity.SearchMatch]
		quote    []Source[string, *entity.Quote]
		overview []Source[string, *entity.Overview]
		history  []Source[entity.HistoryRequest, entity.TimeSeries]
	)
	for _, p := range providers {
		if p.Search != nil {
			search = append(search, p.Search)
		}
		if p.Quote != nil {
			quote = append(quote, p.Quote)
		}
		if p.Overview != nil {
			overview = append(overview, p.Overview)
		}
		if p.History != nil {
			history = append(history, p.History)
		}
	}

	return &MarketDataUsecase{
		search:   NewChain[string, []entity.SearchMatch](opSearch, func() []entity.SearchMatch { return []entity.SearchMatch{} }, logger, search...),
		quote:    NewChain[string, *entity.Quote](opQuote, func() *entity.Quote { return nil }, logger, quote...),
		overview: NewChain[string, *entity.Overview](opOverview, func() *entity.Overview { return nil }, logger, overview...),
		history:  NewChain[entity.HistoryRequest, entity.TimeSeries](opHistory, func() entity.TimeSeries { return nil }, logger, history...),
	}
}

// SearchSymbol returns matches for query, or an empty slice.
func (u *MarketDataUsecase) SearchSymbol(ctx context.Context, query string) []entity.SearchMatch {
	out := u.search.Resolve(ctx, query)
	if out == nil {
		return []entity.SearchMatch{}
	}
	return out
}

// GetQuote returns the latest quote, or nil when no provider could serve it.
func (u *MarketDataUsecase) GetQuote(ctx context.Context, symbol string) *entity.Quote {
	return u.quote.Resolve(ctx, symbol)
}

// GetOverview returns company fundamentals, or nil.
func (u *MarketDataUsecase) GetOverview(ctx context.Context, symbol string) *entity.Overview {
	return u.overview.Resolve(ctx, symbol)
}

// GetHistory returns the daily series keyed by date, or nil.
func (u *MarketDataUsecase) GetHistory(ctx context.Context, symbol string, size entity.OutputSize) entity.TimeSeries {
	out := u.history.Resolve(ctx, entity.HistoryRequest{Symbol: symbol, Size: size})
	if len(out) == 0 {
		return nil
	}
	return out
}
