// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	avsource "portfolio_backend/internal/feature/marketdata/adapters/alphavantage"
	fhsource "portfolio_backend/internal/feature/marketdata/adapters/finnhub"
	"portfolio_backend/internal/feature/marketdata/usecase"
	"portfolio_backend/internal/platform/externalapi/alphavantage"
	"portfolio_backend/internal/platform/externalapi/finnhub"
	infrahttp "portfolio_backend/internal/platform/http"
)

// NewMarketData creates the market-data usecase with Alpha Vantage as primary and Finnhub
// as fallback. A provider without an API key is still wired; its failures fall through.
func NewMarketData(logger *slog.Logger) *usecase.MarketDataUsecase {
	avCfg := alphavantage.LoadConfig()
	fhCfg := finnhub.LoadConfig()
	if avCfg.APIKey == "" {
		logger.Warn("ALPHA_VANTAGE_API_KEY is not set")
	}
	if fhCfg.APIKey == "" {
		logger.Warn("FINNHUB_API_KEY is not set")
	}

	av := alphavantage.NewClient(avCfg, infrahttp.NewHTTPClient(avCfg.Timeout))
	fh := finnhub.NewClient(fhCfg, infrahttp.NewHTTPClient(fhCfg.Timeout))

	return usecase.NewMarketDataUsecase(logger,
		avsource.NewSources(av),
		fhsource.NewSources(fh, nil),
	)
}
