package di

import (
	"gorm.io/gorm"

	portfolioadapters "portfolio_backend/internal/feature/portfolio/adapters"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	portfoliousecase "portfolio_backend/internal/feature/portfolio/usecase"
	valuationhandler "portfolio_backend/internal/feature/valuation/transport/handler"
	valuationusecase "portfolio_backend/internal/feature/valuation/usecase"
)

// NewPortfolioHandlers wires the portfolio CRUD handler and the valuation handler over the
// same usecase so that ownership checks are shared.
func NewPortfolioHandlers(db *gorm.DB, market valuationusecase.MarketData) (*portfoliohandler.PortfolioHandler, *valuationhandler.ValuationHandler) {
	portfolioUC := portfoliousecase.NewPortfolioUsecase(
		portfolioadapters.NewPortfolioRepository(db),
		portfolioadapters.NewHoldingRepository(db),
	)
	valuationUC := valuationusecase.NewValuationUsecase(market, portfolioUC)

	return portfoliohandler.NewPortfolioHandler(portfolioUC), valuationhandler.NewValuationHandler(valuationUC)
}
