// Package handler はvaluationフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Rhymond/go-money"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"portfolio_backend/internal/api"
	portfoliouc "portfolio_backend/internal/feature/portfolio/usecase"
	"portfolio_backend/internal/feature/valuation/domain/entity"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// displayCurrency は表示用の通貨です。保有銘柄はすべてUSD建てとして扱います。
const displayCurrency = money.USD

// ValuationUsecase は評価額計算のユースケースです。
type ValuationUsecase interface {
	Valuate(ctx context.Context, userID uint, portfolioID uuid.UUID) (*entity.Valuation, error)
	History(ctx context.Context, userID uint, portfolioID uuid.UUID, r entity.Range) ([]entity.HistoryPoint, error)
}

// ValuationHandler はポートフォリオ評価額のHTTPリクエストを処理します。
type ValuationHandler struct {
	uc ValuationUsecase
}

// NewValuationHandler は新しいValuationHandlerを作成します。
func NewValuationHandler(uc ValuationUsecase) *ValuationHandler {
	return &ValuationHandler{uc: uc}
}

// Valuation GET /portfolios/:id/valuation
func (h *ValuationHandler) Valuation(c *gin.Context) {
	userID, id, ok := parseRequest(c)
	if !ok {
		return
	}
	v, err := h.uc.Valuate(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	holdings := make([]api.PricedHoldingResponse, 0, len(v.Holdings))
	for _, p := range v.Holdings {
		holdings = append(holdings, toPricedHoldingResponse(p))
	}
	c.JSON(http.StatusOK, api.ValuationResponse{Holdings: holdings, Summary: toSummaryResponse(v.Summary)})
}

// History GET /portfolios/:id/history?range=1M
func (h *ValuationHandler) History(c *gin.Context) {
	userID, id, ok := parseRequest(c)
	if !ok {
		return
	}
	r, ok := entity.ParseRange(c.Query("range"))
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "range must be one of 1W, 1M, 3M, 6M, 1Y, ALL"})
		return
	}
	points, err := h.uc.History(c.Request.Context(), userID, id, r)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]api.HistoryPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, api.HistoryPointResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func parseRequest(c *gin.Context) (uint, uuid.UUID, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return 0, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id"})
		return 0, uuid.Nil, false
	}
	return userID, id, true
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, portfoliouc.ErrPortfolioNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	}
	if errors.Is(err, context.Canceled) {
		// クライアント切断
		c.Status(499)
		return
	}
	slog.Error("valuation request failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
}

// formatMoney はセント単位に丸めてgo-moneyで表示文字列にします（例: "$1,234.56"）。
func formatMoney(d decimal.Decimal) string {
	cents := d.Shift(int32(money.GetCurrency(displayCurrency).Fraction)).Round(0).IntPart()
	return money.New(cents, displayCurrency).Display()
}

func toSummaryResponse(s entity.Summary) api.SummaryResponse {
	return api.SummaryResponse{
		TotalCost:        s.TotalCost,
		TotalValue:       s.TotalValue,
		TotalGain:        s.TotalGain,
		TotalGainPercent: s.TotalGainPercent,
		AnnualDividends:  s.AnnualDividends,
		Display: api.SummaryDisplay{
			TotalCost:       formatMoney(s.TotalCost),
			TotalValue:      formatMoney(s.TotalValue),
			TotalGain:       formatMoney(s.TotalGain),
			AnnualDividends: formatMoney(s.AnnualDividends),
		},
	}
}

func toPricedHoldingResponse(p entity.PricedHolding) api.PricedHoldingResponse {
	h := p.Holding
	return api.PricedHoldingResponse{
		HoldingResponse: api.HoldingResponse{
			ID:            h.ID,
			PortfolioID:   h.PortfolioID,
			Symbol:        h.Symbol,
			Shares:        h.Shares,
			PurchasePrice: h.PurchasePrice,
			PurchaseDate:  openapi_types.Date{Time: h.PurchaseDate},
			CreatedAt:     h.CreatedAt,
		},
		CurrentPrice:     p.CurrentPrice,
		Change:           p.Change,
		ChangePercent:    p.ChangePercent,
		DividendYield:    p.DividendYield,
		DividendPerShare: p.DividendPerShare,
		Cost:             p.Cost,
		Value:            p.Value,
		Gain:             p.Gain,
		GainPercent:      p.GainPercent,
		AnnualDividend:   p.AnnualDividend,
	}
}
