// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/marketdata/domain/entity"
)

// MarketDataUsecase は市場データ取得のユースケースを定義します。
// いずれのメソッドもエラーを返さず、取得できない場合は空スライスまたはnilを返します。
type MarketDataUsecase interface {
	SearchSymbol(ctx context.Context, query string) []entity.SearchMatch
	GetQuote(ctx context.Context, symbol string) *entity.Quote
	GetOverview(ctx context.Context, symbol string) *entity.Overview
	GetHistory(ctx context.Context, symbol string, size entity.OutputSize) entity.TimeSeries
}

// MarketDataHandler は市場データのHTTPリクエストを処理します。
type MarketDataHandler struct {
	uc MarketDataUsecase
}

// NewMarketDataHandler はMarketDataHandlerを生成します。
func NewMarketDataHandler(uc MarketDataUsecase) *MarketDataHandler {
	return &MarketDataHandler{uc: uc}
}

// Search は銘柄検索の結果を返します。該当なしでも200で空配列を返します。
//
// GET /market/search?q=apple
func (h *MarketDataHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "q is required"})
		return
	}
	c.JSON(http.StatusOK, h.uc.SearchSymbol(c.Request.Context(), q))
}

// Quote は現在値を返します。
//
// GET /market/quote/:symbol
func (h *MarketDataHandler) Quote(c *gin.Context) {
	q := h.uc.GetQuote(c.Request.Context(), c.Param("symbol"))
	if q == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "quote unavailable"})
		return
	}
	c.JSON(http.StatusOK, q)
}

// Overview は企業概要（配当情報を含む）を返します。
//
// GET /market/overview/:symbol
func (h *MarketDataHandler) Overview(c *gin.Context) {
	o := h.uc.GetOverview(c.Request.Context(), c.Param("symbol"))
	if o == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "overview unavailable"})
		return
	}
	c.JSON(http.StatusOK, o)
}

// History は日足の時系列を日付をキーにしたオブジェクトで返します。
//
// GET /market/history/:symbol?size=compact|full
func (h *MarketDataHandler) History(c *gin.Context) {
	size := entity.ParseOutputSize(c.DefaultQuery("size", string(entity.OutputSizeCompact)))
	ts := h.uc.GetHistory(c.Request.Context(), c.Param("symbol"), size)
	if ts == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, ts)
}
