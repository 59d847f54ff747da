// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/usecase"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// PortfolioUsecase はポートフォリオ操作のユースケースです。
type PortfolioUsecase interface {
	ListPortfolios(ctx context.Context, userID uint) ([]entity.Portfolio, error)
	CreatePortfolio(ctx context.Context, userID uint, name string) (*entity.Portfolio, error)
	DeletePortfolio(ctx context.Context, userID uint, id uuid.UUID) error
	ListHoldings(ctx context.Context, userID uint, portfolioID uuid.UUID) ([]entity.Holding, error)
	AddHolding(ctx context.Context, userID uint, portfolioID uuid.UUID, in usecase.HoldingInput) (*entity.Holding, error)
	UpdateHolding(ctx context.Context, userID uint, id uuid.UUID, patch usecase.HoldingPatch) (*entity.Holding, error)
	DeleteHolding(ctx context.Context, userID uint, id uuid.UUID) error
}

// PortfolioHandler はポートフォリオと保有銘柄のHTTPリクエストを処理します。
// すべてのルートはAuthRequiredの後段で使用します。
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler は新しいPortfolioHandlerを作成します。
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// ListPortfolios GET /portfolios
func (h *PortfolioHandler) ListPortfolios(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	portfolios, err := h.uc.ListPortfolios(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]api.PortfolioResponse, 0, len(portfolios))
	for _, p := range portfolios {
		out = append(out, toPortfolioResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// CreatePortfolio POST /portfolios
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req api.CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	p, err := h.uc.CreatePortfolio(c.Request.Context(), userID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPortfolioResponse(*p))
}

// DeletePortfolio DELETE /portfolios/:id
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.DeletePortfolio(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListHoldings GET /portfolios/:id/holdings
func (h *PortfolioHandler) ListHoldings(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	holdings, err := h.uc.ListHoldings(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]api.HoldingResponse, 0, len(holdings))
	for _, hd := range holdings {
		out = append(out, toHoldingResponse(hd))
	}
	c.JSON(http.StatusOK, out)
}

// AddHolding POST /portfolios/:id/holdings
func (h *PortfolioHandler) AddHolding(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req api.CreateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	in := usecase.HoldingInput{
		Symbol:        req.Symbol,
		Shares:        *req.Shares,
		PurchasePrice: *req.PurchasePrice,
		PurchaseDate:  dateOrNil(req.PurchaseDate),
	}
	holding, err := h.uc.AddHolding(c.Request.Context(), userID, id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHoldingResponse(*holding))
}

// UpdateHolding PATCH /holdings/:id
func (h *PortfolioHandler) UpdateHolding(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req api.UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	patch := usecase.HoldingPatch{
		Shares:        req.Shares,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  dateOrNil(req.PurchaseDate),
	}
	holding, err := h.uc.UpdateHolding(c.Request.Context(), userID, id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHoldingResponse(*holding))
}

// DeleteHolding DELETE /holdings/:id
func (h *PortfolioHandler) DeleteHolding(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.DeleteHolding(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func requireUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
	}
	return userID, ok
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// writeError はユースケースのエラーをHTTPステータスに変換します。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrPortfolioNotFound), errors.Is(err, usecase.ErrHoldingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("portfolio request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

func dateOrNil(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	return &d.Time
}

func toPortfolioResponse(p entity.Portfolio) api.PortfolioResponse {
	return api.PortfolioResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

func toHoldingResponse(h entity.Holding) api.HoldingResponse {
	return api.HoldingResponse{
		ID:            h.ID,
		PortfolioID:   h.PortfolioID,
		Symbol:        h.Symbol,
		Shares:        h.Shares,
		PurchasePrice: h.PurchasePrice,
		PurchaseDate:  openapi_types.Date{Time: h.PurchaseDate},
		CreatedAt:     h.CreatedAt,
	}
}
