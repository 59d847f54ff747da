// Package api holds the request and response bodies shared by the HTTP handlers.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse defines model for MessageResponse.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by login, refresh and the OAuth callback.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// SignupRequest defines model for SignupRequest.
type SignupRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required"`
	Password string              `json:"password" binding:"required,min=8"`
}

// LoginRequest defines model for LoginRequest.
type LoginRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required"`
	Password string              `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token for /refresh and /logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse defines model for UserResponse.
type UserResponse struct {
	ID    uint                `json:"id"`
	Email openapi_types.Email `json:"email"`
}

// CreatePortfolioRequest defines model for CreatePortfolioRequest.
type CreatePortfolioRequest struct {
	Name string `json:"name" binding:"required"`
}

// PortfolioResponse defines model for PortfolioResponse.
type PortfolioResponse struct {
	ID        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	CreatedAt time.Time          `json:"created_at"`
}

// CreateHoldingRequest defines model for CreateHoldingRequest.
// Shares and PurchasePrice accept JSON numbers or numeric strings.
type CreateHoldingRequest struct {
	Symbol        string              `json:"symbol" binding:"required"`
	Shares        *decimal.Decimal    `json:"shares" binding:"required"`
	PurchasePrice *decimal.Decimal    `json:"purchase_price" binding:"required"`
	PurchaseDate  *openapi_types.Date `json:"purchase_date"`
}

// UpdateHoldingRequest is a partial update; omitted fields are unchanged.
type UpdateHoldingRequest struct {
	Shares        *decimal.Decimal    `json:"shares"`
	PurchasePrice *decimal.Decimal    `json:"purchase_price"`
	PurchaseDate  *openapi_types.Date `json:"purchase_date"`
}

// HoldingResponse defines model for HoldingResponse.
type HoldingResponse struct {
	ID            openapi_types.UUID `json:"id"`
	PortfolioID   openapi_types.UUID `json:"portfolio_id"`
	Symbol        string             `json:"symbol"`
	Shares        decimal.Decimal    `json:"shares"`
	PurchasePrice decimal.Decimal    `json:"purchase_price"`
	PurchaseDate  openapi_types.Date `json:"purchase_date"`
	CreatedAt     time.Time          `json:"created_at"`
}

// PricedHoldingResponse is one holding with its market valuation. Unknown market values
// are null.
type PricedHoldingResponse struct {
	HoldingResponse
	CurrentPrice     decimal.NullDecimal `json:"current_price"`
	Change           decimal.NullDecimal `json:"change"`
	ChangePercent    decimal.NullDecimal `json:"change_percent"`
	DividendYield    decimal.NullDecimal `json:"dividend_yield"`
	DividendPerShare decimal.NullDecimal `json:"dividend_per_share"`
	Cost             decimal.Decimal     `json:"cost"`
	Value            decimal.NullDecimal `json:"value"`
	Gain             decimal.NullDecimal `json:"gain"`
	GainPercent      decimal.NullDecimal `json:"gain_percent"`
	AnnualDividend   decimal.Decimal     `json:"annual_dividend"`
}

// SummaryResponse carries portfolio totals and their USD display strings.
type SummaryResponse struct {
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalValue       decimal.Decimal `json:"total_value"`
	TotalGain        decimal.Decimal `json:"total_gain"`
	TotalGainPercent decimal.Decimal `json:"total_gain_percent"`
	AnnualDividends  decimal.Decimal `json:"annual_dividends"`
	Display          SummaryDisplay  `json:"display"`
}

// SummaryDisplay holds the totals formatted as currency.
type SummaryDisplay struct {
	TotalCost       string `json:"total_cost"`
	TotalValue      string `json:"total_value"`
	TotalGain       string `json:"total_gain"`
	AnnualDividends string `json:"annual_dividends"`
}

// ValuationResponse defines model for ValuationResponse.
type ValuationResponse struct {
	Holdings []PricedHoldingResponse `json:"holdings"`
	Summary  SummaryResponse         `json:"summary"`
}

// HistoryPointResponse defines model for HistoryPointResponse.
type HistoryPointResponse struct {
	Date        string          `json:"date"`
	Value       decimal.Decimal `json:"value"`
	Cost        decimal.Decimal `json:"cost"`
	Gain        decimal.Decimal `json:"gain"`
	GainPercent decimal.Decimal `json:"gain_percent"`
}
