// Package entity defines the domain models for the portfolio feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Portfolio is a named group of holdings owned by one user.
type Portfolio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_portfolios_user_created,priority:1"`
	Name      string    `gorm:"size:100;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_portfolios_user_created,priority:2"`
}

// Holding is a position in one symbol, bought at one price on one date.
// Buying the same symbol twice produces two holdings.
type Holding struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PortfolioID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_holdings_portfolio_created,priority:1"`
	Symbol        string          `gorm:"size:20;not null"`
	Shares        decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	PurchaseDate  time.Time       `gorm:"type:date;not null"`
	CreatedAt     time.Time       `gorm:"not null;index:idx_holdings_portfolio_created,priority:2"`
}

// Cost is PurchasePrice × Shares.
func (h Holding) Cost() decimal.Decimal {
	return h.PurchasePrice.Mul(h.Shares)
}
