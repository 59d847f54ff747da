package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
)

const (
	maxNameLength   = 100
	maxSymbolLength = 20
)

// PortfolioRepository persists portfolios. Every lookup is scoped to the owner.
type PortfolioRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]entity.Portfolio, error)
	Create(ctx context.Context, p *entity.Portfolio) error
	FindByID(ctx context.Context, userID uint, id uuid.UUID) (*entity.Portfolio, error)
	// Delete removes the portfolio and its holdings.
	Delete(ctx context.Context, userID uint, id uuid.UUID) error
}

// HoldingRepository persists holdings. FindByID and Delete are scoped to the owner of the
// enclosing portfolio.
type HoldingRepository interface {
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]entity.Holding, error)
	Create(ctx context.Context, h *entity.Holding) error
	FindByID(ctx context.Context, userID uint, id uuid.UUID) (*entity.Holding, error)
	Update(ctx context.Context, h *entity.Holding) error
	Delete(ctx context.Context, userID uint, id uuid.UUID) error
}

// HoldingInput is a new holding as submitted by the user.
type HoldingInput struct {
	Symbol        string
	Shares        decimal.Decimal
	PurchasePrice decimal.Decimal
	PurchaseDate  *time.Time // nilの場合は今日
}

// HoldingPatch is a partial update. Nil fields are left unchanged.
type HoldingPatch struct {
	Shares        *decimal.Decimal
	PurchasePrice *decimal.Decimal
	PurchaseDate  *time.Time
}

// PortfolioUsecase provides owner-scoped CRUD for portfolios and holdings.
type PortfolioUsecase struct {
	portfolios PortfolioRepository
	holdings   HoldingRepository
	now        func() time.Time
}

// NewPortfolioUsecase creates a PortfolioUsecase.
func NewPortfolioUsecase(portfolios PortfolioRepository, holdings HoldingRepository) *PortfolioUsecase {
	return &PortfolioUsecase{portfolios: portfolios, holdings: holdings, now: time.Now}
}

// ListPortfolios returns the user's portfolios, newest first.
func (u *PortfolioUsecase) ListPortfolios(ctx context.Context, userID uint) ([]entity.Portfolio, error) {
	return u.portfolios.ListByUser(ctx, userID)
}

// GetPortfolio returns one of the user's portfolios.
func (u *PortfolioUsecase) GetPortfolio(ctx context.Context, userID uint, id uuid.UUID) (*entity.Portfolio, error) {
	return u.portfolios.FindByID(ctx, userID, id)
}

// CreatePortfolio validates name and stores a new portfolio.
func (u *PortfolioUsecase) CreatePortfolio(ctx context.Context, userID uint, name string) (*entity.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, fmt.Errorf("%w: name must be at most %d characters", ErrValidation, maxNameLength)
	}

	p := &entity.Portfolio{ID: uuid.New(), UserID: userID, Name: name, CreatedAt: u.now()}
	if err := u.portfolios.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}
	return p, nil
}

// DeletePortfolio removes a portfolio together with its holdings.
func (u *PortfolioUsecase) DeletePortfolio(ctx context.Context, userID uint, id uuid.UUID) error {
	return u.portfolios.Delete(ctx, userID, id)
}

// ListHoldings returns the holdings of one of the user's portfolios, newest first.
func (u *PortfolioUsecase) ListHoldings(ctx context.Context, userID uint, portfolioID uuid.UUID) ([]entity.Holding, error) {
	if _, err := u.portfolios.FindByID(ctx, userID, portfolioID); err != nil {
		return nil, err
	}
	return u.holdings.ListByPortfolio(ctx, portfolioID)
}

// AddHolding validates in and adds it to one of the user's portfolios.
func (u *PortfolioUsecase) AddHolding(ctx context.Context, userID uint, portfolioID uuid.UUID, in HoldingInput) (*entity.Holding, error) {
	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	if symbol == "" || len(symbol) > maxSymbolLength {
		return nil, fmt.Errorf("%w: symbol is required (max %d characters)", ErrValidation, maxSymbolLength)
	}
	if err := validateShares(in.Shares); err != nil {
		return nil, err
	}
	if err := validatePrice(in.PurchasePrice); err != nil {
		return nil, err
	}
	if _, err := u.portfolios.FindByID(ctx, userID, portfolioID); err != nil {
		return nil, err
	}

	now := u.now()
	purchased := now
	if in.PurchaseDate != nil {
		purchased = *in.PurchaseDate
	}
	h := &entity.Holding{
		ID:            uuid.New(),
		PortfolioID:   portfolioID,
		Symbol:        symbol,
		Shares:        in.Shares,
		PurchasePrice: in.PurchasePrice,
		PurchaseDate:  truncateDay(purchased),
		CreatedAt:     now,
	}
	if err := u.holdings.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}
	return h, nil
}

// UpdateHolding applies patch to one of the user's holdings.
func (u *PortfolioUsecase) UpdateHolding(ctx context.Context, userID uint, id uuid.UUID, patch HoldingPatch) (*entity.Holding, error) {
	if patch.Shares == nil && patch.PurchasePrice == nil && patch.PurchaseDate == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if patch.Shares != nil {
		if err := validateShares(*patch.Shares); err != nil {
			return nil, err
		}
	}
	if patch.PurchasePrice != nil {
		if err := validatePrice(*patch.PurchasePrice); err != nil {
			return nil, err
		}
	}

	h, err := u.holdings.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if patch.Shares != nil {
		h.Shares = *patch.Shares
	}
	if patch.PurchasePrice != nil {
		h.PurchasePrice = *patch.PurchasePrice
	}
	if patch.PurchaseDate != nil {
		h.PurchaseDate = truncateDay(*patch.PurchaseDate)
	}
	if err := u.holdings.Update(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}
	return h, nil
}

// DeleteHolding removes one of the user's holdings.
func (u *PortfolioUsecase) DeleteHolding(ctx context.Context, userID uint, id uuid.UUID) error {
	return u.holdings.Delete(ctx, userID, id)
}

func validateShares(d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: shares must be greater than 0", ErrValidation)
	}
	return nil
}

func validatePrice(d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: purchase price must not be negative", ErrValidation)
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
