package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/usecase"
)

// holdingPostgres はHoldingRepositoryのPostgreSQL実装です。
type holdingPostgres struct {
	db *gorm.DB
}

var _ usecase.HoldingRepository = (*holdingPostgres)(nil)

// NewHoldingRepository は指定されたDB接続でholdingPostgresを生成します。
func NewHoldingRepository(db *gorm.DB) *holdingPostgres {
	return &holdingPostgres{db: db}
}

// ownedPortfolioIDs はユーザーが所有するポートフォリオIDのサブクエリです。
func (r *holdingPostgres) ownedPortfolioIDs(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.Portfolio{}).Select("id").Where("user_id = ?", userID)
}

// ListByPortfolio は作成日時の降順で保有銘柄を返します。
func (r *holdingPostgres) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]entity.Holding, error) {
	holdings := []entity.Holding{}
	if err := r.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("created_at DESC").
		Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

func (r *holdingPostgres) Create(ctx context.Context, h *entity.Holding) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *holdingPostgres) FindByID(ctx context.Context, userID uint, id uuid.UUID) (*entity.Holding, error) {
	var h entity.Holding
	err := r.db.WithContext(ctx).
		Where("id = ? AND portfolio_id IN (?)", id, r.ownedPortfolioIDs(ctx, userID)).
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrHoldingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Update は変更可能な列（株数・取得単価・取得日）のみ更新します。
func (r *holdingPostgres) Update(ctx context.Context, h *entity.Holding) error {
	res := r.db.WithContext(ctx).
		Model(h).
		Select("shares", "purchase_price", "purchase_date").
		Updates(h)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrHoldingNotFound
	}
	return nil
}

func (r *holdingPostgres) Delete(ctx context.Context, userID uint, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND portfolio_id IN (?)", id, r.ownedPortfolioIDs(ctx, userID)).
		Delete(&entity.Holding{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrHoldingNotFound
	}
	return nil
}
