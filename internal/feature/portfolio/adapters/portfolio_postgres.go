// Package adapters はportfolioフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/usecase"
)

// portfolioPostgres はPortfolioRepositoryのPostgreSQL実装です。
type portfolioPostgres struct {
	db *gorm.DB
}

var _ usecase.PortfolioRepository = (*portfolioPostgres)(nil)

// NewPortfolioRepository は指定されたDB接続でportfolioPostgresを生成します。
func NewPortfolioRepository(db *gorm.DB) *portfolioPostgres {
	return &portfolioPostgres{db: db}
}

// ListByUser は作成日時の降順でユーザーのポートフォリオを返します。
func (r *portfolioPostgres) ListByUser(ctx context.Context, userID uint) ([]entity.Portfolio, error) {
	portfolios := []entity.Portfolio{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&portfolios).Error; err != nil {
		return nil, err
	}
	return portfolios, nil
}

func (r *portfolioPostgres) Create(ctx context.Context, p *entity.Portfolio) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID は他ユーザーのポートフォリオも「存在しない」として扱います。
func (r *portfolioPostgres) FindByID(ctx context.Context, userID uint, id uuid.UUID) (*entity.Portfolio, error) {
	var p entity.Portfolio
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrPortfolioNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete はトランザクション内でポートフォリオと保有銘柄を削除します。
func (r *portfolioPostgres) Delete(ctx context.Context, userID uint, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Portfolio{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrPortfolioNotFound
		}
		return tx.Where("portfolio_id = ?", id).Delete(&entity.Holding{}).Error
	})
}
