package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"portfolio_backend/internal/feature/auth/domain/entity"
	"portfolio_backend/internal/feature/auth/usecase"
)

// sessionPostgres stores refresh sessions in the sessions table.
// It is the fallback when Redis is not configured.
type sessionPostgres struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.SessionRepository = (*sessionPostgres)(nil)

// NewSessionPostgres creates a session repository backed by db.
func NewSessionPostgres(db *gorm.DB) *sessionPostgres {
	return &sessionPostgres{db: db, now: time.Now}
}

// active restricts a query to unrevoked, unexpired sessions of userID.
func (r *sessionPostgres) active(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, r.now())
}

func (r *sessionPostgres) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(sessionModelFrom(session)).Error
}

func (r *sessionPostgres) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var m SessionModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.toEntity(), nil
}

// Revoke sets revoked_at. Revoking twice keeps the first timestamp.
func (r *sessionPostgres) Revoke(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ?", id).
		Update("revoked_at", gorm.Expr("COALESCE(revoked_at, ?)", r.now()))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes expired rows and rows revoked more than a day ago.
func (r *sessionPostgres) DeleteExpired(ctx context.Context) (int64, error) {
	now := r.now()
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at < ?", now, now.Add(-24*time.Hour)).
		Delete(&SessionModel{})
	return res.RowsAffected, res.Error
}

func (r *sessionPostgres) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.active(ctx, userID).Count(&n).Error
	return n, err
}

// DeleteOldestByUserID deletes the active session with the earliest created_at.
func (r *sessionPostgres) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	var oldest SessionModel
	err := r.active(ctx, userID).Order("created_at ASC").Limit(1).Find(&oldest).Error
	if err != nil {
		return err
	}
	if oldest.ID == "" {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&SessionModel{}, "id = ?", oldest.ID).Error
}
