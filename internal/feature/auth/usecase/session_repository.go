package usecase

import (
	"context"

	"portfolio_backend/internal/feature/auth/domain/entity"
)

// SessionRepository はリフレッシュトークン（セッション）の保存先を抽象化します。
// PostgreSQL実装とRedis実装があり、起動時にどちらかが選ばれます。
type SessionRepository interface {
	// Create はセッションを保存します。
	Create(ctx context.Context, session *entity.Session) error

	// FindByID はリフレッシュトークン値でセッションを取得します。存在しなければErrSessionNotFound。
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke はRevokedAtを記録します。取り消し済みでもエラーにしません。
	Revoke(ctx context.Context, id string) error

	// DeleteExpired は不要になったセッションを削除し、削除件数を返します。
	// TTLで自然に消えるストアでは0を返します。
	DeleteExpired(ctx context.Context) (int64, error)

	// CountByUserID はユーザーの有効なセッション数を返します。
	CountByUserID(ctx context.Context, userID uint) (int64, error)

	// DeleteOldestByUserID はユーザーの最も古い有効なセッションを削除します。
	DeleteOldestByUserID(ctx context.Context, userID uint) error
}
