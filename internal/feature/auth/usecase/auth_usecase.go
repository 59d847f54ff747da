package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"portfolio_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// MaxSessionsPerUser を超えると最も古いセッションから削除します。
	MaxSessionsPerUser = 5

	// dummyHash はユーザーが存在しない場合のタイミング攻撃緩和用ハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator はアクセストークン生成のインターフェースを定義します。
type JWTGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
	ExpiresIn() int64
}

// ClientInfo はセッションに記録するクライアント情報です。
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// TokenPair はログイン・リフレッシュ時に返すトークンの組です。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // アクセストークンの有効秒数
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
	refreshTTL   time.Duration
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator, refreshTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
		refreshTTL:   refreshTTL,
	}
}

// normalizeEmail はメールアドレスを比較用に正規化します。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *authUsecase) Signup(ctx context.Context, email, password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: at least %d characters", ErrWeakPassword, minPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Email: normalizeEmail(email), Password: string(hashed)}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、アクセストークンとリフレッシュトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string, client ClientInfo) (*TokenPair, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	passwordHash := dummyHash
	if err == nil && user.HasPassword() {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出、OAuth専用アカウント、パスワード不一致はすべて同じエラー
	if err != nil || !user.HasPassword() || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issue(ctx, user, client)
}

// LoginWithEmail はOAuthプロバイダーで確認済みのメールアドレスでログインします。
// ユーザーが存在しなければパスワードなしで作成します。
func (u *authUsecase) LoginWithEmail(ctx context.Context, email string, client ClientInfo) (*TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrOAuthFailed
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		user = &entity.User{Email: email}
		if err := u.users.Create(ctx, user); err != nil {
			if !errors.Is(err, ErrEmailAlreadyExists) {
				return nil, fmt.Errorf("failed to create oauth user: %w", err)
			}
			// 同時作成された場合は再取得
			if user, err = u.users.FindByEmail(ctx, email); err != nil {
				return nil, err
			}
		}
		slog.Info("user created via oauth", "user_id", user.ID)
	} else if err != nil {
		return nil, err
	}

	return u.issue(ctx, user, client)
}

// Refresh はリフレッシュトークンをローテーションし、新しいトークンの組を返します。
// 使用済みのリフレッシュトークンは失効します。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*TokenPair, error) {
	if len(refreshToken) != 64 {
		return nil, ErrInvalidRefreshToken
	}

	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}
	return u.issue(ctx, user, client)
}

// Logout はリフレッシュトークンを失効させます。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if len(refreshToken) != 64 {
		return ErrInvalidRefreshToken
	}
	return u.sessions.Revoke(ctx, refreshToken)
}

// Me は認証済みユーザーを返します。
func (u *authUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// issue はアクセストークンを生成し、新しいセッションを保存します。
func (u *authUsecase) issue(ctx context.Context, user *entity.User, client ClientInfo) (*TokenPair, error) {
	access, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	for ; count >= MaxSessionsPerUser; count-- {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to evict session: %w", err)
		}
	}

	id, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	session := &entity.Session{
		ID:        id,
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.refreshTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: id,
		ExpiresIn:    u.jwtGenerator.ExpiresIn(),
	}, nil
}

func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
