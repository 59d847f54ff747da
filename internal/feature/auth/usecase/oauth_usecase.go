package usecase

import (
	"context"
	"fmt"
)

// OAuthProvider はOAuth2プロバイダーとのやり取りを抽象化します。
type OAuthProvider interface {
	// AuthCodeURL は認可画面へのリダイレクト先を返します。
	AuthCodeURL(state string) string
	// VerifiedEmail は認可コードを交換し、プロバイダーが確認済みのメールアドレスを返します。
	VerifiedEmail(ctx context.Context, code string) (string, error)
}

// StateSigner はOAuthのstateを発行・検証します。
type StateSigner interface {
	Issue() (string, error)
	Verify(state string) error
}

// EmailLogin はメールアドレスのみでログインする操作です（authUsecaseが実装）。
type EmailLogin interface {
	LoginWithEmail(ctx context.Context, email string, client ClientInfo) (*TokenPair, error)
}

// oauthUsecase はOAuthリダイレクトとコールバックを処理します。
type oauthUsecase struct {
	provider OAuthProvider
	states   StateSigner
	login    EmailLogin
}

// NewOAuthUsecase はoauthUsecaseを生成します。
func NewOAuthUsecase(provider OAuthProvider, states StateSigner, login EmailLogin) *oauthUsecase {
	return &oauthUsecase{provider: provider, states: states, login: login}
}

// Begin は新しいstateと認可URLを返します。
func (u *oauthUsecase) Begin() (state, redirectURL string, err error) {
	state, err = u.states.Issue()
	if err != nil {
		return "", "", err
	}
	return state, u.provider.AuthCodeURL(state), nil
}

// Complete はstateを検証し、認可コードを交換してトークンを発行します。
func (u *oauthUsecase) Complete(ctx context.Context, state, code string, client ClientInfo) (*TokenPair, error) {
	if err := u.states.Verify(state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthFailed, err)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: missing code", ErrOAuthFailed)
	}
	email, err := u.provider.VerifiedEmail(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthFailed, err)
	}
	return u.login.LoginWithEmail(ctx, email, client)
}
