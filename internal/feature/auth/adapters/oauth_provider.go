package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"portfolio_backend/internal/feature/auth/usecase"
	"portfolio_backend/internal/platform/oauth"
)

// ErrEmailNotVerified はプロバイダーがメールアドレスを確認していない場合のエラーです。
var ErrEmailNotVerified = errors.New("email not verified by provider")

// userInfo はOpenID ConnectのuserinfoレスポンスのうちBackendが使う部分です。
type userInfo struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
}

// oauthProvider はx/oauth2によるOAuthProvider実装です。
type oauthProvider struct {
	cfg         *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

var _ usecase.OAuthProvider = (*oauthProvider)(nil)

// NewOAuthProvider は設定とトークン交換に使うHTTPクライアントからoauthProviderを生成します。
func NewOAuthProvider(cfg oauth.Config, httpClient *http.Client) *oauthProvider {
	return &oauthProvider{cfg: cfg.OAuth2(), userInfoURL: cfg.UserInfoURL, httpClient: httpClient}
}

// AuthCodeURL は認可画面のURLを返します。
func (p *oauthProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// VerifiedEmail は認可コードを交換し、userinfoエンドポイントからメールアドレスを取得します。
// email_verifiedがfalseの場合は拒否します（項目がないプロバイダーは確認済みとみなす）。
func (p *oauthProvider) VerifiedEmail(ctx context.Context, code string) (string, error) {
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := p.cfg.Client(ctx, token).Do(req)
	if err != nil {
		return "", fmt.Errorf("userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("userinfo http %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("userinfo: decode body: %w", err)
	}
	if info.Email == "" {
		return "", errors.New("userinfo: email missing")
	}
	if info.EmailVerified != nil && !*info.EmailVerified {
		return "", ErrEmailNotVerified
	}
	return info.Email, nil
}
