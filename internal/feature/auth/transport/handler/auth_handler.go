// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/auth/domain/entity"
	"portfolio_backend/internal/feature/auth/usecase"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// stateCookie はOAuthのstateをブラウザに保持するCookie名です。
const stateCookie = "oauth_state"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID uint) (*entity.User, error)
}

// OAuthUsecase はOAuthリダイレクトフローを定義します。
type OAuthUsecase interface {
	Begin() (state, redirectURL string, err error)
	Complete(ctx context.Context, state, code string, client usecase.ClientInfo) (*usecase.TokenPair, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth     AuthUsecase
	oauth    OAuthUsecase // nilの場合OAuthルートは503
	stateTTL int          // Cookieの有効秒数
	secure   bool
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// oauthがnilの場合、OAuthエンドポイントは無効になります。
func NewAuthHandler(auth AuthUsecase, oauth OAuthUsecase, stateTTLSec int, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, oauth: oauth, stateTTL: stateTTLSec, secure: secureCookie}
}

func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

func tokenResponse(p *usecase.TokenPair) api.TokenResponse {
	return api.TokenResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, ExpiresIn: p.ExpiresIn}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400
// - ユーザー作成失敗時（メール重複等）は409
// - 成功時は201
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.Signup(c.Request.Context(), string(req.Email), req.Password); err != nil {
		if errors.Is(err, usecase.ErrWeakPassword) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
			return
		}
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "signup failed"})
		return
	}
	slog.Info("user signup successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証失敗時は401、その他の失敗は500を返します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	pair, err := h.auth.Login(c.Request.Context(), string(req.Email), req.Password, clientInfo(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse(pair))
}

// Refresh はリフレッシュトークンをローテーションします。
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req api.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, clientInfo(c))
	if err != nil {
		if isSessionError(err) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid refresh token"})
			return
		}
		slog.Error("refresh error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse(pair))
}

// Logout はリフレッシュトークンを失効させます。未知のトークンでも204を返します。
func (h *AuthHandler) Logout(c *gin.Context) {
	var req api.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil && !isSessionError(err) {
		slog.Error("logout error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Me は認証済みユーザーを返します。AuthRequiredの後段で使用します。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("me error", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, api.UserResponse{ID: user.ID, Email: openapi_types.Email(user.Email)})
}

// OAuthLogin はstateをCookieに保存し、プロバイダーの認可画面へリダイレクトします。
func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	if h.oauth == nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "oauth not configured"})
		return
	}
	state, redirectURL, err := h.oauth.Begin()
	if err != nil {
		slog.Error("oauth begin failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, h.stateTTL, "/", "", h.secure, true)
	c.Redirect(http.StatusFound, redirectURL)
}

// OAuthCallback はstateの一致を確認し、認可コードをトークンに交換します。
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	if h.oauth == nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "oauth not configured"})
		return
	}
	state := c.Query("state")
	cookie, err := c.Cookie(stateCookie)
	if err != nil || state == "" || cookie != state {
		slog.Warn("oauth state mismatch", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid oauth state"})
		return
	}
	// 使い捨て
	c.SetCookie(stateCookie, "", -1, "/", "", h.secure, true)

	pair, err := h.oauth.Complete(c.Request.Context(), state, c.Query("code"), clientInfo(c))
	if err != nil {
		if errors.Is(err, usecase.ErrOAuthFailed) {
			slog.Warn("oauth callback failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "oauth login failed"})
			return
		}
		slog.Error("oauth callback error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse(pair))
}

func isSessionError(err error) bool {
	return errors.Is(err, usecase.ErrInvalidRefreshToken) ||
		errors.Is(err, usecase.ErrSessionNotFound) ||
		errors.Is(err, usecase.ErrSessionRevoked) ||
		errors.Is(err, usecase.ErrSessionExpired) ||
		errors.Is(err, usecase.ErrUserNotFound)
}
