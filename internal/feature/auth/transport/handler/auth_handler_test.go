package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/feature/auth/domain/entity"
	"portfolio_backend/internal/feature/auth/usecase"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of AuthUsecase.
type mockAuthUsecase struct {
	SignupFunc  func(ctx context.Context, email, password string) error
	LoginFunc   func(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	RefreshFunc func(ctx context.Context, token string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	LogoutFunc  func(ctx context.Context, token string) error
	MeFunc      func(ctx context.Context, userID uint) (*entity.User, error)

	SignupCallCount int
	LastClient      usecase.ClientInfo
}

func (m *mockAuthUsecase) Signup(ctx context.Context, email, password string) error {
	m.SignupCallCount++
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, email, password)
	}
	return nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
	m.LastClient = client
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, client)
	}
	return nil, usecase.ErrInvalidCredentials
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, token string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, token, client)
	}
	return nil, usecase.ErrSessionNotFound
}

func (m *mockAuthUsecase) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	return nil, usecase.ErrUserNotFound
}

type mockOAuthUsecase struct {
	BeginErr     error
	CompleteFunc func(ctx context.Context, state, code string) (*usecase.TokenPair, error)
}

func (m *mockOAuthUsecase) Begin() (string, string, error) {
	if m.BeginErr != nil {
		return "", "", m.BeginErr
	}
	return "state-1", "https://idp.example.com/auth?state=state-1", nil
}

func (m *mockOAuthUsecase) Complete(ctx context.Context, state, code string, _ usecase.ClientInfo) (*usecase.TokenPair, error) {
	return m.CompleteFunc(ctx, state, code)
}

var testPair = &usecase.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "handler-test")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockSignupFunc func(ctx context.Context, email, password string) error
		expectedStatus int
		expectedBody   string
		expectedCalls  int
	}{
		{
			name:           "success: user registration",
			requestBody:    gin.H{"email": "test@example.com", "password": "password123"},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"ok"}`,
			expectedCalls:  1,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"email": "invalid-email", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"email": "test@example.com", "password": "short"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "failure: duplicate email hides the cause",
			requestBody:    gin.H{"email": "existing@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, email, password string) error { return usecase.ErrEmailAlreadyExists },
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"signup failed"}`,
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{SignupFunc: tt.mockSignupFunc}
			router := gin.New()
			router.POST("/signup", NewAuthHandler(mockUC, nil, 600, false).Signup)

			w := doJSON(t, router, http.MethodPost, "/signup", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectedCalls, mockUC.SignupCallCount)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		loginFunc      func(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.TokenPair, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success: returns token pair",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			loginFunc: func(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
				return testPair, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"access_token":"access","refresh_token":"refresh","expires_in":900}`,
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"email": "test@example.com"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "failure: invalid credentials",
			requestBody:    gin.H{"email": "wrong@example.com", "password": "wrong-password"},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid email or password"}`,
		},
		{
			name:        "failure: token generation error",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			loginFunc: func(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
				return nil, errors.New("failed to generate token")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LoginFunc: tt.loginFunc}
			router := gin.New()
			router.POST("/login", NewAuthHandler(mockUC, nil, 600, false).Login)

			w := doJSON(t, router, http.MethodPost, "/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAuthHandler_Login_RecordsClientInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUC := &mockAuthUsecase{LoginFunc: func(context.Context, string, string, usecase.ClientInfo) (*usecase.TokenPair, error) {
		return testPair, nil
	}}
	router := gin.New()
	router.POST("/login", NewAuthHandler(mockUC, nil, 600, false).Login)

	w := doJSON(t, router, http.MethodPost, "/login", gin.H{"email": "test@example.com", "password": "password123"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "handler-test", mockUC.LastClient.UserAgent)
	assert.NotEmpty(t, mockUC.LastClient.IPAddress)
}

func TestAuthHandler_Refresh(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           gin.H
		err            error
		expectedStatus int
	}{
		{"success", gin.H{"refresh_token": "tok"}, nil, http.StatusOK},
		{"missing token", gin.H{}, nil, http.StatusBadRequest},
		{"revoked", gin.H{"refresh_token": "tok"}, usecase.ErrSessionRevoked, http.StatusUnauthorized},
		{"expired", gin.H{"refresh_token": "tok"}, usecase.ErrSessionExpired, http.StatusUnauthorized},
		{"malformed", gin.H{"refresh_token": "tok"}, usecase.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{"store failure", gin.H{"refresh_token": "tok"}, errors.New("redis down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{RefreshFunc: func(ctx context.Context, token string, _ usecase.ClientInfo) (*usecase.TokenPair, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return testPair, nil
			}}
			router := gin.New()
			router.POST("/refresh", NewAuthHandler(mockUC, nil, 600, false).Refresh)

			w := doJSON(t, router, http.MethodPost, "/refresh", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"unknown session is not an error", usecase.ErrSessionNotFound, http.StatusNoContent},
		{"store failure", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LogoutFunc: func(context.Context, string) error { return tt.err }}
			router := gin.New()
			router.POST("/logout", NewAuthHandler(mockUC, nil, 600, false).Logout)

			w := doJSON(t, router, http.MethodPost, "/logout", gin.H{"refresh_token": "tok"})
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)

	withUser := func(id uint) gin.HandlerFunc {
		return func(c *gin.Context) { c.Set(jwtmw.ContextUserID, id) }
	}
	mockUC := &mockAuthUsecase{MeFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
		if userID == 42 {
			return &entity.User{ID: 42, Email: "me@example.com"}, nil
		}
		return nil, usecase.ErrUserNotFound
	}}
	h := NewAuthHandler(mockUC, nil, 600, false)

	router := gin.New()
	router.GET("/me", withUser(42), h.Me)
	router.GET("/ghost", withUser(7), h.Me)
	router.GET("/anonymous", h.Me)

	w := doJSON(t, router, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"email":"me@example.com"}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodGet, "/ghost", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, router, http.MethodGet, "/anonymous", nil).Code)
}

func TestAuthHandler_OAuthLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("redirects and sets state cookie", func(t *testing.T) {
		router := gin.New()
		router.GET("/oauth/login", NewAuthHandler(&mockAuthUsecase{}, &mockOAuthUsecase{}, 600, true).OAuthLogin)

		w := doJSON(t, router, http.MethodGet, "/oauth/login", nil)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://idp.example.com/auth?state=state-1", w.Header().Get("Location"))
		cookie := w.Header().Get("Set-Cookie")
		assert.Contains(t, cookie, "oauth_state=state-1")
		assert.Contains(t, cookie, "HttpOnly")
		assert.Contains(t, cookie, "Secure")
	})

	t.Run("not configured", func(t *testing.T) {
		router := gin.New()
		router.GET("/oauth/login", NewAuthHandler(&mockAuthUsecase{}, nil, 600, false).OAuthLogin)

		w := doJSON(t, router, http.MethodGet, "/oauth/login", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestAuthHandler_OAuthCallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		query          string
		cookie         string
		completeErr    error
		expectedStatus int
	}{
		{"success", "?state=s1&code=c1", "s1", nil, http.StatusOK},
		{"missing cookie", "?state=s1&code=c1", "", nil, http.StatusBadRequest},
		{"state mismatch", "?state=s1&code=c1", "s2", nil, http.StatusBadRequest},
		{"provider rejected", "?state=s1&code=c1", "s1", fmt.Errorf("%w: exchange", usecase.ErrOAuthFailed), http.StatusUnauthorized},
		{"session store failure", "?state=s1&code=c1", "s1", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCode string
			oauthUC := &mockOAuthUsecase{CompleteFunc: func(ctx context.Context, state, code string) (*usecase.TokenPair, error) {
				gotCode = code
				if tt.completeErr != nil {
					return nil, tt.completeErr
				}
				return testPair, nil
			}}
			router := gin.New()
			router.GET("/oauth/callback", NewAuthHandler(&mockAuthUsecase{}, oauthUC, 600, false).OAuthCallback)

			req := httptest.NewRequest(http.MethodGet, "/oauth/callback"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "oauth_state", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "c1", gotCode)
				assert.JSONEq(t, `{"access_token":"access","refresh_token":"refresh","expires_in":900}`, w.Body.String())
			}
		})
	}
}
