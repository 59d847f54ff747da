package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/usecase"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// mockPortfolioUsecase is a func-field mock of PortfolioUsecase.
type mockPortfolioUsecase struct {
	ListPortfoliosFunc  func(ctx context.Context, userID uint) ([]entity.Portfolio, error)
	CreatePortfolioFunc func(ctx context.Context, userID uint, name string) (*entity.Portfolio, error)
	DeletePortfolioFunc func(ctx context.Context, userID uint, id uuid.UUID) error
	ListHoldingsFunc    func(ctx context.Context, userID uint, portfolioID uuid.UUID) ([]entity.Holding, error)
	AddHoldingFunc      func(ctx context.Context, userID uint, portfolioID uuid.UUID, in usecase.HoldingInput) (*entity.Holding, error)
	UpdateHoldingFunc   func(ctx context.Context, userID uint, id uuid.UUID, patch usecase.HoldingPatch) (*entity.Holding, error)
	DeleteHoldingFunc   func(ctx context.Context, userID uint, id uuid.UUID) error

	CallCount int
}

func (m *mockPortfolioUsecase) ListPortfolios(ctx context.Context, userID uint) ([]entity.Portfolio, error) {
	m.CallCount++
	return m.ListPortfoliosFunc(ctx, userID)
}

func (m *mockPortfolioUsecase) CreatePortfolio(ctx context.Context, userID uint, name string) (*entity.Portfolio, error) {
	m.CallCount++
	return m.CreatePortfolioFunc(ctx, userID, name)
}

func (m *mockPortfolioUsecase) DeletePortfolio(ctx context.Context, userID uint, id uuid.UUID) error {
	m.CallCount++
	return m.DeletePortfolioFunc(ctx, userID, id)
}

func (m *mockPortfolioUsecase) ListHoldings(ctx context.Context, userID uint, portfolioID uuid.UUID) ([]entity.Holding, error) {
	m.CallCount++
	return m.ListHoldingsFunc(ctx, userID, portfolioID)
}

func (m *mockPortfolioUsecase) AddHolding(ctx context.Context, userID uint, portfolioID uuid.UUID, in usecase.HoldingInput) (*entity.Holding, error) {
	m.CallCount++
	return m.AddHoldingFunc(ctx, userID, portfolioID, in)
}

func (m *mockPortfolioUsecase) UpdateHolding(ctx context.Context, userID uint, id uuid.UUID, patch usecase.HoldingPatch) (*entity.Holding, error) {
	m.CallCount++
	return m.UpdateHoldingFunc(ctx, userID, id, patch)
}

func (m *mockPortfolioUsecase) DeleteHolding(ctx context.Context, userID uint, id uuid.UUID) error {
	m.CallCount++
	return m.DeleteHoldingFunc(ctx, userID, id)
}

const testUserID uint = 42

var (
	portfolioID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	holdingID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	createdAt   = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func newRouter(uc PortfolioUsecase, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPortfolioHandler(uc)
	r := gin.New()
	if authenticated {
		r.Use(func(c *gin.Context) { c.Set(jwtmw.ContextUserID, testUserID) })
	}
	r.GET("/portfolios", h.ListPortfolios)
	r.POST("/portfolios", h.CreatePortfolio)
	r.DELETE("/portfolios/:id", h.DeletePortfolio)
	r.GET("/portfolios/:id/holdings", h.ListHoldings)
	r.POST("/portfolios/:id/holdings", h.AddHolding)
	r.PATCH("/holdings/:id", h.UpdateHolding)
	r.DELETE("/holdings/:id", h.DeleteHolding)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleHolding() *entity.Holding {
	return &entity.Holding{
		ID:            holdingID,
		PortfolioID:   portfolioID,
		Symbol:        "AAPL",
		Shares:        decimal.RequireFromString("10"),
		PurchasePrice: decimal.RequireFromString("150.25"),
		PurchaseDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:     createdAt,
	}
}

func TestPortfolioHandler_RequiresUser(t *testing.T) {
	uc := &mockPortfolioUsecase{}
	w := serve(newRouter(uc, false), http.MethodGet, "/portfolios", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, uc.CallCount)
}

func TestPortfolioHandler_ListPortfolios(t *testing.T) {
	uc := &mockPortfolioUsecase{ListPortfoliosFunc: func(ctx context.Context, userID uint) ([]entity.Portfolio, error) {
		assert.Equal(t, testUserID, userID)
		return []entity.Portfolio{{ID: portfolioID, UserID: userID, Name: "Main", CreatedAt: createdAt}}, nil
	}}

	w := serve(newRouter(uc, true), http.MethodGet, "/portfolios", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"11111111-1111-1111-1111-111111111111","name":"Main","created_at":"2024-05-01T12:00:00Z"}]`, w.Body.String())
}

func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		err            error
		expectedStatus int
		expectedCalls  int
	}{
		{"success", `{"name":"Main"}`, nil, http.StatusCreated, 1},
		{"missing name", `{}`, nil, http.StatusBadRequest, 0},
		{"validation error", `{"name":"   "}`, fmt.Errorf("%w: name is required", usecase.ErrValidation), http.StatusBadRequest, 1},
		{"store failure", `{"name":"Main"}`, errors.New("db down"), http.StatusInternalServerError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockPortfolioUsecase{CreatePortfolioFunc: func(ctx context.Context, userID uint, name string) (*entity.Portfolio, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &entity.Portfolio{ID: portfolioID, UserID: userID, Name: name, CreatedAt: createdAt}, nil
			}}

			w := serve(newRouter(uc, true), http.MethodPost, "/portfolios", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCalls, uc.CallCount)
		})
	}
}

func TestPortfolioHandler_DeletePortfolio(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		err            error
		expectedStatus int
	}{
		{"success", "/portfolios/" + portfolioID.String(), nil, http.StatusNoContent},
		{"invalid id", "/portfolios/not-a-uuid", nil, http.StatusBadRequest},
		{"foreign portfolio", "/portfolios/" + portfolioID.String(), usecase.ErrPortfolioNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockPortfolioUsecase{DeletePortfolioFunc: func(context.Context, uint, uuid.UUID) error { return tt.err }}
			w := serve(newRouter(uc, true), http.MethodDelete, tt.path, "")
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestPortfolioHandler_ListHoldings(t *testing.T) {
	uc := &mockPortfolioUsecase{ListHoldingsFunc: func(ctx context.Context, userID uint, id uuid.UUID) ([]entity.Holding, error) {
		assert.Equal(t, portfolioID, id)
		return []entity.Holding{*sampleHolding()}, nil
	}}

	w := serve(newRouter(uc, true), http.MethodGet, "/portfolios/"+portfolioID.String()+"/holdings", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{
		"id":"22222222-2222-2222-2222-222222222222",
		"portfolio_id":"11111111-1111-1111-1111-111111111111",
		"symbol":"AAPL",
		"shares":"10",
		"purchase_price":"150.25",
		"purchase_date":"2024-01-15",
		"created_at":"2024-05-01T12:00:00Z"
	}]`, w.Body.String())
}

func TestPortfolioHandler_AddHolding(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		check          func(t *testing.T, in usecase.HoldingInput)
		expectedStatus int
		expectedCalls  int
	}{
		{
			name: "numbers and date",
			body: `{"symbol":"aapl","shares":10,"purchase_price":"150.25","purchase_date":"2024-01-15"}`,
			check: func(t *testing.T, in usecase.HoldingInput) {
				assert.Equal(t, "aapl", in.Symbol)
				assert.True(t, decimal.NewFromInt(10).Equal(in.Shares))
				require.NotNil(t, in.PurchaseDate)
				assert.Equal(t, "2024-01-15", in.PurchaseDate.Format("2006-01-02"))
			},
			expectedStatus: http.StatusCreated,
			expectedCalls:  1,
		},
		{
			name: "date omitted",
			body: `{"symbol":"MSFT","shares":"1.5","purchase_price":300}`,
			check: func(t *testing.T, in usecase.HoldingInput) {
				assert.Nil(t, in.PurchaseDate)
			},
			expectedStatus: http.StatusCreated,
			expectedCalls:  1,
		},
		{"missing shares", `{"symbol":"MSFT","purchase_price":300}`, nil, http.StatusBadRequest, 0},
		{"bad date", `{"symbol":"MSFT","shares":1,"purchase_price":300,"purchase_date":"15/01/2024"}`, nil, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockPortfolioUsecase{AddHoldingFunc: func(ctx context.Context, userID uint, pid uuid.UUID, in usecase.HoldingInput) (*entity.Holding, error) {
				tt.check(t, in)
				return sampleHolding(), nil
			}}

			w := serve(newRouter(uc, true), http.MethodPost, "/portfolios/"+portfolioID.String()+"/holdings", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCalls, uc.CallCount)
		})
	}
}

func TestPortfolioHandler_UpdateHolding(t *testing.T) {
	var got usecase.HoldingPatch
	uc := &mockPortfolioUsecase{UpdateHoldingFunc: func(ctx context.Context, userID uint, id uuid.UUID, patch usecase.HoldingPatch) (*entity.Holding, error) {
		got = patch
		return sampleHolding(), nil
	}}

	w := serve(newRouter(uc, true), http.MethodPatch, "/holdings/"+holdingID.String(), `{"shares":"4"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Shares)
	assert.Equal(t, "4", got.Shares.String())
	assert.Nil(t, got.PurchasePrice)
	assert.Nil(t, got.PurchaseDate)
}

func TestPortfolioHandler_DeleteHolding(t *testing.T) {
	uc := &mockPortfolioUsecase{DeleteHoldingFunc: func(context.Context, uint, uuid.UUID) error {
		return usecase.ErrHoldingNotFound
	}}

	w := serve(newRouter(uc, true), http.MethodDelete, "/holdings/"+holdingID.String(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"holding not found"}`, w.Body.String())
}
