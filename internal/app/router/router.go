package router

import (
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	markethandler "portfolio_backend/internal/feature/marketdata/transport/handler"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	valuationhandler "portfolio_backend/internal/feature/valuation/transport/handler"
	platformhandler "portfolio_backend/internal/platform/http/handler"
	jwtmw "portfolio_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

// Handlers はルーターに登録するハンドラー一式です。
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Market    *markethandler.MarketDataHandler
	Portfolio *portfoliohandler.PortfolioHandler
	Valuation *valuationhandler.ValuationHandler
	// Readiness は /readyz のハンドラーです。nilの場合は登録しません。
	Readiness gin.HandlerFunc
}

// NewRouter はルートを登録したgin.Engineを返します。
// rateLimit はnilでなければ認証必須のルートに適用されます。
func NewRouter(h Handlers, jwtSecret string, rateLimit gin.HandlerFunc) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	if h.Readiness != nil {
		r.GET("/readyz", h.Readiness)
	}

	// 新規ユーザー登録
	r.POST("/signup", h.Auth.Signup)
	// ログイン（アクセストークン + リフレッシュトークン発行）
	r.POST("/login", h.Auth.Login)
	r.POST("/refresh", h.Auth.Refresh)
	r.POST("/logout", h.Auth.Logout)
	r.GET("/oauth/login", h.Auth.OAuthLogin)
	r.GET("/oauth/callback", h.Auth.OAuthCallback)

	// 認証必須のルート
	auth := r.Group("/")
	if rateLimit != nil {
		auth.Use(rateLimit)
	}
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired(jwtSecret))
	{
		auth.GET("/me", h.Auth.Me)

		market := auth.Group("/market")
		market.GET("/search", h.Market.Search)
		market.GET("/quote/:symbol", h.Market.Quote)
		market.GET("/overview/:symbol", h.Market.Overview)
		market.GET("/history/:symbol", h.Market.History)

		auth.GET("/portfolios", h.Portfolio.ListPortfolios)
		auth.POST("/portfolios", h.Portfolio.CreatePortfolio)
		auth.DELETE("/portfolios/:id", h.Portfolio.DeletePortfolio)
		auth.GET("/portfolios/:id/holdings", h.Portfolio.ListHoldings)
		auth.POST("/portfolios/:id/holdings", h.Portfolio.AddHolding)
		auth.PATCH("/holdings/:id", h.Portfolio.UpdateHolding)
		auth.DELETE("/holdings/:id", h.Portfolio.DeleteHolding)

		auth.GET("/portfolios/:id/valuation", h.Valuation.Valuation)
		auth.GET("/portfolios/:id/history", h.Valuation.History)
	}

	return r
}
