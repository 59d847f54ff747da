package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"portfolio_backend/internal/app/di"
	"portfolio_backend/internal/app/router"
	authusecase "portfolio_backend/internal/feature/auth/usecase"
	markethandler "portfolio_backend/internal/feature/marketdata/transport/handler"
	infradb "portfolio_backend/internal/platform/db"
	infrahttp "portfolio_backend/internal/platform/http"
	platformhandler "portfolio_backend/internal/platform/http/handler"
	jwtmw "portfolio_backend/internal/platform/jwt"
	"portfolio_backend/internal/platform/oauth"
	infraredis "portfolio_backend/internal/platform/redis"
	"portfolio_backend/internal/shared/ratelimiter"
)

// maintenanceInterval は期限切れセッションとレート制限バケットを掃除する間隔です。
const maintenanceInterval = time.Hour

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB()
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	// Redis（未設定・接続失敗時はPostgreSQLにセッションを保存）
	var rdb *redisv9.Client
	redisCfg := infraredis.LoadConfig()
	if redisCfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable. Storing sessions in PostgreSQL.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	jwtCfg := jwtmw.LoadConfig()
	// JWT_SECRETチェック（開発中の注意喚起）
	if jwtCfg.Secret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Market data
	market := di.NewMarketData(slog.Default())

	// Session / Handler
	sessions := di.NewSessionRepository(rdb, db)
	authH := di.NewAuthHandler(db, sessions, jwtCfg, oauth.LoadConfig(),
		infrahttp.NewHTTPClient(infrahttp.DefaultTimeout), os.Getenv("COOKIE_SECURE") == "true")
	portfolioH, valuationH := di.NewPortfolioHandlers(db, market)

	checks := map[string]platformhandler.CheckFunc{"db": platformhandler.DBCheck(db)}
	if rdb != nil {
		checks["redis"] = platformhandler.RedisCheck(rdb)
	}

	limiter := ratelimiter.NewRateLimiter(ratelimiter.LoadConfig())

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Auth:      authH,
		Market:    markethandler.NewMarketDataHandler(market),
		Portfolio: portfolioH,
		Valuation: valuationH,
		Readiness: platformhandler.Readiness(checks),
	}, jwtCfg.Secret, limiter.Middleware())

	go runMaintenance(ctx, maintenanceInterval, sessions, limiter)

	srv := &http.Server{
		Addr:              ":" + port(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}

// runMaintenance はctxが終了するまで定期的に期限切れセッションと使われていないバケットを削除します。
func runMaintenance(ctx context.Context, interval time.Duration, sessions authusecase.SessionRepository, limiter *ratelimiter.RateLimiter) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.DeleteExpired(ctx)
			if err != nil {
				slog.Error("failed to delete expired sessions", "error", err)
			} else if n > 0 {
				slog.Info("expired sessions deleted", "count", n)
			}
			limiter.Sweep()
		}
	}
}
