// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	// すべてのGET/HEAD/OPTIONSリクエストに対して200または204を返す
	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}

// CheckFunc は依存先の疎通を確認します。
type CheckFunc func(ctx context.Context) error

// readinessTimeout は依存先チェック1回あたりの上限時間です。
const readinessTimeout = 2 * time.Second

// Readiness は依存先（DB・Redis）がすべて応答する場合のみ200を返す /readyz ハンドラーを生成します。
// 失敗したチェックは名前ごとにエラーメッセージを返し、ステータスは503になります。
func Readiness(checks map[string]CheckFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		results := make(map[string]string, len(checks))
		ready := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				slog.Warn("readiness check failed", "dependency", name, "error", err)
				results[name] = err.Error()
				ready = false
				continue
			}
			results[name] = "ok"
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": results})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": results})
	}
}

// DBCheck はgorm接続の下にある *sql.DB をPINGします。
func DBCheck(db *gorm.DB) CheckFunc {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// RedisCheck はRedisにPINGを送ります。
func RedisCheck(client redis.Cmdable) CheckFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
