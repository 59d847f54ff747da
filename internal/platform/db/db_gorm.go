// Package db はPostgreSQLへのGORM接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authadapters "portfolio_backend/internal/feature/auth/adapters"
	authentity "portfolio_backend/internal/feature/auth/domain/entity"
	portfolioentity "portfolio_backend/internal/feature/portfolio/domain/entity"
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Config はデータベース接続設定です。URLが設定されている場合は他の項目より優先されます。
type Config struct {
	URL      string
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
}

// LoadConfigFromEnv は環境変数から接続設定を読み込みます。
// DATABASE_URL、またはDB_USER / DB_PASSWORD / DB_NAME / DB_HOST / DB_PORT / DB_SSLMODE。
func LoadConfigFromEnv() Config {
	cfg := Config{
		URL:      os.Getenv("DATABASE_URL"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

// BuildDSN はpgx形式（key=value）のDSNを組み立てます。
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener はDSNからgorm.DBを開く関数です（テストで差し替え可能）。
type Opener func(dsn string) (*gorm.DB, error)

// OpenPostgres はpgxドライバでPostgreSQLに接続します。
// TranslateErrorにより一意制約違反はgorm.ErrDuplicatedKeyとして返ります。
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry はtimeoutに達するまでretryInterval間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Migrate はすべてのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&authentity.User{},
		&authadapters.SessionModel{},
		&portfolioentity.Portfolio{},
		&portfolioentity.Holding{},
	)
}

// OpenDB は環境変数の設定で接続し、RUN_MIGRATIONS=trueの場合はマイグレーションを実行します。
func OpenDB() (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(LoadConfigFromEnv()), 60*time.Second, OpenPostgres)
	if err != nil {
		return nil, err
	}
	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		slog.Info("database migrated")
	}
	return db, nil
}
