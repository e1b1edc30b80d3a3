package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Apurer/go-gin-eshop/internal/platform/migrations"
)

// Connect opens a PostgreSQL connection via GORM, verifies connectivity and applies migrations.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return db, nil
}

// ConnectOrFallback dials PostgreSQL when dsn is set and returns the DB plus a cleanup function.
// An empty dsn or a failed connection logs a warning and returns nil with a no-op cleanup,
// letting callers fall back to in-memory adapters.
func ConnectOrFallback(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	if strings.TrimSpace(dsn) == "" {
		if logger != nil {
			logger.Warn("POSTGRES_DSN not set, falling back to in-memory shipment repository")
		}
		return nil, func() {}
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to postgres, falling back to in-memory shipment repository", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		if logger != nil {
			logger.Warn("failed to unwrap postgres connection, falling back to in-memory shipment repository", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("shipment repository configured with postgres")
	}
	return db, func() { _ = sqlDB.Close() }
}
