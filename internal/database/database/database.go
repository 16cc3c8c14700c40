// Package database opens and inspects the PostgreSQL connection.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/softball_scoreboard/internal/database/config"
	"github.com/festy23/softball_scoreboard/internal/database/pool"
	"github.com/festy23/softball_scoreboard/pkg/retry"
)

const (
	connectTimeout     = 2 * time.Minute
	slowQueryThreshold = 200 * time.Millisecond
)

// Options tune how Open connects.
type Options struct {
	Retry retry.Config
	Pool  pool.Config
}

// OptionsFromEnv reads retry and pool tuning from the environment.
func OptionsFromEnv() Options {
	return Options{
		Retry: config.LoadRetryConfigFromEnv(),
		Pool:  pool.LoadConfigFromEnv(),
	}
}

// New connects using DB_* environment variables.
func New(logger *zap.SugaredLogger) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return Open(ctx, config.LoadConfigFromEnv(), OptionsFromEnv(), logger)
}

// Open connects to PostgreSQL, retrying transient failures, and configures
// the pool. Connection errors never carry the password.
func Open(ctx context.Context, cfg config.Config, opts Options, logger *zap.SugaredLogger) (*gorm.DB, error) {
	retryCfg := opts.Retry
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warnw("database connection failed, retrying",
			"attempt", attempt,
			"delay", delay,
			"error", config.SanitizeError(err, cfg),
		)
	}

	dsn := config.BuildDSN(cfg)
	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: NewGormLogger(logger), TranslateError: true})
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, opts.Pool); err != nil {
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	logger.Infow("database connected", "database", cfg.DBName, "host", cfg.Host)
	return db, nil
}

type gormWriter struct {
	logger *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warnf(format, args...)
}

// NewGormLogger routes gorm's slow-query and error output through zap.
func NewGormLogger(logger *zap.SugaredLogger) gormlogger.Interface {
	return gormlogger.New(gormWriter{logger: logger.Named("gorm")}, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func sqlDB(db *gorm.DB) (*sql.DB, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	s, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return s, nil
}

// HealthCheck pings the database.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	s, err := sqlDB(db)
	if err != nil {
		return err
	}
	if err := s.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the connection. A nil db is a no-op.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	s, err := sqlDB(db)
	if err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	s, err := sqlDB(db)
	if err != nil {
		return nil, err
	}
	stats := s.Stats()
	return &stats, nil
}
