package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flagsapp/flags-backend/pkg/config"
	"github.com/flagsapp/flags-backend/pkg/logger"
)

// Connect opens a postgres-backed gorm handle, applies the configured pool
// settings, and verifies the connection with a ping.
func Connect(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: newGormLogger(logg),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrapping sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return gdb, nil
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping is used by the readiness probe.
func Ping(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type gormLogAdapter struct {
	logg          *logger.Logger
	slowThreshold time.Duration
}

func newGormLogger(logg *logger.Logger) gormlogger.Interface {
	return &gormLogAdapter{logg: logg, slowThreshold: 250 * time.Millisecond}
}

func (g *gormLogAdapter) LogMode(gormlogger.LogLevel) gormlogger.Interface { return g }

func (g *gormLogAdapter) Info(ctx context.Context, msg string, args ...any) {
	g.logg.Info(ctx, fmt.Sprintf(msg, args...))
}

func (g *gormLogAdapter) Warn(ctx context.Context, msg string, args ...any) {
	g.logg.Warn(ctx, fmt.Sprintf(msg, args...))
}

func (g *gormLogAdapter) Error(ctx context.Context, msg string, args ...any) {
	g.logg.Error(ctx, fmt.Sprintf(msg, args...), nil)
}

func (g *gormLogAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	if err != nil && err != gorm.ErrRecordNotFound {
		sql, rows := fc()
		ctx = g.logg.WithFields(ctx, map[string]any{
			"sql":     sql,
			"rows":    rows,
			"elapsed": elapsed.String(),
		})
		g.logg.Error(ctx, "query failed", err)
		return
	}

	if elapsed > g.slowThreshold {
		sql, rows := fc()
		ctx = g.logg.WithFields(ctx, map[string]any{
			"sql":     sql,
			"rows":    rows,
			"elapsed": elapsed.String(),
		})
		g.logg.Warn(ctx, "slow query")
	}
}
