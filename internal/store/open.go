package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookhub/internal/book"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config holds connection pool settings for the record store.
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
}

// Open connects to the configured store and verifies it with a ping. The returned
// close function releases the pool.
func Open(ctx context.Context, cfg Config, log *zap.Logger) (book.Querier, func(), error) {
	switch cfg.Driver {
	case DriverPostgres:
		pool, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Info("database connection OK",
			zap.String("driver", cfg.Driver),
			zap.String("dsn", redactDSN(cfg.DSN)),
			zap.Int32("max_conns", pool.Config().MaxConns),
		)
		return NewPostgresQuerier(pool, cfg.QueryTimeout), pool.Close, nil
	case DriverMySQL, DriverSQLite:
		db, err := openSQLX(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Info("database connection OK",
			zap.String("driver", cfg.Driver),
			zap.String("dsn", redactDSN(cfg.DSN)),
			zap.Int("max_open_conns", cfg.MaxOpenConns),
		)
		return NewSQLXQuerier(db, cfg.QueryTimeout), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", redactDSN(cfg.DSN), err)
	}
	return pool, nil
}

func openSQLX(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database (%s): %w", cfg.Driver, redactDSN(cfg.DSN), err)
	}
	return db, nil
}

// withQueryTimeout bounds ctx by timeout unless timeout is zero or ctx already has a deadline.
func withQueryTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// redactDSN hides credentials in URL-style and MySQL-style DSNs.
func redactDSN(dsn string) string {
	const marker = "://"
	if start := strings.Index(dsn, marker); start >= 0 {
		start += len(marker)
		end := strings.Index(dsn[start:], "@")
		if end < 0 {
			return dsn
		}
		return dsn[:start] + "***" + dsn[start+end:]
	}

	if mcfg, err := mysql.ParseDSN(dsn); err == nil && mcfg.User != "" {
		mcfg.User = "***"
		mcfg.Passwd = ""
		return mcfg.FormatDSN()
	}
	return dsn
}
