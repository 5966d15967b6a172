package store

import (
	"context"
	"time"

	"bookhub/internal/book"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// PostgresQuerier runs catalog statements on a pgx pool, rebinding '?' placeholders to $n.
type PostgresQuerier struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresQuerier(db *pgxpool.Pool, timeout time.Duration) *PostgresQuerier {
	return &PostgresQuerier{db: db, timeout: timeout}
}

func (q *PostgresQuerier) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withQueryTimeout(ctx, q.timeout)
}

func (q *PostgresQuerier) Count(ctx context.Context, query string, args ...any) (int, error) {
	timeoutCtx, cancel := q.withTimeout(ctx)
	defer cancel()

	var n int
	if err := q.db.QueryRow(timeoutCtx, rebindDollar(query), args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (q *PostgresQuerier) Books(ctx context.Context, query string, args ...any) ([]book.Book, error) {
	timeoutCtx, cancel := q.withTimeout(ctx)
	defer cancel()

	rows, err := q.db.Query(timeoutCtx, rebindDollar(query), args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[book.Book])
}

func (q *PostgresQuerier) Strings(ctx context.Context, query string, args ...any) ([]string, error) {
	timeoutCtx, cancel := q.withTimeout(ctx)
	defer cancel()

	rows, err := q.db.Query(timeoutCtx, rebindDollar(query), args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (q *PostgresQuerier) Ping(ctx context.Context) error {
	return q.db.Ping(ctx)
}

func rebindDollar(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}
