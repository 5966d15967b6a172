package store

import (
	"context"
	"time"

	"bookhub/internal/book"

	"github.com/jmoiron/sqlx"
)

// SQLXQuerier runs catalog statements through database/sql drivers (MySQL, SQLite).
type SQLXQuerier struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewSQLXQuerier(db *sqlx.DB, timeout time.Duration) *SQLXQuerier {
	return &SQLXQuerier{db: db, timeout: timeout}
}

func (q *SQLXQuerier) Count(ctx context.Context, query string, args ...any) (int, error) {
	timeoutCtx, cancel := withQueryTimeout(ctx, q.timeout)
	defer cancel()

	var n int
	if err := q.db.GetContext(timeoutCtx, &n, q.db.Rebind(query), args...); err != nil {
		return 0, err
	}
	return n, nil
}

func (q *SQLXQuerier) Books(ctx context.Context, query string, args ...any) ([]book.Book, error) {
	timeoutCtx, cancel := withQueryTimeout(ctx, q.timeout)
	defer cancel()

	var books []book.Book
	if err := q.db.SelectContext(timeoutCtx, &books, q.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (q *SQLXQuerier) Strings(ctx context.Context, query string, args ...any) ([]string, error) {
	timeoutCtx, cancel := withQueryTimeout(ctx, q.timeout)
	defer cancel()

	var out []string
	if err := q.db.SelectContext(timeoutCtx, &out, q.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (q *SQLXQuerier) Ping(ctx context.Context) error {
	return q.db.PingContext(ctx)
}
