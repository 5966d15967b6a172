package book

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks bookhub/internal/book Repository

// Repository defines the contract for reading the catalog.
type Repository interface {
	List(ctx context.Context, filters FilterSet, page Page) (ListResult, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	ListByGenre(ctx context.Context, genre string, page Page) ([]Book, error)
	Search(ctx context.Context, term string, limit int) ([]Book, error)
	Genres(ctx context.Context) ([]string, error)
}

// Querier executes parameterized statements against the record store.
// Statements use '?' placeholders.
type Querier interface {
	Count(ctx context.Context, query string, args ...any) (int, error)
	Books(ctx context.Context, query string, args ...any) ([]Book, error)
	Strings(ctx context.Context, query string, args ...any) ([]string, error)
	Ping(ctx context.Context) error
}
