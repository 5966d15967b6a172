package book

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
)

// ListQuery is a listing request: raw filters plus a resolved page.
type ListQuery struct {
	Filters FilterParams
	Page    Page
}

// SearchQuery is a quick-search request.
type SearchQuery struct {
	Term string `validate:"required"`
}

// Service provides book-related business logic.
type Service struct {
	repo        Repository
	validate    *validator.Validate
	searchLimit int
}

// NewService creates a new book service.
func NewService(repo Repository, searchLimit int) *Service {
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	return &Service{
		repo:        repo,
		validate:    validator.New(),
		searchLimit: searchLimit,
	}
}

// List returns one page of books matching the query, with pagination metadata.
func (s *Service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	return s.repo.List(ctx, CompileFilters(q.Filters), q.Page)
}

// GetByID returns a book by its identifier.
func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByGenre returns one page of books in the given genre.
func (s *Service) ListByGenre(ctx context.Context, genre string, page Page) ([]Book, error) {
	return s.repo.ListByGenre(ctx, genre, page)
}

// Search returns up to the configured number of books whose title, author or description
// contains the term.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Book, error) {
	if err := s.validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &ValidationError{Field: "query", Message: "Search query is required"}
		}
		return nil, err
	}
	return s.repo.Search(ctx, q.Term, s.searchLimit)
}

// Genres returns the distinct genres in the catalog, sorted.
func (s *Service) Genres(ctx context.Context) ([]string, error) {
	return s.repo.Genres(ctx)
}
