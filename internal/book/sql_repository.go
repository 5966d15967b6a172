package book

import (
	"context"
	"slices"
)

const (
	booksTable  = "books"
	bookColumns = "id, title, author, genre, rating, description"

	// DefaultSearchLimit caps quick-search results.
	DefaultSearchLimit = 20
)

// SQLRepository implements Repository on top of a Querier.
type SQLRepository struct {
	q Querier
}

func NewSQLRepository(q Querier) *SQLRepository {
	return &SQLRepository{q: q}
}

// List counts and fetches the rows matching filters. Both statements are built from the
// same rendered WHERE clause and argument slice; the fetch is only issued after the count
// succeeds.
func (r *SQLRepository) List(ctx context.Context, filters FilterSet, page Page) (ListResult, error) {
	where, args := filters.Where()

	countSQL := "SELECT COUNT(*) FROM " + booksTable + where
	total, err := r.q.Count(ctx, countSQL, args...)
	if err != nil {
		return ListResult{}, dataSourceError("count books", err)
	}

	dataSQL := "SELECT " + bookColumns + " FROM " + booksTable + where + " LIMIT ? OFFSET ?"
	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, page.Limit, page.Offset())
	books, err := r.q.Books(ctx, dataSQL, argsWithPage...)
	if err != nil {
		return ListResult{}, dataSourceError("fetch books", err)
	}

	return ListResult{
		Data:       nonNil(books),
		Pagination: NewPagination(total, page),
	}, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (Book, error) {
	const query = "SELECT " + bookColumns + " FROM " + booksTable + " WHERE id = ? LIMIT 1"

	books, err := r.q.Books(ctx, query, id)
	if err != nil {
		return Book{}, dataSourceError("fetch book", err)
	}
	if len(books) == 0 {
		return Book{}, ErrNotFound
	}
	return books[0], nil
}

// ListByGenre returns one page of books in a genre. Unlike List it does not count.
func (r *SQLRepository) ListByGenre(ctx context.Context, genre string, page Page) ([]Book, error) {
	where, args := FilterSet{genreEquals(genre)}.Where()
	query := "SELECT " + bookColumns + " FROM " + booksTable + where + " LIMIT ? OFFSET ?"
	args = append(args, page.Limit, page.Offset())

	books, err := r.q.Books(ctx, query, args...)
	if err != nil {
		return nil, dataSourceError("fetch books by genre", err)
	}
	return nonNil(books), nil
}

// Search matches term as a substring of title, author or description.
func (r *SQLRepository) Search(ctx context.Context, term string, limit int) ([]Book, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	const query = "SELECT " + bookColumns + " FROM " + booksTable +
		" WHERE LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)" +
		" LIMIT ?"
	pattern := containsPattern(term)

	books, err := r.q.Books(ctx, query, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, dataSourceError("search books", err)
	}
	return nonNil(books), nil
}

func (r *SQLRepository) Genres(ctx context.Context) ([]string, error) {
	const query = "SELECT DISTINCT genre FROM " + booksTable + " ORDER BY genre"

	genres, err := r.q.Strings(ctx, query)
	if err != nil {
		return nil, dataSourceError("fetch genres", err)
	}
	// store collations disagree on ordering
	slices.Sort(genres)
	if genres == nil {
		genres = []string{}
	}
	return genres, nil
}

// Ping reports whether the record store is reachable.
func (r *SQLRepository) Ping(ctx context.Context) error {
	return r.q.Ping(ctx)
}

func nonNil(books []Book) []Book {
	if books == nil {
		return []Book{}
	}
	return books
}
