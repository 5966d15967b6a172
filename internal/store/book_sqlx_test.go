package store

import (
	"context"
	"errors"
	"testing"

	"bookhub/internal/book"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookRowColumns = []string{"id", "title", "author", "genre", "rating", "description"}

func newMySQLMock(t *testing.T) (*book.SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db := sqlx.NewDb(mockDB, "mysql")
	return book.NewSQLRepository(NewSQLXQuerier(db, 0)), mock
}

func TestSQLXQuerier_ListGenrePage(t *testing.T) {
	repo, mock := newMySQLMock(t)

	mock.ExpectQuery("SELECT COUNT(*) FROM books WHERE genre = ?").
		WithArgs("Fiction").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(12))
	mock.ExpectQuery("SELECT id, title, author, genre, rating, description FROM books WHERE genre = ? LIMIT ? OFFSET ?").
		WithArgs("Fiction", 10, 10).
		WillReturnRows(sqlmock.NewRows(bookRowColumns).
			AddRow(11, "Fiction Title 11", "Author 11", "Fiction", "3.5", nil).
			AddRow(12, "Fiction Title 12", "Author 12", "Fiction", "4.0", "Notes"))

	filters := book.CompileFilters(book.FilterParams{Genre: "Fiction"})
	result, err := repo.List(context.Background(), filters, book.Page{Number: 2, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, result.Data, 2)
	assert.Equal(t, book.Pagination{Total: 12, Page: 2, Limit: 10, Pages: 2}, result.Pagination)
	assert.Equal(t, 3.5, result.Data[0].Rating)
	assert.Nil(t, result.Data[0].Description)
	require.NotNil(t, result.Data[1].Description)
	assert.Equal(t, "Notes", *result.Data[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuerier_ListAllFilters(t *testing.T) {
	repo, mock := newMySQLMock(t)

	const where = " WHERE genre = ? AND rating >= ? AND (LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?))"
	mock.ExpectQuery("SELECT COUNT(*) FROM books"+where).
		WithArgs("Fantasy", 4.5, "%ring%", "%ring%").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT id, title, author, genre, rating, description FROM books"+where+" LIMIT ? OFFSET ?").
		WithArgs("Fantasy", 4.5, "%ring%", "%ring%", 10, 0).
		WillReturnRows(sqlmock.NewRows(bookRowColumns))

	filters := book.CompileFilters(book.FilterParams{Genre: "Fantasy", MinRating: "4.5", Search: "ring"})
	result, err := repo.List(context.Background(), filters, book.Page{Number: 1, Limit: 10})
	require.NoError(t, err)

	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
	assert.Equal(t, 0, result.Pagination.Pages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuerier_CountFailureSkipsFetch(t *testing.T) {
	repo, mock := newMySQLMock(t)

	mock.ExpectQuery("SELECT COUNT(*) FROM books").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.List(context.Background(), nil, book.Page{Number: 1, Limit: 10})

	var dserr *book.DataSourceError
	require.ErrorAs(t, err, &dserr)
	assert.Equal(t, "count books", dserr.Op)
	// no fetch was expected; an extra query would fail here
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuerier_FetchFailure(t *testing.T) {
	repo, mock := newMySQLMock(t)

	mock.ExpectQuery("SELECT COUNT(*) FROM books").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(25))
	mock.ExpectQuery("SELECT id, title, author, genre, rating, description FROM books LIMIT ? OFFSET ?").
		WithArgs(10, 0).
		WillReturnError(errors.New("lost connection"))

	result, err := repo.List(context.Background(), nil, book.Page{Number: 1, Limit: 10})

	var dserr *book.DataSourceError
	require.ErrorAs(t, err, &dserr)
	assert.Equal(t, "fetch books", dserr.Op)
	assert.Nil(t, result.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXQuerier_GetByID(t *testing.T) {
	const query = "SELECT id, title, author, genre, rating, description FROM books WHERE id = ? LIMIT 1"

	t.Run("found", func(t *testing.T) {
		repo, mock := newMySQLMock(t)
		mock.ExpectQuery(query).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(bookRowColumns).AddRow(7, "Dune", "Frank Herbert", "Science Fiction", "4.6", "Spice"))

		b, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), b.ID)
		assert.Equal(t, "Frank Herbert", b.Author)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMySQLMock(t)
		mock.ExpectQuery(query).
			WithArgs(int64(999999)).
			WillReturnRows(sqlmock.NewRows(bookRowColumns))

		_, err := repo.GetByID(context.Background(), 999999)
		assert.ErrorIs(t, err, book.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store error", func(t *testing.T) {
		repo, mock := newMySQLMock(t)
		mock.ExpectQuery(query).
			WithArgs(int64(3)).
			WillReturnError(errors.New("timeout"))

		_, err := repo.GetByID(context.Background(), 3)
		var dserr *book.DataSourceError
		assert.ErrorAs(t, err, &dserr)
		assert.NotErrorIs(t, err, book.ErrNotFound)
	})
}

func TestSQLXQuerier_SearchAndGenres(t *testing.T) {
	repo, mock := newMySQLMock(t)

	mock.ExpectQuery("SELECT id, title, author, genre, rating, description FROM books" +
		" WHERE LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) LIMIT ?").
		WithArgs("%tolkien%", "%tolkien%", "%tolkien%", 20).
		WillReturnRows(sqlmock.NewRows(bookRowColumns).AddRow(1, "The Hobbit", "J.R.R. Tolkien", "Fantasy", "4.8", nil))
	mock.ExpectQuery("SELECT DISTINCT genre FROM books ORDER BY genre").
		WillReturnRows(sqlmock.NewRows([]string{"genre"}).AddRow("fantasy").AddRow("Fiction").AddRow("Fantasy"))

	books, err := repo.Search(context.Background(), "tolkien", 20)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	genres, err := repo.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Fantasy", "Fiction", "fantasy"}, genres)
	assert.NoError(t, mock.ExpectationsWereMet())
}
