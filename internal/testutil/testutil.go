package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"bookhub/internal/book"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// BooksSchema is the catalog table as the service expects to find it. The extra column
// stands in for store columns the service does not read.
const BooksSchema = `
CREATE TABLE books (
	id          INTEGER PRIMARY KEY,
	title       TEXT NOT NULL,
	author      TEXT NOT NULL,
	genre       TEXT NOT NULL,
	rating      REAL NOT NULL,
	description TEXT,
	isbn        TEXT
)`

// TestBook is a sample catalog entry.
var TestBook = book.Book{
	ID:          1,
	Title:       "Test Book Title",
	Author:      "Test Author",
	Genre:       "Fiction",
	Rating:      4.2,
	Description: StringPtr("A test book description"),
}

func StringPtr(s string) *string {
	return &s
}

// Catalog returns 25 books: 12 Fiction, 8 Fantasy and 5 History, with ids 1..25.
func Catalog() []book.Book {
	genres := []struct {
		name  string
		count int
	}{
		{"Fiction", 12},
		{"Fantasy", 8},
		{"History", 5},
	}

	var out []book.Book
	id := int64(1)
	for _, g := range genres {
		for i := 0; i < g.count; i++ {
			b := book.Book{
				ID:     id,
				Title:  fmt.Sprintf("%s Title %d", g.name, i+1),
				Author: fmt.Sprintf("Author %d", id),
				Genre:  g.name,
				Rating: float64(id%6) * 0.9,
			}
			if id%2 == 0 {
				b.Description = StringPtr(fmt.Sprintf("Notes on volume %d", id))
			}
			out = append(out, b)
			id++
		}
	}
	return out
}

// NewSQLiteDB creates a file-backed SQLite catalog in a temp dir and seeds it with books.
func NewSQLiteDB(t testing.TB, books []book.Book) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(BooksSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	for _, b := range books {
		_, err := db.Exec(
			"INSERT INTO books (id, title, author, genre, rating, description, isbn) VALUES (?, ?, ?, ?, ?, ?, ?)",
			b.ID, b.Title, b.Author, b.Genre, b.Rating, b.Description, fmt.Sprintf("isbn-%d", b.ID),
		)
		if err != nil {
			t.Fatalf("seed book %d: %v", b.ID, err)
		}
	}
	return db
}

// RecordResponse holds a decoded HTTP response.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   []byte
}

// RecordHTTPResponse reads the recorded response.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)
	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyBytes,
	}
}

// DecodeJSON decodes the recorded body into v.
func (r RecordResponse) DecodeJSON(t testing.TB, v any) {
	t.Helper()
	if err := json.NewDecoder(bytes.NewReader(r.Body)).Decode(v); err != nil {
		t.Fatalf("decode response body %q: %v", r.Body, err)
	}
}
