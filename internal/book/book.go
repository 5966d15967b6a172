package book

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a catalog entry. Columns the store carries beyond these are not read.
type Book struct {
	ID          int64   `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Author      string  `json:"author" db:"author"`
	Genre       string  `json:"genre" db:"genre"`
	Rating      float64 `json:"rating" db:"rating"`
	Description *string `json:"description,omitempty" db:"description"`
}

// ValidationError reports a missing or malformed client input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// DataSourceError wraps a failure reported by the underlying store.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func dataSourceError(op string, err error) error {
	return &DataSourceError{Op: op, Err: err}
}
