package book

import (
	"math"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a pagination directive. Number and Limit are always positive.
type Page struct {
	Number int
	Limit  int
}

// PageDefaults controls how raw page parameters are resolved.
type PageDefaults struct {
	Limit    int
	MaxLimit int
}

// ParsePage resolves raw page and limit strings. Missing, non-numeric and non-positive
// values fall back to page 1 and the default limit; limits above MaxLimit are clamped, and
// page is capped so that Offset cannot overflow.
func (d PageDefaults) ParsePage(rawPage, rawLimit string) Page {
	def := d.Limit
	if def <= 0 {
		def = DefaultLimit
	}
	maxLimit := d.MaxLimit
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}

	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		limit = def
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// keep (page-1)*limit within int
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return Page{Number: page, Limit: limit}
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Pagination is the metadata returned alongside a listing.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewPagination derives page metadata from a total row count.
func NewPagination(total int, p Page) Pagination {
	pages := 0
	if total > 0 && p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Pagination{
		Total: total,
		Page:  p.Number,
		Limit: p.Limit,
		Pages: pages,
	}
}

// ListResult is the envelope returned by a filtered listing.
type ListResult struct {
	Data       []Book     `json:"data"`
	Pagination Pagination `json:"pagination"`
}
