package book

import (
	"math"
	"strconv"
	"strings"
)

// FilterParams holds the raw, optional listing filters as they arrive on the query string.
// An absent parameter is the empty string.
type FilterParams struct {
	Genre     string
	MinRating string
	Search    string
}

// Predicate is a single WHERE condition and the values bound to its placeholders.
// Fragments use '?' placeholders; data sources rebind them to their own style.
type Predicate struct {
	Fragment string
	Args     []any
}

// FilterSet is an ordered list of predicates joined with AND.
type FilterSet []Predicate

// CompileFilters turns raw listing parameters into a FilterSet.
// Predicates are emitted in a fixed order: genre, rating, search.
func CompileFilters(p FilterParams) FilterSet {
	var fs FilterSet

	if p.Genre != "" {
		fs = append(fs, genreEquals(p.Genre))
	}

	// An unparseable rating is ignored, not rejected.
	if rating, ok := parseRating(p.MinRating); ok {
		fs = append(fs, Predicate{Fragment: "rating >= ?", Args: []any{rating}})
	}

	if strings.TrimSpace(p.Search) != "" {
		pattern := containsPattern(p.Search)
		fs = append(fs, Predicate{
			Fragment: "(LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?))",
			Args:     []any{pattern, pattern},
		})
	}

	return fs
}

// Where renders the set as a WHERE clause (with a leading space) and the flattened
// arguments in predicate order. An empty set renders as "".
func (fs FilterSet) Where() (string, []any) {
	if len(fs) == 0 {
		return "", nil
	}

	fragments := make([]string, 0, len(fs))
	args := make([]any, 0, len(fs))
	for _, p := range fs {
		fragments = append(fragments, p.Fragment)
		args = append(args, p.Args...)
	}
	return " WHERE " + strings.Join(fragments, " AND "), args
}

func genreEquals(genre string) Predicate {
	return Predicate{Fragment: "genre = ?", Args: []any{genre}}
}

func containsPattern(term string) string {
	return "%" + term + "%"
}

func parseRating(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
