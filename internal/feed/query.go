package feed

import (
	"fmt"

	"asre_hazir/internal/domain"
)

// Fallback limits when the deployment does not configure its own.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Limits bounds what a single feed query may ask for. Default fills in
// when a caller asks for nothing, Max caps what it can ask for. The
// zero value falls back to the package constants, so callers without a
// config in hand still get sane bounds.
type Limits struct {
	Default int
	Max     int
}

// Window builds limits that admit exactly n rows. Used for
// server-chosen windows, which are not subject to the client-facing
// cap.
func Window(n int) Limits {
	return Limits{Default: n, Max: n}
}

func (l Limits) normalize(limit int) int {
	def, max := l.Default, l.Max
	if def <= 0 {
		def = DefaultLimit
	}
	if max <= 0 {
		max = MaxLimit
	}

	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// Query describes an ordered, limited, optionally-filtered read of the
// news collection. Filtering is exact-match only; synonym handling is
// a projection concern, never a query concern.
type Query struct {
	Category    string
	SubCategory string
	Limit       int
}

// NewQuery builds a feed query bounded by l. An empty category or the
// "All" sentinel means no category filter. A sub-category is
// conjunctive with its category and meaningless without one.
func (l Limits) NewQuery(category, subCategory string, limit int) (Query, error) {
	if category == "" || category == domain.CategoryAll {
		if subCategory != "" {
			return Query{}, fmt.Errorf("%w: sub-category %q without category", domain.ErrInvalidQuery, subCategory)
		}
		category = ""
	}

	return Query{
		Category:    category,
		SubCategory: subCategory,
		Limit:       l.normalize(limit),
	}, nil
}

// NewQuery builds a feed query with the fallback limits.
func NewQuery(category, subCategory string, limit int) (Query, error) {
	return Limits{}.NewQuery(category, subCategory, limit)
}

// Filtered reports whether the query restricts by category.
func (q Query) Filtered() bool {
	return q.Category != ""
}
