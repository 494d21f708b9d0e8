package feed

import (
	"strings"

	"asre_hazir/internal/domain"
)

// Search filters pre-fetched articles by a case-insensitive substring
// match across title, content and category (OR, not AND). It runs over
// a bounded window of recent articles, so results are not exhaustive
// over the archive; that is a documented limitation of the portal's
// search, not a bug.
func Search(articles []domain.Article, query string) []domain.Article {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matched []domain.Article
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Title), q) ||
			strings.Contains(strings.ToLower(a.Content), q) ||
			strings.Contains(strings.ToLower(a.Category), q) {
			matched = append(matched, a)
		}
	}
	return matched
}
