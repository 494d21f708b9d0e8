package feed

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"asre_hazir/internal/domain"
)

// ExcerptLen is the number of characters of stripped article text
// shown on listing cards.
const ExcerptLen = 150

// ArticleView is the display-ready shape of an article for listing
// surfaces. Projection never mutates the source record and never
// fails; missing optional fields fall back to defaults.
type ArticleView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	ImageURL    string    `json:"imageUrl"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory,omitempty"`
	Path        string    `json:"path"`
	Author      string    `json:"author"`
	TitleFont   string    `json:"titleFont,omitempty"`
	ContentFont string    `json:"contentFont,omitempty"`
	Time        string    `json:"time"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Project maps a raw article into its listing view. now anchors the
// relative timestamp so projection stays deterministic.
func Project(a domain.Article, now time.Time) ArticleView {
	author := a.Author
	if author == "" {
		author = domain.DefaultAuthor
	}

	return ArticleView{
		ID:          a.ID,
		Title:       a.Title,
		Excerpt:     Excerpt(a.Content, ExcerptLen),
		ImageURL:    a.ImageURL,
		VideoURL:    a.VideoURL,
		Category:    a.Category,
		SubCategory: a.SubCategory,
		Path:        CategoryPath(a.Category),
		Author:      author,
		TitleFont:   a.TitleFont,
		ContentFont: a.ContentFont,
		Time:        RelativeTime(now, a.CreatedAt),
		CreatedAt:   a.CreatedAt,
	}
}

// ProjectAll projects a snapshot of articles with a single time anchor.
func ProjectAll(articles []domain.Article, now time.Time) []ArticleView {
	views := make([]ArticleView, len(articles))
	for i, a := range articles {
		views[i] = Project(a, now)
	}
	return views
}

// RelativeTime buckets an article timestamp the way the portal renders
// it: "Just now" under a minute, then minutes, hours and days, and a
// plain date once the article is a week old.
func RelativeTime(now, t time.Time) string {
	if t.IsZero() {
		return "Just now"
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return strconv.Itoa(int(diff/time.Minute)) + "m ago"
	case diff < 24*time.Hour:
		return strconv.Itoa(int(diff/time.Hour)) + "h ago"
	case diff < 7*24*time.Hour:
		return strconv.Itoa(int(diff/(24*time.Hour))) + "d ago"
	default:
		return t.Format("1/2/2006")
	}
}

// Excerpt strips markup from sanitized HTML, collapses whitespace and
// truncates to maxLen characters with a trailing ellipsis.
func Excerpt(content string, maxLen int) string {
	text := stripMarkup(content)
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return strings.TrimRight(string(runes[:maxLen]), " ") + "…"
}

func stripMarkup(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// sectionRule maps category keywords to a canonical section path.
// Order matters: the first rule whose keyword matches wins, so a
// label like "Hyderabad Crime" lands in deccan, not crime.
type sectionRule struct {
	path     string
	keywords []string
}

var sectionRules = []sectionRule{
	{"/world", []string{"world", "international", "دنیا"}},
	{"/national", []string{"national", "india", "قومی"}},
	{"/deccan", []string{"deccan", "hyderabad", "telangana", "دکن"}},
	{"/articles-essays", []string{"essays", "article", "business", "مضامین"}},
	{"/sports-entertainment", []string{"sports", "entertainment", "کھیل"}},
	{"/crime-accidents", []string{"crime", "accident", "جرم"}},
}

// CategoryPath resolves a stored category value to the portal section
// that lists it. Stored values are free text, so matching is by
// case-insensitive keyword, not equality; unknown categories land on
// the home path.
func CategoryPath(category string) string {
	cat := strings.ToLower(category)
	for _, rule := range sectionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(cat, kw) {
				return rule.path
			}
		}
	}
	return "/"
}

// SameSection reports whether two category labels resolve to the same
// portal section. This is where synonym sets like National/India and
// the localized labels are honored; the store's filter stays
// exact-match.
func SameSection(a, b string) bool {
	pa, pb := CategoryPath(a), CategoryPath(b)
	return pa != "/" && pa == pb
}
