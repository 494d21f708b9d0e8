package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"asre_hazir/internal/domain"
	"asre_hazir/internal/feed"
)

const relatedLimit = 6

func (s *Server) handleHomeFeed(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, r, domain.CategoryAll, "")
}

func (s *Server) handleSectionFeed(path string) http.HandlerFunc {
	category := sectionCategories[path]
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveFeed(w, r, category, r.URL.Query().Get("subCategory"))
	}
}

func (s *Server) serveFeed(w http.ResponseWriter, r *http.Request, category, subCategory string) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	q, err := s.limits.NewQuery(category, subCategory, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	articles, err := s.articles.ListFeed(r.Context(), q)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"articles": feed.ProjectAll(articles, time.Now()),
	})
}

func (s *Server) handleArticleDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	article, err := s.articles.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	related, err := s.articles.ListRelated(r.Context(), article.Category, article.ID, relatedLimit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"article": article,
		"related": feed.ProjectAll(related, time.Now()),
	})
}

// handleSearch filters a bounded window of the newest articles. It is a
// recency-scoped match, not a full-text index over the archive.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")

	// The window is server-chosen, so it is not subject to the
	// client-facing limit cap.
	q, err := feed.Window(s.feedCfg.SearchWindow).NewQuery(domain.CategoryAll, "", s.feedCfg.SearchWindow)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	articles, err := s.articles.ListFeed(r.Context(), q)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	matches := feed.Search(articles, text)

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   text,
		"results": feed.ProjectAll(matches, time.Now()),
	})
}

func (s *Server) handleListAds(w http.ResponseWriter, r *http.Request) {
	placement := r.URL.Query().Get("placement")

	var (
		ads []domain.Advertisement
		err error
	)
	if placement != "" {
		ads, err = s.ads.ListByPlacement(r.Context(), placement)
	} else {
		ads, err = s.ads.List(r.Context())
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{"advertisements": ads})
}

func (s *Server) handleStaticPage(path string) http.HandlerFunc {
	title := staticPages[path]
	return func(w http.ResponseWriter, r *http.Request) {
		s.respondJSON(w, http.StatusOK, map[string]string{
			"page":  path,
			"title": title,
		})
	}
}
