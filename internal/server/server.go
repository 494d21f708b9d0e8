// Package server exposes the portal over HTTP: public feeds, search,
// the live websocket feed, bookmarks and the admin surface.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"asre_hazir/internal/config"
	"asre_hazir/internal/feed"
	"asre_hazir/internal/service"
)

// sectionCategories maps each section path to the category value its
// feed filters on. Order here is presentation only; route precedence
// for article links lives in feed.CategoryPath.
var sectionCategories = map[string]string{
	"world":                "World News",
	"national":             "National News",
	"deccan":               "Deccan News",
	"articles-essays":      "Articles & Essays",
	"sports-entertainment": "Sports & Entertainment",
	"crime-accidents":      "Crime & Accidents",
	"photos":               "Photos",
	"videos":               "Videos",
}

var staticPages = map[string]string{
	"contact":        "Contact",
	"about-us":       "About Us",
	"guest-columns":  "Guest Columns",
	"privacy-policy": "Privacy Policy",
	"terms-of-use":   "Terms of Use",
}

type Server struct {
	articles service.ArticleStore
	hub      *feed.Hub
	auth     *service.AuthService
	news     *service.NewsService
	saved    *service.SavedNewsService
	ads      *service.AdsService
	drafts   *service.DraftService

	feedCfg config.FeedConfig
	limits  feed.Limits
	logger  *slog.Logger
	router  chi.Router
}

func New(
	articles service.ArticleStore,
	hub *feed.Hub,
	auth *service.AuthService,
	news *service.NewsService,
	saved *service.SavedNewsService,
	ads *service.AdsService,
	drafts *service.DraftService,
	feedCfg config.FeedConfig,
	logger *slog.Logger,
) *Server {
	s := &Server{
		articles: articles,
		hub:      hub,
		auth:     auth,
		news:     news,
		saved:    saved,
		ads:      ads,
		drafts:   drafts,
		feedCfg:  feedCfg,
		limits:   feed.Limits{Default: feedCfg.DefaultLimit, Max: feedCfg.MaxLimit},
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.withSession)

	r.Get("/", s.handleHomeFeed)
	for path := range sectionCategories {
		r.Get("/"+path, s.handleSectionFeed(path))
	}
	for path := range staticPages {
		r.Get("/"+path, s.handleStaticPage(path))
	}

	r.Get("/news/{id}", s.handleArticleDetail)
	r.Get("/search", s.handleSearch)
	r.Get("/ws/feed", s.handleFeedSocket)
	r.Get("/advertisements", s.handleListAds)

	r.Route("/saved-news", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleListSaved)
		r.Post("/", s.handleSaveNews)
		r.Delete("/{newsID}", s.handleUnsaveNews)
		r.Get("/{newsID}/status", s.handleSavedStatus)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireSession, s.requireAdmin)
		r.Get("/news", s.handleManageListing)
		r.Post("/news", s.handlePublishNews)
		r.Put("/news/{id}", s.handleUpdateNews)
		r.Delete("/news/{id}", s.handleDeleteNews)

		r.Get("/ads", s.handleAdminListAds)
		r.Post("/ads", s.handleCreateAd)
		r.Put("/ads/{id}", s.handleUpdateAd)
		r.Delete("/ads/{id}", s.handleDeleteAd)

		r.Get("/draft", s.handleGetDraft)
		r.Put("/draft", s.handleTouchDraft)
		r.Delete("/draft", s.handleClearDraft)
	})

	// Unknown paths land on the home feed.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
