package service

import (
	"context"
	"fmt"
	"log/slog"

	"asre_hazir/internal/domain"
)

// SavedNewsService manages per-user article bookmarks. Presence is
// keyed by (user, article); the store's unique index backs the
// duplicate check, so a concurrent double-save still yields exactly
// one record.
type SavedNewsService struct {
	saved    SavedNewsStore
	articles ArticleStore
	logger   *slog.Logger
}

func NewSavedNewsService(saved SavedNewsStore, articles ArticleStore, logger *slog.Logger) *SavedNewsService {
	return &SavedNewsService{
		saved:    saved,
		articles: articles,
		logger:   logger,
	}
}

// Save bookmarks an article for a user. Returns ErrAlreadySaved when a
// bookmark for the pair exists and ErrNotFound when the article does
// not.
func (s *SavedNewsService) Save(ctx context.Context, userID, newsID string) (*domain.SavedNewsItem, error) {
	article, err := s.articles.GetByID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("load article: %w", err)
	}

	exists, err := s.saved.Exists(ctx, userID, newsID)
	if err != nil {
		return nil, fmt.Errorf("check saved: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadySaved
	}

	category := article.Category
	if category == "" {
		category = "general"
	}

	item := &domain.SavedNewsItem{
		UserID:   userID,
		NewsID:   newsID,
		Title:    article.Title,
		Image:    article.ImageURL,
		Category: category,
	}

	created, err := s.saved.Insert(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}

	s.logger.Debug("article saved", "user_id", userID, "news_id", newsID)

	return created, nil
}

// Unsave removes a user's bookmark. All matching records are deleted,
// tolerating the duplicate produced by a historic save race. Returns
// ErrNotFound when no bookmark exists.
func (s *SavedNewsService) Unsave(ctx context.Context, userID, newsID string) error {
	n, err := s.saved.DeleteMatching(ctx, userID, newsID)
	if err != nil {
		return fmt.Errorf("unsave article: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	s.logger.Debug("article unsaved", "user_id", userID, "news_id", newsID, "deleted", n)

	return nil
}

// List returns a user's bookmarks, most recently saved first.
func (s *SavedNewsService) List(ctx context.Context, userID string) ([]domain.SavedNewsItem, error) {
	items, err := s.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved: %w", err)
	}
	return items, nil
}

// IsSaved reports whether the user has bookmarked the article.
func (s *SavedNewsService) IsSaved(ctx context.Context, userID, newsID string) (bool, error) {
	return s.saved.Exists(ctx, userID, newsID)
}
