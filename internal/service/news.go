package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"asre_hazir/internal/domain"
)

// NewsService is the admin write path for articles: publish, update
// and delete, including the associated media objects. Every successful
// write emits a change event and invalidates the live feeds.
type NewsService struct {
	articles ArticleStore
	saved    SavedNewsStore
	media    MediaStore
	events   ChangePublisher
	feeds    FeedInvalidator
	tx       TransactionManager
	logger   *slog.Logger
}

func NewNewsService(
	articles ArticleStore,
	saved SavedNewsStore,
	media MediaStore,
	events ChangePublisher,
	feeds FeedInvalidator,
	tx TransactionManager,
	logger *slog.Logger,
) *NewsService {
	return &NewsService{
		articles: articles,
		saved:    saved,
		media:    media,
		events:   events,
		feeds:    feeds,
		tx:       tx,
		logger:   logger,
	}
}

// Publish uploads the media asset and writes the article record. The
// asset is mandatory: a failed upload fails the whole publish so no
// record exists without its image. ID and CreatedAt are assigned by
// the store.
func (s *NewsService) Publish(ctx context.Context, session domain.Session, draft domain.Draft, media *domain.MediaUpload) (*domain.Article, error) {
	if !session.IsAdmin {
		return nil, domain.ErrForbidden
	}
	if media == nil {
		return nil, domain.ErrImageRequired
	}

	imageURL, err := s.media.Upload(ctx, *media)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	author := session.Name
	if author == "" {
		author = domain.DefaultAuthor
	}

	article := &domain.Article{
		Title:       draft.Title,
		Content:     draft.Content,
		Section:     draft.Section,
		Category:    draft.Category,
		SubCategory: draft.SubCategory,
		TitleFont:   draft.TitleFont,
		ContentFont: draft.ContentFont,
		VideoURL:    draft.VideoURL,
		ImageURL:    imageURL,
		Author:      author,
		AuthorID:    session.UserID,
		Status:      domain.StatusPublished,
	}

	created, err := s.articles.Insert(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	s.notify(ctx, domain.ChangeCreate, created)

	s.logger.Info("article published",
		"id", created.ID,
		"category", created.Category,
		"author_id", created.AuthorID,
	)

	return created, nil
}

// UpdateResult reports a completed edit. ImageFailed is set when a new
// media asset was supplied but could not be stored; the remaining
// fields still committed.
type UpdateResult struct {
	Article     *domain.Article
	ImageFailed bool
}

// Update applies a patch to an existing article. A new media asset is
// uploaded first and only replaces the image reference on success; on
// upload failure the other fields commit anyway.
func (s *NewsService) Update(ctx context.Context, session domain.Session, id string, patch domain.ArticlePatch, media *domain.MediaUpload) (*UpdateResult, error) {
	if !session.IsAdmin {
		return nil, domain.ErrForbidden
	}

	result := &UpdateResult{}

	if media != nil {
		imageURL, err := s.media.Upload(ctx, *media)
		if err != nil {
			result.ImageFailed = true
			s.logger.Error("image upload failed, updating remaining fields",
				"id", id,
				"error", err,
			)
		} else {
			patch.ImageURL = &imageURL
		}
	}

	updated, err := s.articles.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	result.Article = updated

	s.notify(ctx, domain.ChangeUpdate, updated)

	return result, nil
}

// Delete removes the article record and its bookmarks, then makes a
// best-effort attempt to remove the stored media object. The delete is
// successful once the record is gone; media cleanup failures are only
// logged.
func (s *NewsService) Delete(ctx context.Context, session domain.Session, id string) error {
	if !session.IsAdmin {
		return domain.ErrForbidden
	}

	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load article: %w", err)
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.articles.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete article: %w", err)
		}
		if _, err := s.saved.DeleteByNews(txCtx, id); err != nil {
			return fmt.Errorf("delete bookmarks: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if article.ImageURL != "" && !strings.Contains(article.ImageURL, "placeholder") {
		if err := s.media.Delete(ctx, article.ImageURL); err != nil {
			s.logger.Error("media cleanup failed",
				"id", id,
				"image_url", article.ImageURL,
				"error", err,
			)
		}
	}

	s.notify(ctx, domain.ChangeDelete, article)

	s.logger.Info("article deleted", "id", id, "category", article.Category)

	return nil
}

// notify publishes the change event and refreshes live feeds. Event
// delivery is best-effort; local subscribers are invalidated directly
// so a single node works without the broker round-trip.
func (s *NewsService) notify(ctx context.Context, action string, article *domain.Article) {
	if s.events != nil {
		if err := s.events.PublishChange(ctx, action, article); err != nil {
			s.logger.Error("publish change event failed",
				"action", action,
				"id", article.ID,
				"error", err,
			)
		}
	}
	if s.feeds != nil {
		s.feeds.Invalidate(ctx)
	}
}
