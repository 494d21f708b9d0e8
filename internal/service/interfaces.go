package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"asre_hazir/internal/domain"
	"asre_hazir/internal/feed"
)

type ArticleStore interface {
	Insert(ctx context.Context, article *domain.Article) (*domain.Article, error)
	Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	ListFeed(ctx context.Context, q feed.Query) ([]domain.Article, error)
	ListRelated(ctx context.Context, category, excludeID string, limit int) ([]domain.Article, error)
}

type SavedNewsStore interface {
	Insert(ctx context.Context, item *domain.SavedNewsItem) (*domain.SavedNewsItem, error)
	DeleteMatching(ctx context.Context, userID, newsID string) (int64, error)
	DeleteByNews(ctx context.Context, newsID string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]domain.SavedNewsItem, error)
	Exists(ctx context.Context, userID, newsID string) (bool, error)
}

type UserStore interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type AdStore interface {
	Insert(ctx context.Context, ad *domain.Advertisement) (*domain.Advertisement, error)
	Update(ctx context.Context, ad *domain.Advertisement) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Advertisement, error)
	List(ctx context.Context) ([]domain.Advertisement, error)
	ListByPlacement(ctx context.Context, placement string) ([]domain.Advertisement, error)
}

type DraftStore interface {
	Upsert(ctx context.Context, authorID string, draft *domain.Draft) error
	Get(ctx context.Context, authorID string) (*domain.Draft, error)
	Delete(ctx context.Context, authorID string) error
}

type MediaStore interface {
	Upload(ctx context.Context, upload domain.MediaUpload) (string, error)
	Delete(ctx context.Context, url string) error
}

type ChangePublisher interface {
	PublishChange(ctx context.Context, action string, article *domain.Article) error
	Close() error
}

type FeedInvalidator interface {
	Invalidate(ctx context.Context)
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
