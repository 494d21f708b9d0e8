package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"asre_hazir/internal/domain"
	"asre_hazir/internal/service/mocks"
)

type NewsServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	articles *mocks.MockArticleStore
	saved    *mocks.MockSavedNewsStore
	media    *mocks.MockMediaStore
	events   *mocks.MockChangePublisher
	feeds    *mocks.MockFeedInvalidator
	tx       *mocks.MockTransactionManager

	service *NewsService
	admin   domain.Session
	reader  domain.Session
}

func (s *NewsServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.articles = mocks.NewMockArticleStore(s.ctrl)
	s.saved = mocks.NewMockSavedNewsStore(s.ctrl)
	s.media = mocks.NewMockMediaStore(s.ctrl)
	s.events = mocks.NewMockChangePublisher(s.ctrl)
	s.feeds = mocks.NewMockFeedInvalidator(s.ctrl)
	s.tx = mocks.NewMockTransactionManager(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewNewsService(s.articles, s.saved, s.media, s.events, s.feeds, s.tx, logger)

	s.admin = domain.Session{UserID: "u-admin", Name: "Desk Editor", Role: domain.RoleAdmin, IsAdmin: true}
	s.reader = domain.Session{UserID: "u-reader", Role: domain.RoleReader}
}

func (s *NewsServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestNewsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NewsServiceTestSuite))
}

func (s *NewsServiceTestSuite) TestPublish_Success() {
	ctx := context.Background()
	draft := domain.Draft{
		Title:       "Monsoon Arrives",
		Content:     "<p>Rain at last</p>",
		Category:    "National News",
		SubCategory: "Top Stories",
		TitleFont:   "font-playfair",
		ContentFont: "font-merriweather",
	}
	upload := &domain.MediaUpload{Filename: "rain.jpg", ContentType: "image/jpeg", Data: strings.NewReader("jpg")}

	s.media.EXPECT().Upload(ctx, *upload).Return("https://media.example/news/rain.jpg", nil)

	s.articles.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, a *domain.Article) (*domain.Article, error) {
			s.Equal("Monsoon Arrives", a.Title)
			s.Equal("https://media.example/news/rain.jpg", a.ImageURL)
			s.Equal("Desk Editor", a.Author)
			s.Equal("u-admin", a.AuthorID)
			s.Equal(domain.StatusPublished, a.Status)
			created := *a
			created.ID = "n1"
			return &created, nil
		},
	)

	s.events.EXPECT().PublishChange(ctx, domain.ChangeCreate, gomock.Any()).Return(nil)
	s.feeds.EXPECT().Invalidate(ctx)

	created, err := s.service.Publish(ctx, s.admin, draft, upload)
	s.NoError(err)
	s.Equal("n1", created.ID)
}

func (s *NewsServiceTestSuite) TestPublish_WithoutImageWritesNothing() {
	ctx := context.Background()

	_, err := s.service.Publish(ctx, s.admin, domain.Draft{Title: "No Image"}, nil)
	s.ErrorIs(err, domain.ErrImageRequired)
}

func (s *NewsServiceTestSuite) TestPublish_UploadFailureWritesNothing() {
	ctx := context.Background()
	upload := &domain.MediaUpload{Filename: "x.jpg", Data: strings.NewReader("jpg")}

	s.media.EXPECT().Upload(ctx, *upload).Return("", errors.New("storage down"))

	_, err := s.service.Publish(ctx, s.admin, domain.Draft{Title: "Broken"}, upload)
	s.Error(err)
}

func (s *NewsServiceTestSuite) TestPublish_NonAdminForbidden() {
	_, err := s.service.Publish(context.Background(), s.reader, domain.Draft{}, nil)
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *NewsServiceTestSuite) TestPublish_DefaultsAuthor() {
	ctx := context.Background()
	anon := domain.Session{UserID: "u2", Role: domain.RoleAdmin, IsAdmin: true}
	upload := &domain.MediaUpload{Filename: "x.jpg", Data: strings.NewReader("jpg")}

	s.media.EXPECT().Upload(ctx, *upload).Return("https://media.example/x.jpg", nil)
	s.articles.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, a *domain.Article) (*domain.Article, error) {
			s.Equal(domain.DefaultAuthor, a.Author)
			return a, nil
		},
	)
	s.events.EXPECT().PublishChange(ctx, domain.ChangeCreate, gomock.Any()).Return(nil)
	s.feeds.EXPECT().Invalidate(ctx)

	_, err := s.service.Publish(ctx, anon, domain.Draft{Title: "t"}, upload)
	s.NoError(err)
}

func (s *NewsServiceTestSuite) TestPublish_EventFailureIsNotFatal() {
	ctx := context.Background()
	upload := &domain.MediaUpload{Filename: "x.jpg", Data: strings.NewReader("jpg")}

	s.media.EXPECT().Upload(ctx, *upload).Return("https://media.example/x.jpg", nil)
	s.articles.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, a *domain.Article) (*domain.Article, error) { return a, nil },
	)
	s.events.EXPECT().PublishChange(ctx, domain.ChangeCreate, gomock.Any()).Return(errors.New("broker down"))
	s.feeds.EXPECT().Invalidate(ctx)

	_, err := s.service.Publish(ctx, s.admin, domain.Draft{Title: "t"}, upload)
	s.NoError(err)
}

func (s *NewsServiceTestSuite) TestUpdate_WithNewImage() {
	ctx := context.Background()
	title := "New Title"
	upload := &domain.MediaUpload{Filename: "new.jpg", Data: strings.NewReader("jpg")}

	s.media.EXPECT().Upload(ctx, *upload).Return("https://media.example/new.jpg", nil)
	s.articles.EXPECT().Update(ctx, "n1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, patch domain.ArticlePatch) (*domain.Article, error) {
			s.Require().NotNil(patch.ImageURL)
			s.Equal("https://media.example/new.jpg", *patch.ImageURL)
			return &domain.Article{ID: "n1", Title: title}, nil
		},
	)
	s.events.EXPECT().PublishChange(ctx, domain.ChangeUpdate, gomock.Any()).Return(nil)
	s.feeds.EXPECT().Invalidate(ctx)

	res, err := s.service.Update(ctx, s.admin, "n1", domain.ArticlePatch{Title: &title}, upload)
	s.NoError(err)
	s.False(res.ImageFailed)
	s.Equal("n1", res.Article.ID)
}

func (s *NewsServiceTestSuite) TestUpdate_ImageFailureStillCommitsFields() {
	ctx := context.Background()
	title := "New Title"
	upload := &domain.MediaUpload{Filename: "new.jpg", Data: strings.NewReader("jpg")}

	s.media.EXPECT().Upload(ctx, *upload).Return("", errors.New("storage down"))
	s.articles.EXPECT().Update(ctx, "n1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, patch domain.ArticlePatch) (*domain.Article, error) {
			s.Nil(patch.ImageURL)
			s.Require().NotNil(patch.Title)
			s.Equal("New Title", *patch.Title)
			return &domain.Article{ID: "n1", Title: *patch.Title}, nil
		},
	)
	s.events.EXPECT().PublishChange(ctx, domain.ChangeUpdate, gomock.Any()).Return(nil)
	s.feeds.EXPECT().Invalidate(ctx)

	res, err := s.service.Update(ctx, s.admin, "n1", domain.ArticlePatch{Title: &title}, upload)
	s.NoError(err)
	s.True(res.ImageFailed)
}

func (s *NewsServiceTestSuite) TestUpdate_NonAdminForbidden() {
	_, err := s.service.Update(context.Background(), s.reader, "n1", domain.ArticlePatch{}, nil)
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *NewsServiceTestSuite) TestDelete_RemovesRecordAndMedia() {
	ctx := context.Background()
	article := &domain.Article{ID: "n1", Category: "World News", ImageURL: "https://media.example/news/img.jpg"}

	s.articles.EXPECT().GetByID(ctx, "n1").Return(article, nil)
	s.tx.EXPECT().WithTransaction(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
	s.articles.EXPECT().Delete(ctx, "n1").Return(nil)
	s.saved.EXPECT().DeleteByNews(ctx, "n1").Return(int64(2), nil)
	s.media.EXPECT().Delete(ctx, article.ImageURL).Return(nil)
	s.events.EXPECT().PublishChange(ctx, domain.ChangeDelete, article).Return(nil)
	s.feeds.EXPECT().Invalidate(ctx)

	s.NoError(s.service.Delete(ctx, s.admin, "n1"))
}

func (s *NewsServiceTestSuite) TestDelete_MediaFailureTolerated() {
	ctx := context.Background()
	article := &domain.Article{ID: "n1", ImageURL: "https://media.example/news/img.jpg"}

	s.articles.EXPECT().GetByID(ctx, "n1").Return(article, nil)
	s.tx.EXPECT().WithTransaction(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
	s.articles.EXPECT().Delete(ctx, "n1").Return(nil)
	s.saved.EXPECT().DeleteByNews(ctx, "n1").Return(int64(0), nil)
	s.media.EXPECT().Delete(ctx, article.ImageURL).Return(errors.New("object gone"))
	s.events.EXPECT().PublishChange(ctx, domain.ChangeDelete, article).Return(nil)
	s.feeds.EXPECT().Invalidate(ctx)

	s.NoError(s.service.Delete(ctx, s.admin, "n1"))
}

func (s *NewsServiceTestSuite) TestDelete_PlaceholderImageSkipsMedia() {
	ctx := context.Background()
	article := &domain.Article{ID: "n1", ImageURL: "https://cdn.example/placeholder.jpg"}

	s.articles.EXPECT().GetByID(ctx, "n1").Return(article, nil)
	s.tx.EXPECT().WithTransaction(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
	s.articles.EXPECT().Delete(ctx, "n1").Return(nil)
	s.saved.EXPECT().DeleteByNews(ctx, "n1").Return(int64(0), nil)
	s.events.EXPECT().PublishChange(ctx, domain.ChangeDelete, article).Return(nil)
	s.feeds.EXPECT().Invalidate(ctx)

	s.NoError(s.service.Delete(ctx, s.admin, "n1"))
}

func (s *NewsServiceTestSuite) TestDelete_MissingArticle() {
	ctx := context.Background()
	s.articles.EXPECT().GetByID(ctx, "ghost").Return(nil, domain.ErrNotFound)

	err := s.service.Delete(ctx, s.admin, "ghost")
	s.ErrorIs(err, domain.ErrNotFound)
}
