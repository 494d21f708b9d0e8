package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"asre_hazir/internal/domain"
	"asre_hazir/internal/service/mocks"
)

type SavedNewsServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	saved    *mocks.MockSavedNewsStore
	articles *mocks.MockArticleStore

	service *SavedNewsService
}

func (s *SavedNewsServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.saved = mocks.NewMockSavedNewsStore(s.ctrl)
	s.articles = mocks.NewMockArticleStore(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.service = NewSavedNewsService(s.saved, s.articles, logger)
}

func (s *SavedNewsServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSavedNewsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SavedNewsServiceTestSuite))
}

func (s *SavedNewsServiceTestSuite) TestSave_FirstTime() {
	ctx := context.Background()
	article := &domain.Article{ID: "n1", Title: "Budget 2026", ImageURL: "img", Category: "National News"}

	s.articles.EXPECT().GetByID(ctx, "n1").Return(article, nil)
	s.saved.EXPECT().Exists(ctx, "u1", "n1").Return(false, nil)
	s.saved.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, item *domain.SavedNewsItem) (*domain.SavedNewsItem, error) {
			s.Equal("u1", item.UserID)
			s.Equal("n1", item.NewsID)
			s.Equal("Budget 2026", item.Title)
			s.Equal("National News", item.Category)
			saved := *item
			saved.ID = "s1"
			return &saved, nil
		},
	)

	item, err := s.service.Save(ctx, "u1", "n1")
	s.NoError(err)
	s.Equal("s1", item.ID)
}

func (s *SavedNewsServiceTestSuite) TestSave_AlreadySaved() {
	ctx := context.Background()
	article := &domain.Article{ID: "n1", Title: "Budget 2026"}

	s.articles.EXPECT().GetByID(ctx, "n1").Return(article, nil)
	s.saved.EXPECT().Exists(ctx, "u1", "n1").Return(true, nil)

	_, err := s.service.Save(ctx, "u1", "n1")
	s.ErrorIs(err, domain.ErrAlreadySaved)
}

func (s *SavedNewsServiceTestSuite) TestSave_RaceLosingInsertMapsToAlreadySaved() {
	ctx := context.Background()
	article := &domain.Article{ID: "n1", Title: "Budget 2026"}

	s.articles.EXPECT().GetByID(ctx, "n1").Return(article, nil)
	s.saved.EXPECT().Exists(ctx, "u1", "n1").Return(false, nil)
	// The unique index catches the check-then-insert race.
	s.saved.EXPECT().Insert(ctx, gomock.Any()).Return(nil, domain.ErrAlreadySaved)

	_, err := s.service.Save(ctx, "u1", "n1")
	s.ErrorIs(err, domain.ErrAlreadySaved)
}

func (s *SavedNewsServiceTestSuite) TestSave_MissingArticle() {
	ctx := context.Background()
	s.articles.EXPECT().GetByID(ctx, "ghost").Return(nil, domain.ErrNotFound)

	_, err := s.service.Save(ctx, "u1", "ghost")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *SavedNewsServiceTestSuite) TestSave_DefaultsCategory() {
	ctx := context.Background()
	article := &domain.Article{ID: "n1", Title: "Untagged"}

	s.articles.EXPECT().GetByID(ctx, "n1").Return(article, nil)
	s.saved.EXPECT().Exists(ctx, "u1", "n1").Return(false, nil)
	s.saved.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, item *domain.SavedNewsItem) (*domain.SavedNewsItem, error) {
			s.Equal("general", item.Category)
			return item, nil
		},
	)

	_, err := s.service.Save(ctx, "u1", "n1")
	s.NoError(err)
}

func (s *SavedNewsServiceTestSuite) TestUnsave_DeletesAllMatches() {
	ctx := context.Background()
	s.saved.EXPECT().DeleteMatching(ctx, "u1", "n1").Return(int64(2), nil)

	s.NoError(s.service.Unsave(ctx, "u1", "n1"))
}

func (s *SavedNewsServiceTestSuite) TestUnsave_NotFound() {
	ctx := context.Background()
	s.saved.EXPECT().DeleteMatching(ctx, "u1", "n1").Return(int64(0), nil)

	s.ErrorIs(s.service.Unsave(ctx, "u1", "n1"), domain.ErrNotFound)
}

func (s *SavedNewsServiceTestSuite) TestIsSaved() {
	ctx := context.Background()
	s.saved.EXPECT().Exists(ctx, "u1", "n1").Return(true, nil)

	saved, err := s.service.IsSaved(ctx, "u1", "n1")
	s.NoError(err)
	s.True(saved)
}

func (s *SavedNewsServiceTestSuite) TestList() {
	ctx := context.Background()
	items := []domain.SavedNewsItem{{ID: "s2"}, {ID: "s1"}}
	s.saved.EXPECT().ListByUser(ctx, "u1").Return(items, nil)

	got, err := s.service.List(ctx, "u1")
	s.NoError(err)
	s.Equal(items, got)
}
