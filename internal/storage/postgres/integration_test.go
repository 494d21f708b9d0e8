//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"asre_hazir/internal/domain"
	"asre_hazir/internal/feed"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_init.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM saved_news")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM drafts")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM advertisements")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM news")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM users")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) insertArticle(title, category, subCategory string) *domain.Article {
	store := NewArticleStore(s.db)
	created, err := store.Insert(s.ctx, &domain.Article{
		Title:       title,
		Content:     "<p>body</p>",
		Category:    category,
		SubCategory: subCategory,
		Author:      domain.DefaultAuthor,
		AuthorID:    "author-1",
		Status:      domain.StatusPublished,
	})
	s.Require().NoError(err)
	return created
}

func (s *PostgresIntegrationSuite) TestArticleStore_InsertAssignsIDAndCreatedAt() {
	created := s.insertArticle("First", "National News", "")

	s.NotEmpty(created.ID)
	s.False(created.CreatedAt.IsZero())

	got, err := NewArticleStore(s.db).GetByID(s.ctx, created.ID)
	s.NoError(err)
	s.Equal("First", got.Title)
	s.Nil(got.UpdatedAt)
}

func (s *PostgresIntegrationSuite) TestArticleStore_GetByID_NotFound() {
	_, err := NewArticleStore(s.db).GetByID(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestArticleStore_ListFeed_NewestFirst() {
	a := s.insertArticle("Older", "National News", "")
	time.Sleep(10 * time.Millisecond)
	b := s.insertArticle("Newer", "World News", "")

	q, err := feed.NewQuery(domain.CategoryAll, "", 0)
	s.Require().NoError(err)

	articles, err := NewArticleStore(s.db).ListFeed(s.ctx, q)
	s.NoError(err)
	s.Require().Len(articles, 2)
	s.Equal(b.ID, articles[0].ID)
	s.Equal(a.ID, articles[1].ID)
}

func (s *PostgresIntegrationSuite) TestArticleStore_ListFeed_CategoryFilter() {
	s.insertArticle("World", "World News", "")
	s.insertArticle("Cricket", "Sports", "Cricket")
	s.insertArticle("Football", "Sports", "Football")

	q, err := feed.NewQuery("Sports", "Cricket", 0)
	s.Require().NoError(err)

	articles, err := NewArticleStore(s.db).ListFeed(s.ctx, q)
	s.NoError(err)
	s.Require().Len(articles, 1)
	s.Equal("Cricket", articles[0].Title)
}

func (s *PostgresIntegrationSuite) TestArticleStore_ListFeed_Limit() {
	for i := 0; i < 5; i++ {
		s.insertArticle("Item", "National News", "")
	}

	q, err := feed.NewQuery(domain.CategoryAll, "", 3)
	s.Require().NoError(err)

	articles, err := NewArticleStore(s.db).ListFeed(s.ctx, q)
	s.NoError(err)
	s.Len(articles, 3)
}

func (s *PostgresIntegrationSuite) TestArticleStore_Update_PatchesOnlyGivenFields() {
	created := s.insertArticle("Original", "National News", "")
	title := "Edited"

	updated, err := NewArticleStore(s.db).Update(s.ctx, created.ID, domain.ArticlePatch{Title: &title})
	s.NoError(err)
	s.Equal("Edited", updated.Title)
	s.Equal("National News", updated.Category)
	s.Equal(created.CreatedAt.UTC(), updated.CreatedAt.UTC())
	s.NotNil(updated.UpdatedAt)
}

func (s *PostgresIntegrationSuite) TestArticleStore_Update_NotFound() {
	title := "x"
	_, err := NewArticleStore(s.db).Update(s.ctx, "missing", domain.ArticlePatch{Title: &title})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestArticleStore_Delete() {
	created := s.insertArticle("Doomed", "National News", "")
	store := NewArticleStore(s.db)

	s.NoError(store.Delete(s.ctx, created.ID))
	s.ErrorIs(store.Delete(s.ctx, created.ID), domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestArticleStore_ListRelated_ExcludesSelf() {
	a := s.insertArticle("One", "Sports", "")
	s.insertArticle("Two", "Sports", "")
	s.insertArticle("Other", "World News", "")

	related, err := NewArticleStore(s.db).ListRelated(s.ctx, "Sports", a.ID, 10)
	s.NoError(err)
	s.Require().Len(related, 1)
	s.Equal("Two", related[0].Title)
}

func (s *PostgresIntegrationSuite) TestSavedNewsStore_RoundTrip() {
	article := s.insertArticle("Bookmark me", "National News", "")
	store := NewSavedNewsStore(s.db)

	created, err := store.Insert(s.ctx, &domain.SavedNewsItem{
		UserID:   "u1",
		NewsID:   article.ID,
		Title:    article.Title,
		Category: "National News",
	})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)

	exists, err := store.Exists(s.ctx, "u1", article.ID)
	s.NoError(err)
	s.True(exists)

	items, err := store.ListByUser(s.ctx, "u1")
	s.NoError(err)
	s.Require().Len(items, 1)
	s.Equal("Bookmark me", items[0].Title)

	n, err := store.DeleteMatching(s.ctx, "u1", article.ID)
	s.NoError(err)
	s.Equal(int64(1), n)

	exists, err = store.Exists(s.ctx, "u1", article.ID)
	s.NoError(err)
	s.False(exists)
}

func (s *PostgresIntegrationSuite) TestSavedNewsStore_DuplicateMapsToAlreadySaved() {
	article := s.insertArticle("Once only", "National News", "")
	store := NewSavedNewsStore(s.db)

	item := &domain.SavedNewsItem{UserID: "u1", NewsID: article.ID, Title: article.Title, Category: "general"}
	_, err := store.Insert(s.ctx, item)
	s.Require().NoError(err)

	_, err = store.Insert(s.ctx, item)
	s.ErrorIs(err, domain.ErrAlreadySaved)
}

func (s *PostgresIntegrationSuite) TestSavedNewsStore_DeleteByNews() {
	article := s.insertArticle("Shared", "National News", "")
	store := NewSavedNewsStore(s.db)

	for _, userID := range []string{"u1", "u2"} {
		_, err := store.Insert(s.ctx, &domain.SavedNewsItem{UserID: userID, NewsID: article.ID, Category: "general"})
		s.Require().NoError(err)
	}

	n, err := store.DeleteByNews(s.ctx, article.ID)
	s.NoError(err)
	s.Equal(int64(2), n)

	for _, userID := range []string{"u1", "u2"} {
		exists, err := store.Exists(s.ctx, userID, article.ID)
		s.NoError(err)
		s.False(exists)
	}
}

func (s *PostgresIntegrationSuite) TestUserStore_GetProfile() {
	_, err := s.db.ExecContext(s.ctx,
		"INSERT INTO users (user_id, email, role) VALUES ($1, $2, $3)", "u1", "e@x", "admin")
	s.Require().NoError(err)

	profile, err := NewUserStore(s.db).GetProfile(s.ctx, "u1")
	s.NoError(err)
	s.Equal(domain.RoleAdmin, profile.Role)

	_, err = NewUserStore(s.db).GetProfile(s.ctx, "nobody")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestAdStore_CRUD() {
	store := NewAdStore(s.db)

	created, err := store.Insert(s.ctx, &domain.Advertisement{
		Placement: "header",
		ImageURL:  "https://media/ads/a.png",
		Link:      "https://sponsor",
	})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)

	created.Placement = "between_news"
	s.NoError(store.Update(s.ctx, created))

	byPlacement, err := store.ListByPlacement(s.ctx, "between_news")
	s.NoError(err)
	s.Require().Len(byPlacement, 1)
	s.Equal(created.ID, byPlacement[0].ID)

	s.NoError(store.Delete(s.ctx, created.ID))
	s.ErrorIs(store.Delete(s.ctx, created.ID), domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestDraftStore_UpsertKeepsOnePerAuthor() {
	store := NewDraftStore(s.db)

	s.Require().NoError(store.Upsert(s.ctx, "author-1", &domain.Draft{Title: "v1"}))
	s.Require().NoError(store.Upsert(s.ctx, "author-1", &domain.Draft{Title: "v2"}))

	draft, err := store.Get(s.ctx, "author-1")
	s.NoError(err)
	s.Equal("v2", draft.Title)

	var count int
	s.NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM drafts WHERE author_id = $1", "author-1"))
	s.Equal(1, count)

	s.NoError(store.Delete(s.ctx, "author-1"))
	s.ErrorIs(store.Delete(s.ctx, "author-1"), domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestTransactionManager_RollsBackOnError() {
	tm := NewTransactionManager(s.db)
	articles := NewArticleStore(s.db)
	created := s.insertArticle("Survivor", "National News", "")

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := articles.Delete(ctx, created.ID); err != nil {
			return err
		}
		return context.Canceled
	})
	s.Error(err)

	_, err = articles.GetByID(s.ctx, created.ID)
	s.NoError(err)
}
