package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"asre_hazir/internal/domain"
	"asre_hazir/internal/feed"
)

type ArticleStore struct {
	db *sqlx.DB
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `
	id, title, content, section, category, sub_category, image_url, video_url,
	title_font, content_font, author, author_id, status, created_at, updated_at`

// Insert writes a new article. The store assigns the opaque id and the
// server-side created_at; callers must treat both as immutable.
func (s *ArticleStore) Insert(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	query := `
		INSERT INTO news (
			id, title, content, section, category, sub_category, image_url, video_url,
			title_font, content_font, author, author_id, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now()
		)
		RETURNING created_at`

	created := *article
	created.ID = uuid.NewString()

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		created.ID,
		created.Title,
		created.Content,
		created.Section,
		created.Category,
		created.SubCategory,
		created.ImageURL,
		created.VideoURL,
		created.TitleFont,
		created.ContentFont,
		created.Author,
		created.AuthorID,
		created.Status,
	).Scan(&created.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Update applies the non-nil patch fields. id and created_at are never
// touched; updated_at always is.
func (s *ArticleStore) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	sets := []string{"updated_at = now()"}
	var args []interface{}

	add := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}

	add("title", patch.Title)
	add("content", patch.Content)
	add("section", patch.Section)
	add("category", patch.Category)
	add("sub_category", patch.SubCategory)
	add("title_font", patch.TitleFont)
	add("content_font", patch.ContentFont)
	add("video_url", patch.VideoURL)
	add("image_url", patch.ImageURL)

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE news SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), articleColumns,
	)

	var updated domain.Article
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &updated, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *ArticleStore) Delete(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM news WHERE id = $1", id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ArticleStore) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM news WHERE id = $1", articleColumns)

	var article domain.Article
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// ListFeed runs a feed query: exact-match category filter, newest
// first, capped at the query limit.
func (s *ArticleStore) ListFeed(ctx context.Context, q feed.Query) ([]domain.Article, error) {
	var (
		where []string
		args  []interface{}
	)

	if q.Filtered() {
		args = append(args, q.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
		if q.SubCategory != "" {
			args = append(args, q.SubCategory)
			where = append(where, fmt.Sprintf("sub_category = $%d", len(args)))
		}
	}

	query := fmt.Sprintf("SELECT %s FROM news", articleColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, q.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	articles := []domain.Article{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &articles, query, args...); err != nil {
		return nil, err
	}
	return articles, nil
}

// ListRelated returns recent articles from the same category,
// excluding the article they relate to.
func (s *ArticleStore) ListRelated(ctx context.Context, category, excludeID string, limit int) ([]domain.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM news
		WHERE category = $1 AND id <> $2
		ORDER BY created_at DESC
		LIMIT $3`, articleColumns)

	articles := []domain.Article{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &articles, query, category, excludeID, limit); err != nil {
		return nil, err
	}
	return articles, nil
}
