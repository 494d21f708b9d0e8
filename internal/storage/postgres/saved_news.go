package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"asre_hazir/internal/domain"
)

const uniqueViolation = "23505"

type SavedNewsStore struct {
	db *sqlx.DB
}

func NewSavedNewsStore(db *sqlx.DB) *SavedNewsStore {
	return &SavedNewsStore{db: db}
}

// Insert writes a bookmark. A unique index on (user_id, news_id) backs
// the service's check-then-insert, so a losing racer surfaces as
// ErrAlreadySaved rather than a duplicate row.
func (s *SavedNewsStore) Insert(ctx context.Context, item *domain.SavedNewsItem) (*domain.SavedNewsItem, error) {
	query := `
		INSERT INTO saved_news (id, user_id, news_id, title, image, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING created_at`

	created := *item
	created.ID = uuid.NewString()

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		created.ID,
		created.UserID,
		created.NewsID,
		created.Title,
		created.Image,
		created.Category,
	).Scan(&created.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrAlreadySaved
		}
		return nil, err
	}

	return &created, nil
}

// DeleteMatching removes every bookmark a user holds for an article and
// reports how many rows went away.
func (s *SavedNewsStore) DeleteMatching(ctx context.Context, userID, newsID string) (int64, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM saved_news WHERE user_id = $1 AND news_id = $2", userID, newsID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByNews removes an article's bookmarks across all users. Used
// when the article itself is deleted.
func (s *SavedNewsStore) DeleteByNews(ctx context.Context, newsID string) (int64, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM saved_news WHERE news_id = $1", newsID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SavedNewsStore) ListByUser(ctx context.Context, userID string) ([]domain.SavedNewsItem, error) {
	query := `
		SELECT id, user_id, news_id, title, image, category, created_at
		FROM saved_news
		WHERE user_id = $1
		ORDER BY created_at DESC`

	items := []domain.SavedNewsItem{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &items, query, userID); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SavedNewsStore) Exists(ctx context.Context, userID, newsID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &exists,
		"SELECT EXISTS (SELECT 1 FROM saved_news WHERE user_id = $1 AND news_id = $2)", userID, newsID)
	if err != nil {
		return false, err
	}
	return exists, nil
}
