package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"asre_hazir/internal/domain"
)

type DraftStore struct {
	db *sqlx.DB
}

func NewDraftStore(db *sqlx.DB) *DraftStore {
	return &DraftStore{db: db}
}

// Upsert keeps exactly one draft per author, overwriting any prior one.
func (s *DraftStore) Upsert(ctx context.Context, authorID string, draft *domain.Draft) error {
	query := `
		INSERT INTO drafts (
			author_id, title, content, section, category, sub_category,
			title_font, content_font, video_url, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (author_id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			section = EXCLUDED.section,
			category = EXCLUDED.category,
			sub_category = EXCLUDED.sub_category,
			title_font = EXCLUDED.title_font,
			content_font = EXCLUDED.content_font,
			video_url = EXCLUDED.video_url,
			updated_at = now()`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		authorID,
		draft.Title,
		draft.Content,
		draft.Section,
		draft.Category,
		draft.SubCategory,
		draft.TitleFont,
		draft.ContentFont,
		draft.VideoURL,
	)
	return err
}

func (s *DraftStore) Get(ctx context.Context, authorID string) (*domain.Draft, error) {
	query := `
		SELECT title, content, section, category, sub_category,
		       title_font, content_font, video_url, updated_at
		FROM drafts
		WHERE author_id = $1`

	var draft domain.Draft
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &draft, query, authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *DraftStore) Delete(ctx context.Context, authorID string) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM drafts WHERE author_id = $1", authorID)
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
