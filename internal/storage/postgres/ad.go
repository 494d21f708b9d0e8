package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"asre_hazir/internal/domain"
)

type AdStore struct {
	db *sqlx.DB
}

func NewAdStore(db *sqlx.DB) *AdStore {
	return &AdStore{db: db}
}

func (s *AdStore) Insert(ctx context.Context, ad *domain.Advertisement) (*domain.Advertisement, error) {
	query := `
		INSERT INTO advertisements (id, placement, image_url, link, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING created_at`

	created := *ad
	created.ID = uuid.NewString()

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		created.ID,
		created.Placement,
		created.ImageURL,
		created.Link,
	).Scan(&created.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *AdStore) Update(ctx context.Context, ad *domain.Advertisement) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE advertisements SET placement = $1, image_url = $2, link = $3 WHERE id = $4",
		ad.Placement, ad.ImageURL, ad.Link, ad.ID)
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

func (s *AdStore) Delete(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM advertisements WHERE id = $1", id)
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

func (s *AdStore) GetByID(ctx context.Context, id string) (*domain.Advertisement, error) {
	query := "SELECT id, placement, image_url, link, created_at FROM advertisements WHERE id = $1"

	var ad domain.Advertisement
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &ad, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (s *AdStore) List(ctx context.Context) ([]domain.Advertisement, error) {
	query := "SELECT id, placement, image_url, link, created_at FROM advertisements ORDER BY created_at DESC"

	ads := []domain.Advertisement{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ads, query); err != nil {
		return nil, err
	}
	return ads, nil
}

func (s *AdStore) ListByPlacement(ctx context.Context, placement string) ([]domain.Advertisement, error) {
	query := `
		SELECT id, placement, image_url, link, created_at
		FROM advertisements
		WHERE placement = $1
		ORDER BY created_at DESC`

	ads := []domain.Advertisement{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ads, query, placement); err != nil {
		return nil, err
	}
	return ads, nil
}
