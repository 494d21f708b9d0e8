package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"asre_hazir/internal/domain"
)

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// GetProfile returns ErrNotFound for identities with no profile row.
// Profiles are provisioned out of band; this store never creates them.
func (s *UserStore) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := "SELECT user_id, email, role, created_at FROM users WHERE user_id = $1"

	var profile domain.UserProfile
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
