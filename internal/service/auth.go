package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"asre_hazir/internal/domain"
)

// AuthService resolves a presented token to an application session:
// verify the identity, look up the profile record, derive the role.
// A missing profile record means non-admin; there is no admin
// auto-provisioning on first login.
type AuthService struct {
	verifier TokenVerifier
	users    UserStore
	logger   *slog.Logger
}

func NewAuthService(verifier TokenVerifier, users UserStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

// Resolve verifies the token and builds the session. Role resolution
// fails closed: any profile lookup problem yields a reader session,
// never an admin one.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	identity, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	role := domain.RoleReader
	profile, err := s.users.GetProfile(ctx, identity.UserID)
	switch {
	case err == nil:
		role = profile.Role
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Warn("no profile record for identity", "user_id", identity.UserID)
	default:
		s.logger.Error("profile lookup failed", "user_id", identity.UserID, "error", err)
	}

	return &domain.Session{
		UserID:  identity.UserID,
		Name:    identity.Name,
		Email:   identity.Email,
		Role:    role,
		IsAdmin: role == domain.RoleAdmin,
	}, nil
}
