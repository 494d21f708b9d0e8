package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"asre_hazir/internal/domain"
	"asre_hazir/internal/service/mocks"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	verifier *mocks.MockTokenVerifier
	users    *mocks.MockUserStore

	service *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.verifier = mocks.NewMockTokenVerifier(s.ctrl)
	s.users = mocks.NewMockUserStore(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.service = NewAuthService(s.verifier, s.users, logger)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestResolve_AdminProfile() {
	ctx := context.Background()
	s.verifier.EXPECT().Verify(ctx, "tok").Return(&domain.Identity{UserID: "u1", Name: "Editor", Email: "e@x"}, nil)
	s.users.EXPECT().GetProfile(ctx, "u1").Return(&domain.UserProfile{UserID: "u1", Role: domain.RoleAdmin}, nil)

	sess, err := s.service.Resolve(ctx, "tok")
	s.NoError(err)
	s.True(sess.IsAdmin)
	s.Equal(domain.RoleAdmin, sess.Role)
	s.Equal("Editor", sess.Name)
}

func (s *AuthServiceTestSuite) TestResolve_ReaderProfile() {
	ctx := context.Background()
	s.verifier.EXPECT().Verify(ctx, "tok").Return(&domain.Identity{UserID: "u1"}, nil)
	s.users.EXPECT().GetProfile(ctx, "u1").Return(&domain.UserProfile{UserID: "u1", Role: domain.RoleReader}, nil)

	sess, err := s.service.Resolve(ctx, "tok")
	s.NoError(err)
	s.False(sess.IsAdmin)
}

func (s *AuthServiceTestSuite) TestResolve_NoProfileIsNonAdmin() {
	ctx := context.Background()
	s.verifier.EXPECT().Verify(ctx, "tok").Return(&domain.Identity{UserID: "u1"}, nil)
	s.users.EXPECT().GetProfile(ctx, "u1").Return(nil, domain.ErrNotFound)

	sess, err := s.service.Resolve(ctx, "tok")
	s.NoError(err)
	s.False(sess.IsAdmin)
	s.Equal(domain.RoleReader, sess.Role)
}

func (s *AuthServiceTestSuite) TestResolve_LookupErrorFailsClosed() {
	ctx := context.Background()
	s.verifier.EXPECT().Verify(ctx, "tok").Return(&domain.Identity{UserID: "u1"}, nil)
	s.users.EXPECT().GetProfile(ctx, "u1").Return(nil, errors.New("db down"))

	sess, err := s.service.Resolve(ctx, "tok")
	s.NoError(err)
	s.False(sess.IsAdmin)
}

func (s *AuthServiceTestSuite) TestResolve_EmptyToken() {
	_, err := s.service.Resolve(context.Background(), "")
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestResolve_BadToken() {
	ctx := context.Background()
	s.verifier.EXPECT().Verify(ctx, "bad").Return(nil, errors.New("unknown token"))

	_, err := s.service.Resolve(ctx, "bad")
	s.ErrorIs(err, domain.ErrUnauthorized)
}
