package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
	"github.com/rahulk/studyshare/internal/pkg/auth"
)

func newAuthServiceForTest() (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	return NewAuthService(users, tokens, jwtService), users, tokens
}

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:       "rahul@college.ac.in",
		Password:    "s3cretPass1",
		DisplayName: "Rahul Kumar",
	}
}

func TestRegister(t *testing.T) {
	svc, users, _ := newAuthServiceForTest()

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)

	// New accounts start as viewers.
	assert.Equal(t, string(models.RoleViewer), resp.User.Role)

	stored, err := users.GetByEmail(context.Background(), "rahul@college.ac.in")
	require.NoError(t, err)
	// The password must never be stored in plain text.
	assert.NotEqual(t, "s3cretPass1", stored.Password)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, users, _ := newAuthServiceForTest()

	req := validRegisterRequest()
	req.Email = "  Rahul@College.AC.IN "
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = users.GetByEmail(context.Background(), "rahul@college.ac.in")
	assert.NoError(t, err)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	tests := []struct {
		name   string
		mutate func(req *dto.RegisterRequest)
	}{
		{"invalid email", func(req *dto.RegisterRequest) { req.Email = "not-an-email" }},
		{"short password", func(req *dto.RegisterRequest) { req.Password = "a1" }},
		{"password without digits", func(req *dto.RegisterRequest) { req.Password = "onlyletters" }},
		{"password without letters", func(req *dto.RegisterRequest) { req.Password = "12345678" }},
		{"empty display name", func(req *dto.RegisterRequest) { req.DisplayName = "  " }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegisterRequest()
			tc.mutate(req)
			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "rahul@college.ac.in",
		Password: "s3cretPass1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "rahul@college.ac.in",
		Password: "wrongPass1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown emails get the same error as wrong passwords.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@college.ac.in",
		Password: "s3cretPass1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), registered.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.Token.RefreshToken, refreshed.Token.RefreshToken)

	// Refresh tokens are single use.
	_, err = svc.RefreshToken(context.Background(), registered.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshUnknownToken(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	_, err := svc.RefreshToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogout(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	err = svc.Logout(context.Background(), registered.Token.RefreshToken)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), registered.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// Logging out an unknown token is not an error.
	err = svc.Logout(context.Background(), "no-such-token")
	assert.NoError(t, err)
}
