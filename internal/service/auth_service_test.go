package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/support-desk/internal/config"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

func newAuthService(users *memUserRepo) *AuthService {
	cfg := config.AuthConfig{
		JWTSecret:    "test-secret",
		TokenTTLDays: 30,
		BcryptCost:   bcrypt.MinCost,
	}
	return NewAuthService(cfg, AuthDependencies{UserRepo: users})
}

func TestRegisterIssuesTokenResolvingToUser(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, "Ann", "ann@x.com", "pw123456")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, token)

	userID, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	users := newMemUserRepo()
	svc := newAuthService(users)

	user, _, _, err := svc.Register(context.Background(), "Ann", "ann@x.com", "pw123456")
	require.NoError(t, err)

	stored := users.users[user.ID]
	assert.NotEqual(t, "pw123456", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw123456")))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Ann", "ann@x.com", "pw123456")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Ann Again", "ann@x.com", "other-pw")
	require.Error(t, err)

	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "CONFLICT", de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
}

func TestLoginHappyPath(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	ctx := context.Background()

	created, _, _, err := svc.Register(ctx, "Ann", "ann@x.com", "pw123456")
	require.NoError(t, err)

	user, token, _, err := svc.Login(ctx, "ann@x.com", "pw123456", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	userID, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestLoginFailuresAreUniform(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Ann", "ann@x.com", "pw123456")
	require.NoError(t, err)

	_, _, _, wrongPw := svc.Login(ctx, "ann@x.com", "nope", "127.0.0.1")
	_, _, _, noUser := svc.Login(ctx, "ghost@x.com", "pw123456", "127.0.0.1")

	var deWrong, deNone *apperrors.DomainError
	require.ErrorAs(t, wrongPw, &deWrong)
	require.ErrorAs(t, noUser, &deNone)

	assert.Equal(t, http.StatusUnauthorized, deWrong.HTTPStatus)
	assert.Equal(t, deWrong.Code, deNone.Code)
	assert.Equal(t, deWrong.Message, deNone.Message)
}
