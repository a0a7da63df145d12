package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/myrestapi/backend/internal/config"
	"github.com/myrestapi/backend/internal/model"
)

func newAuthService(t *testing.T, users UserRepo) *AuthService {
	t.Helper()
	svc, err := NewAuthService(users, config.AuthConfig{
		JWTSecret:  "test-secret",
		AccessTTL:  "15m",
		RefreshTTL: "600s",
	})
	require.NoError(t, err)
	return svc
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	_, err := NewAuthService(newFakeUserRepo(), config.AuthConfig{AccessTTL: "15m"})
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestNewAuthServiceRejectsBadTTL(t *testing.T) {
	_, err := NewAuthService(newFakeUserRepo(), config.AuthConfig{JWTSecret: "s", AccessTTL: "soon"})
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(t, users)

	user, err := svc.Register(context.Background(), &model.UserRequest{
		Name:     "Hong",
		Email:    "hong@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	assert.Equal(t, model.RoleUser, user.Roles)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newAuthService(t, newFakeUserRepo())
	req := &model.UserRequest{Name: "Hong", Email: "hong@example.com", Password: "secret123"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	svc := newAuthService(t, newFakeUserRepo())
	_, err := svc.Register(context.Background(), &model.UserRequest{
		Name: "Hong", Email: "hong@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "hong@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "hong@example.com", user.Email)

	_, err = svc.Authenticate(context.Background(), "hong@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(context.Background(), "ghost@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newAuthService(t, newFakeUserRepo())

	token, err := svc.GenerateAccessToken(&model.UserInfo{
		Email: "hong@example.com",
		Roles: "ROLE_USER,ROLE_ADMIN",
	})
	require.NoError(t, err)

	authUser, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "hong@example.com", authUser.Email)
	assert.True(t, authUser.HasRole(model.RoleUser))
	assert.True(t, authUser.HasRole(model.RoleAdmin))
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t, newFakeUserRepo())
	_, err := svc.ParseAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestParseAccessTokenRejectsForeignSignature(t *testing.T) {
	issuer := newAuthService(t, newFakeUserRepo())
	token, err := issuer.GenerateAccessToken(&model.UserInfo{Email: "hong@example.com", Roles: "ROLE_USER"})
	require.NoError(t, err)

	verifier, err := NewAuthService(newFakeUserRepo(), config.AuthConfig{
		JWTSecret: "other-secret", AccessTTL: "15m", RefreshTTL: "600s",
	})
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCurrentUserLoadsAccount(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(t, users)
	_, err := svc.Register(context.Background(), &model.UserRequest{
		Name: "Hong", Email: "hong@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(&model.UserInfo{Email: "hong@example.com", Roles: model.RoleUser})
	require.NoError(t, err)

	user, err := svc.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "Hong", user.Name)

	deleted, err := svc.GenerateAccessToken(&model.UserInfo{Email: "gone@example.com", Roles: model.RoleUser})
	require.NoError(t, err)
	_, err = svc.CurrentUser(context.Background(), deleted)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
