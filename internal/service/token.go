package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/myrestapi/backend/internal/config"
	"github.com/myrestapi/backend/internal/db"
	"github.com/myrestapi/backend/internal/model"
)

type TokenRepo interface {
	InsertRefreshToken(ctx context.Context, t *model.RefreshToken) (*model.RefreshToken, error)
	GetRefreshTokenByUserID(ctx context.Context, userID int64) (*model.RefreshToken, error)
	GetRefreshTokenByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, id int64) error
}

// TokenService manages the refresh token lifecycle: lazily created on
// login, reused until expiry, deleted when a verification finds it stale.
type TokenService struct {
	users  UserRepo
	tokens TokenRepo
	ttl    time.Duration
}

func NewTokenService(users UserRepo, tokens TokenRepo, cfg config.AuthConfig) (*TokenService, error) {
	ttl, err := time.ParseDuration(cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid REFRESH_TOKEN_TTL", ErrMisconfigured)
	}
	return &TokenService{users: users, tokens: tokens, ttl: ttl}, nil
}

// CreateRefreshToken returns the user's existing refresh token unchanged,
// or creates one when none exists. Expiry is not checked here; only
// VerifyExpiration retires a token. When two first logins race, the loser
// of the insert re-reads and returns the winner's token.
func (s *TokenService) CreateRefreshToken(ctx context.Context, email string) (*model.RefreshToken, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: user not found %s", ErrNotFound, email)
		}
		return nil, err
	}

	existing, err := s.tokens.GetRefreshTokenByUserID(ctx, user.ID)
	if err == nil {
		return existing, nil
	}
	if !db.IsNoRows(err) {
		return nil, err
	}

	token := &model.RefreshToken{
		UserID:     user.ID,
		Token:      uuid.NewString(),
		ExpiryDate: time.Now().Add(s.ttl),
	}
	created, err := s.tokens.InsertRefreshToken(ctx, token)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return s.tokens.GetRefreshTokenByUserID(ctx, user.ID)
		}
		return nil, err
	}
	return created, nil
}

// FindByToken looks a refresh token up by its opaque value.
func (s *TokenService) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	found, err := s.tokens.GetRefreshTokenByToken(ctx, token)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: Refresh token is not in database!", ErrNotFound)
		}
		return nil, err
	}
	return found, nil
}

// VerifyExpiration returns the token unchanged while it is still valid.
// A stale token is deleted and reported as expired; the caller must sign
// in again, which recreates one via CreateRefreshToken.
func (s *TokenService) VerifyExpiration(ctx context.Context, token *model.RefreshToken) (*model.RefreshToken, error) {
	if token.ExpiryDate.Before(time.Now()) {
		if err := s.tokens.DeleteRefreshToken(ctx, token.ID); err != nil {
			return nil, err
		}
		return nil, &ExpiredTokenError{Token: token.Token}
	}
	return token, nil
}

// Owner loads the account a refresh token belongs to.
func (s *TokenService) Owner(ctx context.Context, token *model.RefreshToken) (*model.UserInfo, error) {
	user, err := s.users.GetUserByID(ctx, token.UserID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: user not found for token", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}
