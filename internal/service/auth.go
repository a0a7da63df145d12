package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/myrestapi/backend/internal/config"
	"github.com/myrestapi/backend/internal/db"
	"github.com/myrestapi/backend/internal/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *model.UserInfo) (*model.UserInfo, error)
	GetUserByEmail(ctx context.Context, email string) (*model.UserInfo, error)
	GetUserByID(ctx context.Context, id int64) (*model.UserInfo, error)
}

type AuthService struct {
	users     UserRepo
	jwtSecret []byte
	accessTTL time.Duration
}

type accessClaims struct {
	Roles string `json:"roles"`
	jwt.RegisteredClaims
}

func NewAuthService(users UserRepo, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	return &AuthService{
		users:     users,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: accessTTL,
	}, nil
}

// Register hashes the password and persists the account. Duplicate emails
// surface as ErrConflict.
func (s *AuthService) Register(ctx context.Context, req *model.UserRequest) (*model.UserInfo, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	roles := strings.TrimSpace(req.Roles)
	if roles == "" {
		roles = model.RoleUser
	}

	user := &model.UserInfo{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Roles:    roles,
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return created, nil
}

// Authenticate checks the credentials against the stored bcrypt hash.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.UserInfo, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: invalid user request", ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid user request", ErrUnauthorized)
	}
	return user, nil
}

// GenerateAccessToken issues a signed HS256 token with the user's email as
// subject and the roles string as a custom claim.
func (s *AuthService) GenerateAccessToken(user *model.UserInfo) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseAccessToken verifies the signature and expiry and rebuilds the
// request identity from the claims.
func (s *AuthService) ParseAccessToken(tokenStr string) (*model.AuthUser, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid access token", ErrUnauthorized)
	}

	return &model.AuthUser{
		Email: claims.Subject,
		Roles: strings.Split(claims.Roles, ","),
	}, nil
}

// CurrentUser resolves the account behind an access token. The account is
// reloaded so ownership checks always see the persisted identity.
func (s *AuthService) CurrentUser(ctx context.Context, tokenStr string) (*model.UserInfo, error) {
	authUser, err := s.ParseAccessToken(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, authUser.Email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: unknown subject", ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}
