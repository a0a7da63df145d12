package model

import (
	"strings"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// UserInfo is the persisted account record. Password holds the bcrypt hash.
type UserInfo struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Roles     string
	CreatedAt time.Time
}

// HasRole reports whether the comma separated Roles field contains role.
func (u *UserInfo) HasRole(role string) bool {
	for _, r := range strings.Split(u.Roles, ",") {
		if strings.TrimSpace(r) == role {
			return true
		}
	}
	return false
}

// RefreshToken is the long-lived opaque credential. One row per user.
type RefreshToken struct {
	ID         int64
	UserID     int64
	Token      string
	ExpiryDate time.Time
	CreatedAt  time.Time
}

// AuthUser is the identity carried through a request, rebuilt from access
// token claims without touching the database.
type AuthUser struct {
	Email string
	Roles []string
}

func (u *AuthUser) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type UserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Roles    string `json:"roles"`
}

type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	Token string `json:"token"`
}

// JwtResponse bundles a fresh access token with the refresh token value.
type JwtResponse struct {
	AccessToken string `json:"accessToken"`
	Token       string `json:"token"`
}
