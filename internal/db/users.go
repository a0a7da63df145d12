package db

import (
	"context"

	"github.com/myrestapi/backend/internal/model"
)

func (db *Postgres) CreateUser(ctx context.Context, u *model.UserInfo) (*model.UserInfo, error) {
	query := `
		INSERT INTO user_info (name, email, password, roles, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	err := db.Pool.QueryRow(ctx, query, u.Name, u.Email, u.Password, u.Roles).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.UserInfo, error) {
	query := `
		SELECT id, name, email, password, roles, created_at
		FROM user_info
		WHERE email = $1
	`
	var u model.UserInfo
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Roles, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *Postgres) GetUserByID(ctx context.Context, id int64) (*model.UserInfo, error) {
	query := `
		SELECT id, name, email, password, roles, created_at
		FROM user_info
		WHERE id = $1
	`
	var u model.UserInfo
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Roles, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
