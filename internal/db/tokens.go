package db

import (
	"context"

	"github.com/myrestapi/backend/internal/model"
)

func (db *Postgres) InsertRefreshToken(ctx context.Context, t *model.RefreshToken) (*model.RefreshToken, error) {
	query := `
		INSERT INTO refresh_token (user_id, token, expiry_date, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	err := db.Pool.QueryRow(ctx, query, t.UserID, t.Token, t.ExpiryDate).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (db *Postgres) GetRefreshTokenByUserID(ctx context.Context, userID int64) (*model.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expiry_date, created_at
		FROM refresh_token
		WHERE user_id = $1
	`
	var t model.RefreshToken
	err := db.Pool.QueryRow(ctx, query, userID).Scan(
		&t.ID, &t.UserID, &t.Token, &t.ExpiryDate, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (db *Postgres) GetRefreshTokenByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expiry_date, created_at
		FROM refresh_token
		WHERE token = $1
	`
	var t model.RefreshToken
	err := db.Pool.QueryRow(ctx, query, token).Scan(
		&t.ID, &t.UserID, &t.Token, &t.ExpiryDate, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (db *Postgres) DeleteRefreshToken(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM refresh_token WHERE id = $1`, id)
	return err
}
