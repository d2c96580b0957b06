package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mapa-markers-back/internal/model"
)

func (s *Storage) CreateUser(ctx context.Context, u model.User) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO users (email, password, refresh_token)
		VALUES ($1, $2, $3)
	`, u.Email, u.Password, u.RefreshToken)
	return err
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, "SELECT id, email, password, refresh_token FROM users WHERE email = $1", email)
}

func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.getUser(ctx, "SELECT id, email, password, refresh_token FROM users WHERE id = $1", id)
}

func (s *Storage) GetUserByRefresh(ctx context.Context, refreshToken string) (*model.User, error) {
	return s.getUser(ctx, "SELECT id, email, password, refresh_token FROM users WHERE refresh_token = $1", refreshToken)
}

func (s *Storage) getUser(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var u model.User
	row := s.DB.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.RefreshToken); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &u, nil
}

func (s *Storage) UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error {
	res, err := s.DB.Exec(ctx, "UPDATE users SET refresh_token = $1 WHERE id = $2", refreshToken, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return sql.ErrNoRows
	}
	return nil
}
