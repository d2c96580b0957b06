package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mapa-markers-back/internal/model"
)

func (s *Storage) ListMarkers(ctx context.Context) ([]model.Marker, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, lat, lng, image_url, date, time, description, created_at
		FROM markers
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markers []model.Marker
	for rows.Next() {
		var m model.Marker
		if err := rows.Scan(&m.ID, &m.Lat, &m.Lng, &m.ImageURL,
			&m.Date, &m.Time, &m.Description, &m.CreatedAt); err != nil {
			return nil, err
		}
		markers = append(markers, m)
	}
	return markers, rows.Err()
}

func (s *Storage) CreateMarker(ctx context.Context, m model.Marker) (*model.Marker, error) {
	row := s.DB.QueryRow(ctx, `
		INSERT INTO markers (lat, lng, image_url, date, time, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, m.Lat, m.Lng, m.ImageURL, m.Date, m.Time, m.Description)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Storage) UpdateMarker(ctx context.Context, id uuid.UUID, fields model.MarkerFields, imageURL string) (*model.Marker, error) {
	// COALESCE(NULLIF(...)) сохраняет прежнюю ссылку, если новый файл не прислан
	row := s.DB.QueryRow(ctx, `
		UPDATE markers
		SET lat = $1, lng = $2, date = $3, time = $4, description = $5,
		    image_url = COALESCE(NULLIF($6, ''), image_url)
		WHERE id = $7
		RETURNING id, lat, lng, image_url, date, time, description, created_at
	`, fields.Lat, fields.Lng, fields.Date, fields.Time, fields.Description, imageURL, id)

	var m model.Marker
	if err := row.Scan(&m.ID, &m.Lat, &m.Lng, &m.ImageURL,
		&m.Date, &m.Time, &m.Description, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &m, nil
}

func (s *Storage) DeleteMarker(ctx context.Context, id uuid.UUID) (*model.Marker, error) {
	row := s.DB.QueryRow(ctx, `
		DELETE FROM markers
		WHERE id = $1
		RETURNING id, lat, lng, image_url, date, time, description, created_at
	`, id)

	var m model.Marker
	if err := row.Scan(&m.ID, &m.Lat, &m.Lng, &m.ImageURL,
		&m.Date, &m.Time, &m.Description, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &m, nil
}
