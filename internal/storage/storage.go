package storage

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"mapa-markers-back/internal/model"
)

// MarkerStore определяет операции над хранилищем меток.
// Реализации: postgres (боевая) и memory (тесты).
type MarkerStore interface {
	ListMarkers(ctx context.Context) ([]model.Marker, error)
	CreateMarker(ctx context.Context, m model.Marker) (*model.Marker, error)
	// UpdateMarker обновляет метку; пустой imageURL сохраняет прежнюю ссылку.
	// Возвращает sql.ErrNoRows, если метка не найдена.
	UpdateMarker(ctx context.Context, id uuid.UUID, fields model.MarkerFields, imageURL string) (*model.Marker, error)
	// DeleteMarker удаляет метку и возвращает удалённую запись.
	// Возвращает sql.ErrNoRows, если метка не найдена.
	DeleteMarker(ctx context.Context, id uuid.UUID) (*model.Marker, error)
}

// UserStore определяет операции над хранилищем пользователей
type UserStore interface {
	CreateUser(ctx context.Context, u model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByRefresh(ctx context.Context, refreshToken string) (*model.User, error)
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error
}

// ContentStore сохраняет загруженные файлы и возвращает ссылку на содержимое.
// Реализации: disk (каталог uploads) и s3.
type ContentStore interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
	Remove(ref string) error
}
