package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/google/uuid"

	"mapa-markers-back/internal/model"
	"mapa-markers-back/internal/storage"
)

type MarkerService struct {
	Store   storage.MarkerStore
	Content storage.ContentStore
}

func NewMarkerService(store storage.MarkerStore, content storage.ContentStore) *MarkerService {
	return &MarkerService{
		Store:   store,
		Content: content,
	}
}

func (s *MarkerService) List(ctx context.Context) ([]model.Marker, error) {
	markers, err := s.Store.ListMarkers(ctx)
	if err != nil {
		return nil, err
	}
	if markers == nil {
		markers = []model.Marker{}
	}
	return markers, nil
}

// Create сохраняет новую метку. Файл не обязателен: без него image_url
// остается пустым. Файл пишется до записи в БД; если запись в БД не прошла,
// файл удаляется, чтобы не копить сирот в каталоге uploads.
func (s *MarkerService) Create(ctx context.Context, fields model.MarkerFields, file *multipart.FileHeader) (*model.Marker, error) {
	imageURL, err := s.saveContent(file)
	if err != nil {
		return nil, err
	}

	created, err := s.Store.CreateMarker(ctx, model.Marker{
		Lat:         fields.Lat,
		Lng:         fields.Lng,
		ImageURL:    imageURL,
		Date:        fields.Date,
		Time:        fields.Time,
		Description: fields.Description,
	})
	if err != nil {
		s.removeContent(imageURL)
		return nil, err
	}
	return created, nil
}

// Update обновляет метку. Новый файл заменяет ссылку, без файла прежняя
// ссылка сохраняется. Если метка не найдена, свежезаписанный файл удаляется.
func (s *MarkerService) Update(ctx context.Context, id uuid.UUID, fields model.MarkerFields, file *multipart.FileHeader) (*model.Marker, error) {
	imageURL, err := s.saveContent(file)
	if err != nil {
		return nil, err
	}

	updated, err := s.Store.UpdateMarker(ctx, id, fields, imageURL)
	if err != nil {
		s.removeContent(imageURL)
		return nil, err
	}
	return updated, nil
}

// Delete удаляет метку и связанный с ней файл
func (s *MarkerService) Delete(ctx context.Context, id uuid.UUID) (*model.Marker, error) {
	deleted, err := s.Store.DeleteMarker(ctx, id)
	if err != nil {
		return nil, err
	}
	s.removeContent(deleted.ImageURL)
	return deleted, nil
}

func (s *MarkerService) saveContent(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", nil
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	url, err := s.Content.Save(src, file)
	if err != nil {
		return "", fmt.Errorf("failed to store uploaded file: %w", err)
	}
	return url, nil
}

func (s *MarkerService) removeContent(imageURL string) {
	if imageURL == "" {
		return
	}
	if err := s.Content.Remove(imageURL); err != nil {
		log.Printf("failed to remove content %s: %v", imageURL, err)
	}
}
