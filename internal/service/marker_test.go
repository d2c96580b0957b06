package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapa-markers-back/internal/model"
	"mapa-markers-back/internal/storage"
	"mapa-markers-back/internal/storage/memory"
)

// stubContent считает вызовы Save/Remove вместо записи на диск
type stubContent struct {
	saved    int
	removed  []string
	failSave bool
}

func (s *stubContent) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if s.failSave {
		return "", errors.New("disk full")
	}
	s.saved++
	return fmt.Sprintf("/uploads/stub-%d.png", s.saved), nil
}

func (s *stubContent) Remove(ref string) error {
	s.removed = append(s.removed, ref)
	return nil
}

// failingStore ломает запись в БД поверх рабочего in-memory хранилища
type failingStore struct {
	storage.MarkerStore
}

func (f *failingStore) CreateMarker(ctx context.Context, m model.Marker) (*model.Marker, error) {
	return nil, errors.New("store down")
}

func fileHeader(t *testing.T) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("pretend png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, header, err := req.FormFile("image")
	require.NoError(t, err)
	return header
}

func TestMarkerService_Create_WithoutFile(t *testing.T) {
	content := &stubContent{}
	svc := NewMarkerService(memory.New(), content)

	created, err := svc.Create(context.Background(), model.MarkerFields{Lat: 10, Lng: 20, Description: "test"}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	// Файл не обязателен: без него ссылка остается пустой
	assert.Empty(t, created.ImageURL)
	assert.Zero(t, content.saved)
}

func TestMarkerService_Create_WithFile(t *testing.T) {
	content := &stubContent{}
	svc := NewMarkerService(memory.New(), content)

	created, err := svc.Create(context.Background(), model.MarkerFields{Lat: 10, Lng: 20}, fileHeader(t))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/stub-1.png", created.ImageURL)
}

func TestMarkerService_Create_ContentFailure(t *testing.T) {
	content := &stubContent{failSave: true}
	store := memory.New()
	svc := NewMarkerService(store, content)

	_, err := svc.Create(context.Background(), model.MarkerFields{Lat: 1, Lng: 2}, fileHeader(t))
	require.Error(t, err)

	// Файл не записался — запись в БД не создается
	markers, err := store.ListMarkers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, markers)
}

func TestMarkerService_Create_StoreFailureRemovesFile(t *testing.T) {
	content := &stubContent{}
	svc := NewMarkerService(&failingStore{memory.New()}, content)

	_, err := svc.Create(context.Background(), model.MarkerFields{Lat: 1, Lng: 2}, fileHeader(t))
	require.Error(t, err)
	// Свежезаписанный файл не должен остаться сиротой
	assert.Equal(t, []string{"/uploads/stub-1.png"}, content.removed)
}

func TestMarkerService_Update_NotFoundRemovesFile(t *testing.T) {
	content := &stubContent{}
	svc := NewMarkerService(memory.New(), content)

	_, err := svc.Update(context.Background(), uuid.New(), model.MarkerFields{Lat: 1, Lng: 2}, fileHeader(t))
	require.Error(t, err)
	assert.Equal(t, []string{"/uploads/stub-1.png"}, content.removed)
}

func TestMarkerService_Update_KeepsImageWithoutFile(t *testing.T) {
	content := &stubContent{}
	store := memory.New()
	svc := NewMarkerService(store, content)

	created, err := svc.Create(context.Background(), model.MarkerFields{Lat: 1, Lng: 2}, fileHeader(t))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, model.MarkerFields{Lat: 1, Lng: 2, Description: "changed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, created.ImageURL, updated.ImageURL)
	assert.Equal(t, "changed", updated.Description)
}

func TestMarkerService_Delete_RemovesContent(t *testing.T) {
	content := &stubContent{}
	store := memory.New()
	svc := NewMarkerService(store, content)

	created, err := svc.Create(context.Background(), model.MarkerFields{Lat: 1, Lng: 2}, fileHeader(t))
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, []string{created.ImageURL}, content.removed)
}
