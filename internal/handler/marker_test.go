package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapa-markers-back/internal/model"
	"mapa-markers-back/internal/service"
	"mapa-markers-back/internal/storage/disk"
	"mapa-markers-back/internal/storage/memory"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	store := memory.New()
	content, err := disk.NewDiskStorage(t.TempDir())
	require.NoError(t, err)

	h := NewHandler(
		service.NewUserService(store),
		service.NewMarkerService(store, content),
		nil,
	)
	r := h.InitRoutes(content.Dir())

	token, _, err := service.GenerateTokens(uuid.New())
	require.NoError(t, err)
	return r, token
}

func markerRequest(t *testing.T, method, url, token string, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func doJSON(t *testing.T, r *gin.Engine, req *http.Request, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func listMarkers(t *testing.T, r *gin.Engine, token string) []model.Marker {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/markers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	var markers []model.Marker
	rec := doJSON(t, r, req, &markers)
	require.Equal(t, http.StatusOK, rec.Code)
	return markers
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))))
	return buf.Bytes()
}

func TestMarkers_CreateThenList(t *testing.T) {
	r, token := newTestRouter(t)

	var created model.Marker
	rec := doJSON(t, r, markerRequest(t, http.MethodPost, "/api/markers", token, map[string]string{
		"lat": "10.0", "lng": "20.0",
		"date": "2024-01-01", "time": "12:00", "description": "test",
	}, nil), &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 10.0, created.Lat)
	assert.Equal(t, 20.0, created.Lng)
	assert.Equal(t, "2024-01-01", created.Date)
	assert.Equal(t, "12:00", created.Time)
	assert.Equal(t, "test", created.Description)
	// Без файла ссылка на картинку пустая
	assert.Empty(t, created.ImageURL)

	markers := listMarkers(t, r, token)
	require.Len(t, markers, 1)
	assert.Equal(t, created.ID, markers[0].ID)
	assert.Equal(t, 10.0, markers[0].Lat)
	assert.Equal(t, 20.0, markers[0].Lng)
}

func TestMarkers_List_Empty(t *testing.T) {
	r, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/markers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	// Пустой список, а не null
	assert.Equal(t, "[]", rec.Body.String())
}

func TestMarkers_Create_WithImage(t *testing.T) {
	r, token := newTestRouter(t)

	var created model.Marker
	rec := doJSON(t, r, markerRequest(t, http.MethodPost, "/api/markers", token, map[string]string{
		"lat": "51.505", "lng": "-0.09",
	}, pngBytes(t)), &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, created.ImageURL)

	// Картинка доступна по своей ссылке
	req := httptest.NewRequest(http.MethodGet, created.ImageURL, nil)
	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusOK, rec2.Code)
}

func TestMarkers_Create_Validation(t *testing.T) {
	r, token := newTestRouter(t)

	cases := map[string]map[string]string{
		"missing lat": {"lng": "20"},
		"missing lng": {"lat": "10"},
		"bad lat":     {"lat": "abc", "lng": "20"},
		"nan lat":     {"lat": "NaN", "lng": "20"},
		"inf lng":     {"lat": "10", "lng": "+Inf"},
		"lat too big": {"lat": "90.5", "lng": "20"},
		"lng too big": {"lat": "10", "lng": "-180.5"},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(t, r, markerRequest(t, http.MethodPost, "/api/markers", token, fields, nil), nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	assert.Empty(t, listMarkers(t, r, token))
}

func TestMarkers_Update(t *testing.T) {
	r, token := newTestRouter(t)

	var created model.Marker
	rec := doJSON(t, r, markerRequest(t, http.MethodPost, "/api/markers", token, map[string]string{
		"lat": "10", "lng": "20", "description": "before",
	}, pngBytes(t)), &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, created.ImageURL)

	var updated model.Marker
	rec = doJSON(t, r, markerRequest(t, http.MethodPut, "/api/markers/"+created.ID.String(), token, map[string]string{
		"lat": "10", "lng": "20", "description": "after",
	}, nil), &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "after", updated.Description)
	// Без нового файла ссылка не меняется
	assert.Equal(t, created.ImageURL, updated.ImageURL)
}

func TestMarkers_Update_NotFound(t *testing.T) {
	r, token := newTestRouter(t)

	rec := doJSON(t, r, markerRequest(t, http.MethodPut, "/api/markers/"+uuid.NewString(), token, map[string]string{
		"lat": "10", "lng": "20",
	}, nil), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, listMarkers(t, r, token))
}

func TestMarkers_Delete(t *testing.T) {
	r, token := newTestRouter(t)

	var created model.Marker
	rec := doJSON(t, r, markerRequest(t, http.MethodPost, "/api/markers", token, map[string]string{
		"lat": "10", "lng": "20",
	}, nil), &created)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/markers/"+created.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	var deleted model.Marker
	rec = doJSON(t, r, req, &deleted)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, deleted.ID)

	assert.Empty(t, listMarkers(t, r, token))

	// Повторное удаление того же id — 404
	req = httptest.NewRequest(http.MethodDelete, "/api/markers/"+created.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = doJSON(t, r, req, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkers_BadID(t *testing.T) {
	r, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/markers/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := doJSON(t, r, req, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkers_RequireAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/markers", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/markers", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
