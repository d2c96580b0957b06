package handler

import (
	"database/sql"
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mapa-markers-back/internal/model"
)

func (h *Handler) ListMarkers(c *gin.Context) {
	markers, err := h.Markers.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch markers"})
		return
	}
	c.JSON(http.StatusOK, markers)
}

func (h *Handler) CreateMarker(c *gin.Context) {
	fields, file, err := parseMarkerForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Markers.Create(c.Request.Context(), *fields, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save marker"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateMarker(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid marker id"})
		return
	}
	fields, file, err := parseMarkerForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Markers.Update(c.Request.Context(), id, *fields, file)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Marker not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update marker"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteMarker(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid marker id"})
		return
	}

	deleted, err := h.Markers.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Marker not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete marker"})
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// parseMarkerForm разбирает multipart-поля метки. Координаты приходят строками,
// поэтому проверяем их здесь: обязательны, конечны и в допустимых пределах.
// Отсутствующий файл — не ошибка, фото у метки не обязательно.
func parseMarkerForm(c *gin.Context) (*model.MarkerFields, *multipart.FileHeader, error) {
	lat, err := parseCoordinate(c.PostForm("lat"), 90)
	if err != nil {
		return nil, nil, errors.New("Invalid lat")
	}
	lng, err := parseCoordinate(c.PostForm("lng"), 180)
	if err != nil {
		return nil, nil, errors.New("Invalid lng")
	}

	file, err := c.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, errors.New("Invalid image")
		}
		file = nil
	}

	return &model.MarkerFields{
		Lat:         lat,
		Lng:         lng,
		Date:        c.PostForm("date"),
		Time:        c.PostForm("time"),
		Description: c.PostForm("description"),
	}, file, nil
}

func parseCoordinate(s string, limit float64) (float64, error) {
	if s == "" {
		return 0, errors.New("missing coordinate")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < -limit || v > limit {
		return 0, errors.New("coordinate out of range")
	}
	return v, nil
}
