package mapclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"mapa-markers-back/internal/model"
)

// ErrNotFound возвращается, когда сервер не знает метку с таким id
var ErrNotFound = errors.New("marker not found")

// Client — типизированный клиент REST API меток
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// MarkerForm — поля формы метки, отправляемые на сервер
type MarkerForm struct {
	Lat         float64
	Lng         float64
	Date        string
	Time        string
	Description string
	Image       io.Reader // nil, если фото не прикреплено
	ImageName   string
}

func (c *Client) List(ctx context.Context) ([]model.Marker, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/markers", nil)
	if err != nil {
		return nil, err
	}
	var markers []model.Marker
	if err := c.do(req, "", &markers); err != nil {
		return nil, err
	}
	return markers, nil
}

func (c *Client) Create(ctx context.Context, form MarkerForm) (*model.Marker, error) {
	body, contentType, err := encodeForm(form)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/markers", body)
	if err != nil {
		return nil, err
	}
	var m model.Marker
	if err := c.do(req, contentType, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, form MarkerForm) (*model.Marker, error) {
	body, contentType, err := encodeForm(form)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/markers/"+id.String(), body)
	if err != nil {
		return nil, err
	}
	var m model.Marker
	if err := c.do(req, contentType, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) (*model.Marker, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/markers/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	var m model.Marker
	if err := c.do(req, "", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// encodeForm собирает multipart-тело с полями метки и необязательным файлом
func encodeForm(form MarkerForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	_ = writer.WriteField("lat", strconv.FormatFloat(form.Lat, 'f', -1, 64))
	_ = writer.WriteField("lng", strconv.FormatFloat(form.Lng, 'f', -1, 64))
	_ = writer.WriteField("date", form.Date)
	_ = writer.WriteField("time", form.Time)
	_ = writer.WriteField("description", form.Description)

	if form.Image != nil {
		name := form.ImageName
		if name == "" {
			name = "image"
		}
		part, err := writer.CreateFormFile("image", name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, form.Image); err != nil {
			return nil, "", fmt.Errorf("failed to copy image: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

func (c *Client) do(req *http.Request, contentType string, out interface{}) error {
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 300:
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
