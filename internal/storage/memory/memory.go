package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"mapa-markers-back/internal/model"
)

// Storage — хранилище в памяти, используется в тестах вместо postgres
type Storage struct {
	mu      sync.RWMutex
	markers []model.Marker
	users   map[uuid.UUID]model.User
}

func New() *Storage {
	return &Storage{
		users: make(map[uuid.UUID]model.User),
	}
}

func (s *Storage) ListMarkers(ctx context.Context) ([]model.Marker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Marker, len(s.markers))
	copy(out, s.markers)
	return out, nil
}

func (s *Storage) CreateMarker(ctx context.Context, m model.Marker) (*model.Marker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	s.markers = append(s.markers, m)
	return &m, nil
}

func (s *Storage) UpdateMarker(ctx context.Context, id uuid.UUID, fields model.MarkerFields, imageURL string) (*model.Marker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.markers {
		if s.markers[i].ID != id {
			continue
		}
		m := &s.markers[i]
		m.Lat = fields.Lat
		m.Lng = fields.Lng
		m.Date = fields.Date
		m.Time = fields.Time
		m.Description = fields.Description
		if imageURL != "" {
			m.ImageURL = imageURL
		}
		out := *m
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (s *Storage) DeleteMarker(ctx context.Context, id uuid.UUID) (*model.Marker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.markers {
		if s.markers[i].ID != id {
			continue
		}
		deleted := s.markers[i]
		s.markers = append(s.markers[:i], s.markers[i+1:]...)
		return &deleted, nil
	}
	return nil, sql.ErrNoRows
}

func (s *Storage) CreateUser(ctx context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users[u.ID] = u
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := u
	return &out, nil
}

func (s *Storage) GetUserByRefresh(ctx context.Context, refreshToken string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.RefreshToken == refreshToken && refreshToken != "" {
			out := u
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *Storage) UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.RefreshToken = refreshToken
	s.users[id] = u
	return nil
}
