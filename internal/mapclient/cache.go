// Package mapclient содержит клиентскую часть работы с метками:
// сессионный кэш, типизированный HTTP-клиент и контроллер взаимодействия
// с картой (стейт-машина клик/форма/сохранение).
package mapclient

import (
	"sync"

	"github.com/google/uuid"

	"mapa-markers-back/internal/model"
)

// SessionMarker — метка в рамках клиентской сессии. До подтверждения сервером
// у неё есть только временный TempID и IsSaved=false; после подтверждения
// запись целиком заменяется серверной.
type SessionMarker struct {
	model.Marker
	TempID  uuid.UUID `json:"-"`
	IsSaved bool      `json:"isSaved"`
}

// Cache хранит список меток текущей сессии
type Cache struct {
	mu      sync.RWMutex
	markers []SessionMarker
}

func NewCache() *Cache {
	return &Cache{}
}

// Stage добавляет несохраненную метку с новым временным id
func (c *Cache) Stage(lat, lng float64) SessionMarker {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := SessionMarker{
		Marker:  model.Marker{Lat: lat, Lng: lng},
		TempID:  uuid.New(),
		IsSaved: false,
	}
	c.markers = append(c.markers, m)
	return m
}

// Discard убирает несохраненную метку по временному id
func (c *Cache) Discard(tempID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.markers {
		if !c.markers[i].IsSaved && c.markers[i].TempID == tempID {
			c.markers = append(c.markers[:i], c.markers[i+1:]...)
			return true
		}
	}
	return false
}

// Confirm заменяет несохраненную метку записью, подтвержденной сервером
func (c *Cache) Confirm(tempID uuid.UUID, saved model.Marker) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.markers {
		if !c.markers[i].IsSaved && c.markers[i].TempID == tempID {
			c.markers[i] = SessionMarker{Marker: saved, IsSaved: true}
			return true
		}
	}
	return false
}

// Apply заменяет сохраненную метку обновленной серверной записью
func (c *Cache) Apply(updated model.Marker) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.markers {
		if c.markers[i].IsSaved && c.markers[i].ID == updated.ID {
			c.markers[i] = SessionMarker{Marker: updated, IsSaved: true}
			return true
		}
	}
	return false
}

// Remove убирает сохраненную метку по серверному id
func (c *Cache) Remove(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.markers {
		if c.markers[i].IsSaved && c.markers[i].ID == id {
			c.markers = append(c.markers[:i], c.markers[i+1:]...)
			return true
		}
	}
	return false
}

// Get возвращает сохраненную метку по серверному id
func (c *Cache) Get(id uuid.UUID) (SessionMarker, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.markers {
		if c.markers[i].IsSaved && c.markers[i].ID == id {
			return c.markers[i], true
		}
	}
	return SessionMarker{}, false
}

// ReplaceAll загружает в кэш серверный список, все метки считаются сохраненными
func (c *Cache) ReplaceAll(markers []model.Marker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markers = make([]SessionMarker, 0, len(markers))
	for _, m := range markers {
		c.markers = append(c.markers, SessionMarker{Marker: m, IsSaved: true})
	}
}

// List возвращает копию текущего списка меток
func (c *Cache) List() []SessionMarker {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]SessionMarker, len(c.markers))
	copy(out, c.markers)
	return out
}
