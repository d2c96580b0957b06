package mapclient

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"

	"mapa-markers-back/internal/model"
)

// Phase — текущее состояние взаимодействия с картой
type Phase int

const (
	// PhaseIdle — форма закрыта, клики по карте ставят новую метку
	PhaseIdle Phase = iota
	// PhaseStaging — открыта форма новой (несохраненной) метки
	PhaseStaging
	// PhaseEditing — открыта форма редактирования сохраненной метки
	PhaseEditing
)

// LatLng — позиция попапа на карте
type LatLng struct {
	Lat float64
	Lng float64
}

// Form — поля, заполняемые пользователем в попапе
type Form struct {
	Date        string
	Time        string
	Description string
	Image       io.Reader
	ImageName   string
}

var (
	ErrNotIdle    = errors.New("another form is already open")
	ErrNotStaging = errors.New("no staged marker")
	ErrNotEditing = errors.New("no marker being edited")
)

// Controller держит состояние взаимодействия с картой и применяет переходы:
// клик ставит несохраненную метку и открывает форму, submit/cancel закрывают
// её, update/delete работают с уже сохраненными метками. Одновременно открыта
// максимум одна форма.
type Controller struct {
	api   *Client
	cache *Cache

	phase   Phase
	staged  uuid.UUID // TempID метки, для которой открыта форма
	editing uuid.UUID // серверный id редактируемой метки
	popup   *LatLng
}

func NewController(api *Client, cache *Cache) *Controller {
	return &Controller{
		api:   api,
		cache: cache,
	}
}

func (c *Controller) Phase() Phase {
	return c.phase
}

func (c *Controller) PopupPosition() *LatLng {
	return c.popup
}

func (c *Controller) Cache() *Cache {
	return c.cache
}

// Refresh загружает серверный список меток в кэш
func (c *Controller) Refresh(ctx context.Context) error {
	markers, err := c.api.List(ctx)
	if err != nil {
		log.Printf("Error fetching markers: %v", err)
		return err
	}
	c.cache.ReplaceAll(markers)
	return nil
}

// Click ставит несохраненную метку и открывает форму. Пока открыта другая
// форма, клик игнорируется.
func (c *Controller) Click(lat, lng float64) (SessionMarker, error) {
	if c.phase != PhaseIdle {
		return SessionMarker{}, ErrNotIdle
	}
	m := c.cache.Stage(lat, lng)
	c.phase = PhaseStaging
	c.staged = m.TempID
	c.popup = &LatLng{Lat: lat, Lng: lng}
	return m, nil
}

// Submit отправляет форму новой метки. При успехе несохраненная метка
// заменяется серверной записью и форма закрывается; при ошибке метка и форма
// остаются как были, повтор на усмотрение пользователя.
func (c *Controller) Submit(ctx context.Context, form Form) (*model.Marker, error) {
	if c.phase != PhaseStaging {
		return nil, ErrNotStaging
	}
	created, err := c.api.Create(ctx, MarkerForm{
		Lat:         c.popup.Lat,
		Lng:         c.popup.Lng,
		Date:        form.Date,
		Time:        form.Time,
		Description: form.Description,
		Image:       form.Image,
		ImageName:   form.ImageName,
	})
	if err != nil {
		log.Printf("Error uploading marker: %v", err)
		return nil, err
	}
	c.cache.Confirm(c.staged, *created)
	c.reset()
	return created, nil
}

// Cancel закрывает форму и выбрасывает несохраненную метку
func (c *Controller) Cancel() {
	if c.phase != PhaseStaging {
		return
	}
	c.cache.Discard(c.staged)
	c.reset()
}

// BeginEdit открывает форму редактирования, заполненную полями метки
func (c *Controller) BeginEdit(id uuid.UUID) (Form, error) {
	if c.phase != PhaseIdle {
		return Form{}, ErrNotIdle
	}
	m, ok := c.cache.Get(id)
	if !ok {
		return Form{}, ErrNotFound
	}
	c.phase = PhaseEditing
	c.editing = id
	c.popup = &LatLng{Lat: m.Lat, Lng: m.Lng}
	return Form{
		Date:        m.Date,
		Time:        m.Time,
		Description: m.Description,
	}, nil
}

// SaveEdit отправляет обновление метки. Координаты берутся из самой метки,
// форма меняет только дату, время, описание и фото.
func (c *Controller) SaveEdit(ctx context.Context, form Form) (*model.Marker, error) {
	if c.phase != PhaseEditing {
		return nil, ErrNotEditing
	}
	m, ok := c.cache.Get(c.editing)
	if !ok {
		c.reset()
		return nil, ErrNotFound
	}
	updated, err := c.api.Update(ctx, c.editing, MarkerForm{
		Lat:         m.Lat,
		Lng:         m.Lng,
		Date:        form.Date,
		Time:        form.Time,
		Description: form.Description,
		Image:       form.Image,
		ImageName:   form.ImageName,
	})
	if err != nil {
		log.Printf("Error updating marker: %v", err)
		return nil, err
	}
	c.cache.Apply(*updated)
	c.reset()
	return updated, nil
}

// CancelEdit закрывает форму редактирования, кэш не меняется
func (c *Controller) CancelEdit() {
	if c.phase != PhaseEditing {
		return
	}
	c.reset()
}

// Delete убирает метку из кэша сразу, не дожидаясь ответа сервера.
// Отката при ошибке нет, поведение оптимистичное.
func (c *Controller) Delete(ctx context.Context, id uuid.UUID) (*model.Marker, error) {
	c.cache.Remove(id)
	deleted, err := c.api.Delete(ctx, id)
	if err != nil {
		log.Printf("Error deleting marker: %v", err)
		return nil, err
	}
	return deleted, nil
}

func (c *Controller) reset() {
	c.phase = PhaseIdle
	c.staged = uuid.Nil
	c.editing = uuid.Nil
	c.popup = nil
}
