package model

import (
	"time"

	"github.com/google/uuid"
)

// Marker представляет метку на карте с необязательным фото и метаданными
type Marker struct {
	ID          uuid.UUID `json:"id"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	ImageURL    string    `json:"imageUrl"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MarkerFields содержит поля метки, принимаемые от клиента (без id)
type MarkerFields struct {
	Lat         float64
	Lng         float64
	Date        string
	Time        string
	Description string
}
