package model

import (
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Password     string    `db:"password"`
	RefreshToken string    `db:"refresh_token"`
}
