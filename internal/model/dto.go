package model

import (
	"mime/multipart"
)

// ErrorMessage представляет сообщение об ошибке
// @Description Структура для сообщений об ошибках API
type ErrorMessage struct {
	Error string `json:"error" example:"Marker not found"`
}

// RegisterRequest содержит данные для регистрации нового пользователя
// @Description Структура запроса для регистрации пользователя в системе
type RegisterRequest struct {
	Email    string `json:"email" example:"user1@example.com"`
	Password string `json:"password" example:"password123"`
}

// LoginRequest содержит данные для аутентификации пользователя
// @Description Структура запроса для входа в систему
type LoginRequest struct {
	Email    string `json:"email" example:"user1@example.com"`
	Password string `json:"password" example:"password123"`
}

// TokenResponse представляет ответ с токенами аутентификации
// @Description Структура ответа с access и refresh токенами
type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// RefreshRequest содержит refresh токен для обновления access токена
// @Description Структура запроса для обновления токена доступа
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// RefreshResponse представляет ответ с обновленным access токеном
// @Description Структура ответа при успешном обновлении токена
type RefreshResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type ProfileResponse struct {
	ID    string `json:"id" example:"06301788-e325-488f-94b5-1711e211b82a"`
	Email string `json:"email" example:"user1@example.com"`
}

// GoogleLoginResponse представляет ответ с URL для перенаправления на Google OAuth
// @Description Структура ответа с URL для перенаправления на Google OAuth
type GoogleLoginResponse struct {
	URL string `json:"url" example:"https://accounts.google.com/o/oauth2/auth?response_type=code&client_id=..."`
}

// CreateMarkerRequest содержит multipart-поля для создания или обновления метки
// @Description Структура multipart-запроса для создания/обновления метки
type CreateMarkerRequest struct {
	Lat         string                `form:"lat" example:"51.505"`
	Lng         string                `form:"lng" example:"-0.09"`
	Date        string                `form:"date" example:"2024-01-01"`
	Time        string                `form:"time" example:"12:00"`
	Description string                `form:"description" example:"Mirador en la costa"`
	Image       *multipart.FileHeader `form:"image"`
}
