package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"mapa-markers-back/internal/model"
	"mapa-markers-back/internal/storage"
)

func NewGoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

type GoogleOAuthService struct {
	oauthConfig *oauth2.Config
	userStorage storage.UserStore
}

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func NewGoogleOAuthService(oauthConfig *oauth2.Config, userStorage storage.UserStore) *GoogleOAuthService {
	return &GoogleOAuthService{
		oauthConfig: oauthConfig,
		userStorage: userStorage,
	}
}

func (s *GoogleOAuthService) GetAuthURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

func (s *GoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	return s.oauthConfig.Exchange(ctx, code)
}

func (s *GoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info, status: %d", resp.StatusCode)
	}

	var userInfo GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &userInfo, nil
}

func (s *GoogleOAuthService) AuthenticateOrCreateUser(ctx context.Context, googleUser *GoogleUserInfo) (*model.User, string, string, error) {
	// Если пользователь существует, генерируем новые токены
	existingUser, err := s.userStorage.GetUserByEmail(ctx, googleUser.Email)
	if err == nil && existingUser != nil {
		accessToken, refreshToken, err := GenerateTokens(existingUser.ID)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
		}
		_ = s.userStorage.UpdateRefreshToken(ctx, existingUser.ID, refreshToken)
		return existingUser, accessToken, refreshToken, nil
	}

	// Создаем нового пользователя (пароль не нужен, вход только через Google)
	newUser := model.User{
		Email: googleUser.Email,
	}
	if err := s.userStorage.CreateUser(ctx, newUser); err != nil {
		return nil, "", "", fmt.Errorf("failed to create user: %w", err)
	}
	createdUser, err := s.userStorage.GetUserByEmail(ctx, googleUser.Email)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to load created user: %w", err)
	}

	accessToken, refreshToken, err := GenerateTokens(createdUser.ID)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}
	_ = s.userStorage.UpdateRefreshToken(ctx, createdUser.ID, refreshToken)
	return createdUser, accessToken, refreshToken, nil
}
