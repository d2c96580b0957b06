package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapa-markers-back/internal/storage/memory"
)

func TestTokens_GenerateAndParse(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := uuid.New()
	access, refresh, err := GenerateTokens(userID)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	parsed, err := ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParseToken_Invalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewUserService(memory.New())
	ctx := context.Background()

	access, refresh, err := svc.Register(ctx, "user1@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	access, _, err = svc.Login(ctx, "user1@example.com", "password123")
	require.NoError(t, err)
	userID, err := ParseToken(access)
	require.NoError(t, err)

	u, err := svc.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "user1@example.com", u.Email)

	_, _, err = svc.Login(ctx, "user1@example.com", "wrong")
	assert.Error(t, err)
}

func TestUserService_Refresh(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewUserService(memory.New())
	ctx := context.Background()

	_, refresh, err := svc.Register(ctx, "user1@example.com", "password123")
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	_, err = svc.Refresh(ctx, "unknown-refresh")
	assert.Error(t, err)
}
