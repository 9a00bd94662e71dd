package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"nyumbani/internal/finance"
	"nyumbani/internal/models"
)

// memoryCache is a map-backed stand-in for the Redis cache, enough to
// exercise refresh-token storage and rotation.
type memoryCache struct {
	strings map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{strings: make(map[string]string)}
}

func (c *memoryCache) GetProfile(context.Context, string) (*models.UserProfile, error) {
	return nil, fmt.Errorf("not cached")
}

func (c *memoryCache) SetProfile(context.Context, *models.UserProfile, time.Duration) error {
	return nil
}

func (c *memoryCache) DeleteProfile(context.Context, string) error { return nil }

func (c *memoryCache) GetFinancialSummary(context.Context) (*finance.Summary, error) {
	return nil, fmt.Errorf("not cached")
}

func (c *memoryCache) SetFinancialSummary(context.Context, *finance.Summary, time.Duration) error {
	return nil
}

func (c *memoryCache) InvalidateFinancialSummary(context.Context) error { return nil }

func (c *memoryCache) SetString(_ context.Context, key, value string, _ time.Duration) error {
	c.strings[key] = value
	return nil
}

func (c *memoryCache) GetString(_ context.Context, key string) (string, error) {
	value, ok := c.strings[key]
	if !ok {
		return "", fmt.Errorf("key not found")
	}
	return value, nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.strings, key)
	return nil
}

func newTestTokenService(cache *memoryCache) TokenService {
	return NewTokenService(cache, "test-secret", 15*time.Minute, 24*time.Hour, zerolog.Nop())
}

func TestGenerateTokens_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	svc := newTestTokenService(cache)
	userID := uuid.New()

	resp, err := svc.GenerateTokens(ctx, userID, models.RoleAgent)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	claims, err := svc.ValidateToken(ctx, resp.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, models.RoleAgent, claims.Role)

	// Only the hash of the refresh token is stored server-side.
	assert.Len(t, cache.strings, 1)
	for key := range cache.strings {
		assert.NotContains(t, key, resp.RefreshToken)
	}
}

func TestGenerateTokens_RefreshTokensAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(newMemoryCache())
	userID := uuid.New()

	first, err := svc.GenerateTokens(ctx, userID, models.RoleTenant)
	assert.NoError(t, err)
	second, err := svc.GenerateTokens(ctx, userID, models.RoleTenant)
	assert.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestRefreshTokens_RotatesToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(newMemoryCache())
	userID := uuid.New()

	issued, err := svc.GenerateTokens(ctx, userID, models.RoleTenant)
	assert.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, issued.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), refreshed.UserID)
	assert.NotEqual(t, issued.RefreshToken, refreshed.RefreshToken)

	// The presented token was consumed; replaying it must fail.
	_, err = svc.RefreshTokens(ctx, issued.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshTokens_RejectsUnknownToken(t *testing.T) {
	svc := newTestTokenService(newMemoryCache())
	_, err := svc.RefreshTokens(context.Background(), "never-issued")
	assert.Error(t, err)
}

func TestRevokeRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(newMemoryCache())

	issued, err := svc.GenerateTokens(ctx, uuid.New(), models.RoleAdmin)
	assert.NoError(t, err)

	assert.NoError(t, svc.RevokeRefreshToken(ctx, issued.RefreshToken))
	_, err = svc.RefreshTokens(ctx, issued.RefreshToken)
	assert.Error(t, err)
}
