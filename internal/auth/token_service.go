package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nyumbani/internal/caching"
)

// TokenService mints and validates the HS256 session tokens used by the
// API once an identity has been verified.
type TokenService interface {
	GenerateTokens(ctx context.Context, userID uuid.UUID, role string) (*TokenResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*SessionClaims, error)
	RevokeRefreshToken(ctx context.Context, refreshToken string) error
}

// TokenResponse is the payload handed back on sign-in and refresh.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	UserID       string    `json:"user_id"`
	Role         string    `json:"role"`
	IssuedAt     time.Time `json:"issued_at"`
}

// SessionClaims are the JWT claims of an access token.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type tokenService struct {
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     zerolog.Logger
}

func NewTokenService(cacheSvc caching.CacheService, jwtSecret string, accessTTL, refreshTTL time.Duration, logger zerolog.Logger) TokenService {
	return &tokenService{
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

func (s *tokenService) GenerateTokens(ctx context.Context, userID uuid.UUID, role string) (*TokenResponse, error) {
	now := time.Now()

	claims := SessionClaims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "nyumbani-auth",
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := generateSecureToken()
	if err != nil {
		return nil, err
	}
	refreshHash := hashToken(refreshToken)

	// Refresh tokens live in Redis keyed by their hash; the plaintext is
	// only ever held by the client.
	expiry := now.Add(s.refreshTTL).Unix()
	data := fmt.Sprintf("%s:%s:%d", userID.String(), role, expiry)
	if err := s.cacheSvc.SetString(ctx, refreshKey(refreshHash), data, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessTTL.Seconds()),
		RefreshToken: refreshToken,
		UserID:       userID.String(),
		Role:         role,
		IssuedAt:     now,
	}, nil
}

func (s *tokenService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	refreshHash := hashToken(refreshToken)

	data, err := s.cacheSvc.GetString(ctx, refreshKey(refreshHash))
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	parts := strings.Split(data, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid refresh token data")
	}

	userIDStr, role, expiryStr := parts[0], parts[1], parts[2]
	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil || time.Now().Unix() > expiry {
		_ = s.cacheSvc.Delete(ctx, refreshKey(refreshHash))
		return nil, fmt.Errorf("refresh token expired")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in refresh token")
	}

	// Rotate: the presented token is consumed either way.
	if err := s.cacheSvc.Delete(ctx, refreshKey(refreshHash)); err != nil {
		s.logger.Warn().Err(err).Msg("failed to consume refresh token")
	}

	return s.GenerateTokens(ctx, userID, role)
}

func (s *tokenService) ValidateToken(_ context.Context, token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if claims, ok := parsed.Claims.(*SessionClaims); ok && parsed.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token claims")
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return s.cacheSvc.Delete(ctx, refreshKey(hashToken(refreshToken)))
}

func refreshKey(hash string) string {
	return fmt.Sprintf("refresh_token:%s", hash)
}

// generateSecureToken mints the opaque refresh token. A refresh token
// must never be issued from anything but the system CSPRNG.
func generateSecureToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
