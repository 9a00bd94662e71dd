package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"nyumbani/internal/finance"
	"nyumbani/internal/models"
)

// CacheService fronts Redis for the hot lookups: user profiles (hit on
// every auth resolution) and the dashboard financial summary, plus generic
// string operations for token storage.
type CacheService interface {
	// Profile caching
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	SetProfile(ctx context.Context, profile *models.UserProfile, ttl time.Duration) error
	DeleteProfile(ctx context.Context, uid string) error

	// Dashboard summary caching
	GetFinancialSummary(ctx context.Context) (*finance.Summary, error)
	SetFinancialSummary(ctx context.Context, summary *finance.Summary, ttl time.Duration) error
	InvalidateFinancialSummary(ctx context.Context) error

	// Generic string operations for token management
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedisCacheService(addr, password string, db int, logger zerolog.Logger) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", addr).Msg("redis ping failed on initialization")
	}

	return &redisCacheService{client: client, logger: logger}
}

func profileKey(uid string) string {
	return fmt.Sprintf("profile:%s", uid)
}

const summaryKey = "dashboard:financial_summary"

func (s *redisCacheService) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	data, err := s.client.Get(ctx, profileKey(uid)).Bytes()
	if err != nil {
		return nil, err
	}
	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *redisCacheService) SetProfile(ctx context.Context, profile *models.UserProfile, ttl time.Duration) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, profileKey(profile.ExternalUID), data, ttl).Err()
}

func (s *redisCacheService) DeleteProfile(ctx context.Context, uid string) error {
	return s.client.Del(ctx, profileKey(uid)).Err()
}

func (s *redisCacheService) GetFinancialSummary(ctx context.Context) (*finance.Summary, error) {
	data, err := s.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		return nil, err
	}
	var summary finance.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *redisCacheService) SetFinancialSummary(ctx context.Context, summary *finance.Summary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, summaryKey, data, ttl).Err()
}

func (s *redisCacheService) InvalidateFinancialSummary(ctx context.Context) error {
	return s.client.Del(ctx, summaryKey).Err()
}

func (s *redisCacheService) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *redisCacheService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
