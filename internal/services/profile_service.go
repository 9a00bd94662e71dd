package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nyumbani/internal/caching"
	"nyumbani/internal/models"
	"nyumbani/internal/repositories"
)

const profileCacheTTL = 10 * time.Minute

// ProfileService resolves and manages user profiles. Lookups by external
// UID sit on the sign-in path, so they go through the cache first.
type ProfileService interface {
	Create(ctx context.Context, req *CreateProfileRequest) (*models.UserProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	GetProfileByUID(ctx context.Context, uid string) (*models.UserProfile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	List(ctx context.Context, limit, offset int) ([]*models.UserProfile, error)
}

type CreateProfileRequest struct {
	ExternalUID string     `json:"external_uid"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	TenantID    *uuid.UUID `json:"tenant_id,omitempty"`
	LandlordID  *uuid.UUID `json:"landlord_id,omitempty"`
}

type profileService struct {
	userRepo repositories.UserRepository
	cacheSvc caching.CacheService
	logger   zerolog.Logger
}

func NewProfileService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, logger zerolog.Logger) ProfileService {
	return &profileService{userRepo: userRepo, cacheSvc: cacheSvc, logger: logger}
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleAgent, models.RoleViewer, models.RoleTenant, models.RoleHomeowner:
		return true
	}
	return false
}

func (s *profileService) Create(ctx context.Context, req *CreateProfileRequest) (*models.UserProfile, error) {
	if req.ExternalUID == "" || req.Email == "" {
		return nil, fmt.Errorf("external uid and email are required")
	}
	if !validRole(req.Role) {
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}

	profile := &models.UserProfile{
		ID:          uuid.New(),
		ExternalUID: req.ExternalUID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		TenantID:    req.TenantID,
		LandlordID:  req.LandlordID,
	}
	if err := s.userRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfileByUID is the lookup the access controller performs on every
// auth transition. A missing profile is (nil, nil): the caller treats the
// session as unauthenticated rather than erroring.
func (s *profileService) GetProfileByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	if cached, err := s.cacheSvc.GetProfile(ctx, uid); err == nil && cached != nil {
		return cached, nil
	}

	profile, err := s.userRepo.GetByExternalUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup profile %s: %w", uid, err)
	}

	if err := s.cacheSvc.SetProfile(ctx, profile, profileCacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("uid", uid).Msg("failed to cache profile")
	}
	return profile, nil
}

func (s *profileService) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	if !validRole(role) {
		return fmt.Errorf("invalid role %q", role)
	}
	profile, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	profile.Role = role
	if err := s.userRepo.Update(ctx, profile); err != nil {
		return fmt.Errorf("update profile role: %w", err)
	}
	// Role changes must be visible on the next auth resolution.
	if err := s.cacheSvc.DeleteProfile(ctx, profile.ExternalUID); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate cached profile")
	}
	return nil
}

func (s *profileService) List(ctx context.Context, limit, offset int) ([]*models.UserProfile, error) {
	return s.userRepo.List(ctx, limit, offset)
}
