package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nyumbani/internal/models"
	"nyumbani/internal/repositories"
)

// ActivityLogService writes the audit trail. Record failures are logged
// and swallowed so an audit hiccup never fails the request it describes.
type ActivityLogService interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entityType string, entityID, detail *string)
	List(ctx context.Context, limit, offset int) ([]*models.ActivityLog, error)
	ListByEntity(ctx context.Context, entityType string, limit, offset int) ([]*models.ActivityLog, error)
}

type activityLogService struct {
	logRepo repositories.ActivityLogRepository
	logger  zerolog.Logger
}

func NewActivityLogService(logRepo repositories.ActivityLogRepository, logger zerolog.Logger) ActivityLogService {
	return &activityLogService{logRepo: logRepo, logger: logger}
}

func (s *activityLogService) Record(ctx context.Context, userID *uuid.UUID, action, entityType string, entityID, detail *string) {
	entry := &models.ActivityLog{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("action", action).Str("entity_type", entityType).Msg("failed to record activity")
	}
}

func (s *activityLogService) List(ctx context.Context, limit, offset int) ([]*models.ActivityLog, error) {
	return s.logRepo.List(ctx, limit, offset)
}

func (s *activityLogService) ListByEntity(ctx context.Context, entityType string, limit, offset int) ([]*models.ActivityLog, error) {
	return s.logRepo.ListByEntity(ctx, entityType, limit, offset)
}
