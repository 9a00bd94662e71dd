package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nyumbani/internal/common"
	"nyumbani/internal/models"
	"nyumbani/internal/repositories"
)

type MaintenanceService interface {
	Create(ctx context.Context, req *CreateMaintenanceRequest) (*models.MaintenanceRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, limit, offset int) ([]*models.MaintenanceRequest, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequest, error)
	ListOpen(ctx context.Context) ([]*models.MaintenanceRequest, error)
}

type CreateMaintenanceRequest struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

type maintenanceService struct {
	maintenanceRepo repositories.MaintenanceRepository
	tenantRepo      repositories.TenantRepository
}

func NewMaintenanceService(maintenanceRepo repositories.MaintenanceRepository, tenantRepo repositories.TenantRepository) MaintenanceService {
	return &maintenanceService{maintenanceRepo: maintenanceRepo, tenantRepo: tenantRepo}
}

func validMaintenanceStatus(status string) bool {
	switch status {
	case models.MaintenanceStatusOpen, models.MaintenanceStatusInProgress, models.MaintenanceStatusCompleted:
		return true
	}
	return false
}

// Create opens a request against the unit the tenant currently occupies.
func (s *maintenanceService) Create(ctx context.Context, req *CreateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	if err := common.ValidateRequiredString(req.Title, "title"); err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve tenant: %w", err)
	}

	mr := &models.MaintenanceRequest{
		ID:          uuid.New(),
		TenantID:    tenant.ID,
		PropertyID:  tenant.PropertyID,
		UnitName:    tenant.UnitName,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.MaintenanceStatusOpen,
	}
	if err := s.maintenanceRepo.Create(ctx, mr); err != nil {
		return nil, fmt.Errorf("create maintenance request: %w", err)
	}
	return mr, nil
}

func (s *maintenanceService) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	return s.maintenanceRepo.GetByID(ctx, id)
}

func (s *maintenanceService) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validMaintenanceStatus(status) {
		return fmt.Errorf("invalid maintenance status %q", status)
	}
	var resolvedAt *time.Time
	if status == models.MaintenanceStatusCompleted {
		now := time.Now()
		resolvedAt = &now
	}
	return s.maintenanceRepo.UpdateStatus(ctx, id, status, resolvedAt)
}

func (s *maintenanceService) List(ctx context.Context, limit, offset int) ([]*models.MaintenanceRequest, error) {
	return s.maintenanceRepo.List(ctx, limit, offset)
}

func (s *maintenanceService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequest, error) {
	return s.maintenanceRepo.ListByTenant(ctx, tenantID)
}

func (s *maintenanceService) ListOpen(ctx context.Context) ([]*models.MaintenanceRequest, error) {
	return s.maintenanceRepo.ListOpen(ctx)
}
