package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nyumbani/internal/caching"
	"nyumbani/internal/models"
	"nyumbani/internal/repositories"
)

// TenantService manages tenant records and their leases.
type TenantService interface {
	Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status string) error
	Archive(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, includeArchived bool, limit, offset int) ([]*models.Tenant, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Tenant, error)
	MarkOverdueTenants(ctx context.Context, asOf time.Time) (int, error)
}

type CreateTenantRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	PropertyID uuid.UUID  `json:"property_id"`
	UnitName   string     `json:"unit_name"`
	Rent       *float64   `json:"rent,omitempty"`
	ServiceCharge *float64 `json:"service_charge,omitempty"`
	Deposit    *float64   `json:"deposit,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

type tenantService struct {
	tenantRepo   repositories.TenantRepository
	propertyRepo repositories.PropertyRepository
	cacheSvc     caching.CacheService
	logger       zerolog.Logger
}

func NewTenantService(tenantRepo repositories.TenantRepository, propertyRepo repositories.PropertyRepository,
	cacheSvc caching.CacheService, logger zerolog.Logger) TenantService {
	return &tenantService{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		cacheSvc:     cacheSvc,
		logger:       logger,
	}
}

func (s *tenantService) Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error) {
	if req.Name == "" || req.UnitName == "" {
		return nil, fmt.Errorf("name and unit name are required")
	}
	if req.Rent != nil && *req.Rent < 0 {
		return nil, fmt.Errorf("rent cannot be negative")
	}

	// The unit must exist on the property before a tenant can move in.
	property, err := s.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("resolve property: %w", err)
	}
	unitExists := false
	for _, u := range property.Units {
		if u.Name == req.UnitName {
			unitExists = true
			break
		}
	}
	if !unitExists {
		return nil, fmt.Errorf("property %s has no unit %q", property.Name, req.UnitName)
	}

	tenant := &models.Tenant{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		PropertyID: req.PropertyID,
		UnitName:   req.UnitName,
		Lease: &models.Lease{
			Rent:          req.Rent,
			ServiceCharge: req.ServiceCharge,
			Deposit:       req.Deposit,
			StartDate:     req.StartDate,
			DueDate:       req.DueDate,
			PaymentStatus: models.PaymentStatusPending,
		},
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}

	if err := s.propertyRepo.UpdateUnitStatus(ctx, req.PropertyID, req.UnitName, models.UnitStatusOccupied); err != nil {
		s.logger.Warn().Err(err).Str("unit", req.UnitName).Msg("failed to mark unit occupied")
	}
	s.invalidateSummary(ctx)
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.tenantRepo.GetByID(ctx, id)
}

func (s *tenantService) Update(ctx context.Context, tenant *models.Tenant) error {
	if tenant.Name == "" {
		return fmt.Errorf("name is required")
	}
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	s.invalidateSummary(ctx)
	return nil
}

func (s *tenantService) SetPaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch status {
	case models.PaymentStatusPaid, models.PaymentStatusPending, models.PaymentStatusOverdue:
	default:
		return fmt.Errorf("invalid payment status %q", status)
	}
	if err := s.tenantRepo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	s.invalidateSummary(ctx)
	return nil
}

// Archive removes a tenant from the active roll and frees the unit.
func (s *tenantService) Archive(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tenantRepo.Archive(ctx, id); err != nil {
		return fmt.Errorf("archive tenant: %w", err)
	}
	if err := s.propertyRepo.UpdateUnitStatus(ctx, tenant.PropertyID, tenant.UnitName, models.UnitStatusVacant); err != nil {
		s.logger.Warn().Err(err).Str("unit", tenant.UnitName).Msg("failed to mark unit vacant")
	}
	s.invalidateSummary(ctx)
	return nil
}

func (s *tenantService) List(ctx context.Context, includeArchived bool, limit, offset int) ([]*models.Tenant, error) {
	return s.tenantRepo.List(ctx, includeArchived, limit, offset)
}

func (s *tenantService) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Tenant, error) {
	return s.tenantRepo.ListByProperty(ctx, propertyID)
}

// MarkOverdueTenants flips pending leases past their due date to Overdue.
// Run nightly by the scheduler. Returns the number of tenants flipped.
func (s *tenantService) MarkOverdueTenants(ctx context.Context, asOf time.Time) (int, error) {
	due, err := s.tenantRepo.ListDueBefore(ctx, asOf.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("list due tenants: %w", err)
	}

	var flipped int
	for _, tenant := range due {
		if err := s.tenantRepo.UpdatePaymentStatus(ctx, tenant.ID, models.PaymentStatusOverdue); err != nil {
			s.logger.Error().Err(err).Str("tenant", tenant.Name).Msg("failed to mark overdue")
			continue
		}
		flipped++
	}
	if flipped > 0 {
		s.invalidateSummary(ctx)
	}
	return flipped, nil
}

func (s *tenantService) invalidateSummary(ctx context.Context) {
	if err := s.cacheSvc.InvalidateFinancialSummary(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate financial summary cache")
	}
}
