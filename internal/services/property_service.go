package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"nyumbani/internal/models"
	"nyumbani/internal/repositories"
)

type PropertyService interface {
	Create(ctx context.Context, req *CreatePropertyRequest) (*models.Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	SetUnitStatus(ctx context.Context, id uuid.UUID, unitName, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Property, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error)
}

type CreatePropertyRequest struct {
	Name       string        `json:"name"`
	Address    string        `json:"address"`
	LandlordID *uuid.UUID    `json:"landlord_id,omitempty"`
	Units      []models.Unit `json:"units"`
}

type propertyService struct {
	propertyRepo repositories.PropertyRepository
	tenantRepo   repositories.TenantRepository
}

func NewPropertyService(propertyRepo repositories.PropertyRepository, tenantRepo repositories.TenantRepository) PropertyService {
	return &propertyService{propertyRepo: propertyRepo, tenantRepo: tenantRepo}
}

func (s *propertyService) Create(ctx context.Context, req *CreatePropertyRequest) (*models.Property, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("property name is required")
	}
	seen := make(map[string]bool, len(req.Units))
	for i := range req.Units {
		if req.Units[i].Name == "" {
			return nil, fmt.Errorf("unit name is required")
		}
		if seen[req.Units[i].Name] {
			return nil, fmt.Errorf("duplicate unit name %q", req.Units[i].Name)
		}
		seen[req.Units[i].Name] = true
		if req.Units[i].Status == "" {
			req.Units[i].Status = models.UnitStatusVacant
		}
	}

	property := &models.Property{
		ID:         uuid.New(),
		Name:       req.Name,
		Address:    req.Address,
		LandlordID: req.LandlordID,
		Units:      req.Units,
	}
	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return property, nil
}

func (s *propertyService) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return s.propertyRepo.GetByID(ctx, id)
}

func (s *propertyService) Update(ctx context.Context, property *models.Property) error {
	if property.Name == "" {
		return fmt.Errorf("property name is required")
	}
	return s.propertyRepo.Update(ctx, property)
}

func (s *propertyService) SetUnitStatus(ctx context.Context, id uuid.UUID, unitName, status string) error {
	if unitName == "" || status == "" {
		return fmt.Errorf("unit name and status are required")
	}
	return s.propertyRepo.UpdateUnitStatus(ctx, id, unitName, status)
}

// Delete refuses to remove a property that still has active tenants.
func (s *propertyService) Delete(ctx context.Context, id uuid.UUID) error {
	tenants, err := s.tenantRepo.ListByProperty(ctx, id)
	if err != nil {
		return fmt.Errorf("check property tenants: %w", err)
	}
	if len(tenants) > 0 {
		return fmt.Errorf("property has %d active tenants", len(tenants))
	}
	return s.propertyRepo.Delete(ctx, id)
}

func (s *propertyService) List(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	return s.propertyRepo.List(ctx, limit, offset)
}

func (s *propertyService) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	return s.propertyRepo.ListByLandlord(ctx, landlordID)
}
