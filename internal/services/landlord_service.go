package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"nyumbani/internal/models"
	"nyumbani/internal/repositories"
)

type LandlordService interface {
	Create(ctx context.Context, req *CreateLandlordRequest) (*models.Landlord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Landlord, error)
	Update(ctx context.Context, landlord *models.Landlord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Landlord, error)
}

type CreateLandlordRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	BankAccount *string `json:"bank_account,omitempty"`
}

type landlordService struct {
	landlordRepo repositories.LandlordRepository
	propertyRepo repositories.PropertyRepository
}

func NewLandlordService(landlordRepo repositories.LandlordRepository, propertyRepo repositories.PropertyRepository) LandlordService {
	return &landlordService{landlordRepo: landlordRepo, propertyRepo: propertyRepo}
}

func (s *landlordService) Create(ctx context.Context, req *CreateLandlordRequest) (*models.Landlord, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("landlord name is required")
	}
	landlord := &models.Landlord{
		ID:          uuid.New(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		BankAccount: req.BankAccount,
	}
	if err := s.landlordRepo.Create(ctx, landlord); err != nil {
		return nil, fmt.Errorf("create landlord: %w", err)
	}
	return landlord, nil
}

func (s *landlordService) GetByID(ctx context.Context, id uuid.UUID) (*models.Landlord, error) {
	return s.landlordRepo.GetByID(ctx, id)
}

func (s *landlordService) Update(ctx context.Context, landlord *models.Landlord) error {
	if landlord.Name == "" {
		return fmt.Errorf("landlord name is required")
	}
	return s.landlordRepo.Update(ctx, landlord)
}

// Delete refuses to remove a landlord who still owns properties.
func (s *landlordService) Delete(ctx context.Context, id uuid.UUID) error {
	properties, err := s.propertyRepo.ListByLandlord(ctx, id)
	if err != nil {
		return fmt.Errorf("check landlord properties: %w", err)
	}
	if len(properties) > 0 {
		return fmt.Errorf("landlord owns %d properties", len(properties))
	}
	return s.landlordRepo.Delete(ctx, id)
}

func (s *landlordService) List(ctx context.Context, limit, offset int) ([]*models.Landlord, error) {
	return s.landlordRepo.List(ctx, limit, offset)
}
