package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nyumbani/internal/caching"
	"nyumbani/internal/common"
	"nyumbani/internal/finance"
	"nyumbani/internal/models"
	"nyumbani/internal/repositories"
)

// PaymentService records payments and answers per-payment breakdowns.
type PaymentService interface {
	Record(ctx context.Context, req *RecordPaymentRequest) (*models.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Payment, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error)
	Breakdown(ctx context.Context, paymentID uuid.UUID) (*finance.Breakdown, error)
}

type RecordPaymentRequest struct {
	TenantID uuid.UUID  `json:"tenant_id"`
	Amount   float64    `json:"amount"`
	Date     *time.Time `json:"date,omitempty"`
	Type     *string    `json:"type,omitempty"`
	Method   *string    `json:"method,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	tenantRepo  repositories.TenantRepository
	cacheSvc    caching.CacheService
	feePolicy   finance.FeePolicy
	logger      zerolog.Logger
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, tenantRepo repositories.TenantRepository,
	cacheSvc caching.CacheService, feePolicy finance.FeePolicy, logger zerolog.Logger) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		cacheSvc:    cacheSvc,
		feePolicy:   feePolicy,
		logger:      logger,
	}
}

func validPaymentType(t string) bool {
	switch t {
	case models.PaymentTypeRent, models.PaymentTypeDeposit, models.PaymentTypeServiceCharge,
		models.PaymentTypeUtility, models.PaymentTypeOther:
		return true
	}
	return false
}

func (s *paymentService) Record(ctx context.Context, req *RecordPaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if req.Type != nil && !validPaymentType(*req.Type) {
		return nil, fmt.Errorf("invalid payment type %q", *req.Type)
	}

	tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve tenant: %w", err)
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	payment := &models.Payment{
		ID:       uuid.New(),
		TenantID: req.TenantID,
		Amount:   req.Amount,
		Date:     date,
		Type:     req.Type,
		Method:   req.Method,
		Notes:    req.Notes,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	// A rent payment covering the full rent settles the lease.
	if tenant.Lease != nil && tenant.Lease.Rent != nil {
		isRent := req.Type == nil || *req.Type == models.PaymentTypeRent
		if isRent && req.Amount >= *tenant.Lease.Rent {
			if err := s.tenantRepo.UpdatePaymentStatus(ctx, tenant.ID, models.PaymentStatusPaid); err != nil {
				s.logger.Warn().Err(err).Str("tenant", tenant.Name).Msg("failed to settle lease status")
			}
		}
	}

	if err := s.cacheSvc.InvalidateFinancialSummary(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate financial summary cache")
	}
	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) ListAll(ctx context.Context, limit, offset int) ([]*models.Payment, error) {
	return s.paymentRepo.ListAll(ctx, limit, offset)
}

func (s *paymentService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error) {
	return s.paymentRepo.ListByTenant(ctx, tenantID)
}

// Breakdown returns the management-fee split for a single payment.
// Deposits are not fee-bearing and are rejected outright.
func (s *paymentService) Breakdown(ctx context.Context, paymentID uuid.UUID) (*finance.Breakdown, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Type != nil && *payment.Type == models.PaymentTypeDeposit {
		return nil, fmt.Errorf("deposits carry no management fee")
	}

	var serviceCharge float64
	tenant, err := s.tenantRepo.GetByID(ctx, payment.TenantID)
	if err == nil && tenant.Lease != nil {
		serviceCharge = common.SafeFloat64(tenant.Lease.ServiceCharge)
	}

	breakdown := s.feePolicy.TransactionBreakdown(payment.Amount, serviceCharge)
	return &breakdown, nil
}
