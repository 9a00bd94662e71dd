package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"nyumbani/internal/caching"
	"nyumbani/internal/finance"
	"nyumbani/internal/repositories"
)

const (
	summaryCacheTTL = 5 * time.Minute

	// Single-agency portfolios stay well under this. Pagination is for the
	// list endpoints, not the aggregate.
	aggregateFetchLimit = 10000
)

// DashboardService derives the headline figures for the admin dashboard:
// the financial summary and the portfolio occupancy rate.
type DashboardService interface {
	FinancialSummary(ctx context.Context) (*finance.Summary, error)
	OccupancyRate(ctx context.Context) (float64, error)
	RefreshSummaryCache(ctx context.Context) error
}

type dashboardService struct {
	paymentRepo  repositories.PaymentRepository
	tenantRepo   repositories.TenantRepository
	propertyRepo repositories.PropertyRepository
	cacheSvc     caching.CacheService
	feePolicy    finance.FeePolicy
	logger       zerolog.Logger
}

func NewDashboardService(paymentRepo repositories.PaymentRepository, tenantRepo repositories.TenantRepository,
	propertyRepo repositories.PropertyRepository, cacheSvc caching.CacheService,
	feePolicy finance.FeePolicy, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		paymentRepo:  paymentRepo,
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		cacheSvc:     cacheSvc,
		feePolicy:    feePolicy,
		logger:       logger,
	}
}

func (s *dashboardService) FinancialSummary(ctx context.Context) (*finance.Summary, error) {
	if cached, err := s.cacheSvc.GetFinancialSummary(ctx); err == nil && cached != nil {
		return cached, nil
	}

	summary, err := s.computeSummary(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetFinancialSummary(ctx, summary, summaryCacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache financial summary")
	}
	return summary, nil
}

func (s *dashboardService) computeSummary(ctx context.Context) (*finance.Summary, error) {
	payments, err := s.paymentRepo.ListAll(ctx, aggregateFetchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	tenants, err := s.tenantRepo.List(ctx, false, aggregateFetchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("load tenants: %w", err)
	}

	summary := finance.Aggregate(payments, tenants, s.feePolicy)
	return &summary, nil
}

func (s *dashboardService) OccupancyRate(ctx context.Context) (float64, error) {
	tenants, err := s.tenantRepo.List(ctx, false, aggregateFetchLimit, 0)
	if err != nil {
		return 0, fmt.Errorf("load tenants: %w", err)
	}
	properties, err := s.propertyRepo.List(ctx, aggregateFetchLimit, 0)
	if err != nil {
		return 0, fmt.Errorf("load properties: %w", err)
	}
	return finance.PortfolioOccupancy(tenants, properties), nil
}

// RefreshSummaryCache recomputes the summary and writes it through.
// Called by the scheduler so the dashboard rarely pays the compute cost.
func (s *dashboardService) RefreshSummaryCache(ctx context.Context) error {
	summary, err := s.computeSummary(ctx)
	if err != nil {
		return err
	}
	return s.cacheSvc.SetFinancialSummary(ctx, summary, summaryCacheTTL)
}
