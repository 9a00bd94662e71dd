package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"nyumbani/internal/finance"
	"nyumbani/internal/models"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	paymentRepo  *MockPaymentRepository
	tenantRepo   *MockTenantRepository
	propertyRepo *MockPropertyRepository
	cacheSvc     *MockCacheService
	service      DashboardService
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.paymentRepo = &MockPaymentRepository{}
	suite.tenantRepo = &MockTenantRepository{}
	suite.propertyRepo = &MockPropertyRepository{}
	suite.cacheSvc = &MockCacheService{}
	suite.service = NewDashboardService(suite.paymentRepo, suite.tenantRepo, suite.propertyRepo,
		suite.cacheSvc, finance.DefaultFeePolicy, zerolog.Nop())

	suite.paymentRepo.Test(suite.T())
	suite.tenantRepo.Test(suite.T())
	suite.propertyRepo.Test(suite.T())
	suite.cacheSvc.Test(suite.T())
}

func (suite *DashboardServiceTestSuite) TearDownTest() {
	suite.paymentRepo.AssertExpectations(suite.T())
	suite.tenantRepo.AssertExpectations(suite.T())
	suite.propertyRepo.AssertExpectations(suite.T())
	suite.cacheSvc.AssertExpectations(suite.T())
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

func (suite *DashboardServiceTestSuite) TestFinancialSummary_CacheHit() {
	ctx := context.Background()
	cached := &finance.Summary{Collected: 3000, Pending: 500}

	suite.cacheSvc.On("GetFinancialSummary", ctx).Return(cached, nil)

	summary, err := suite.service.FinancialSummary(ctx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, summary)
	suite.paymentRepo.AssertNotCalled(suite.T(), "ListAll", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DashboardServiceTestSuite) TestFinancialSummary_ComputesOnMiss() {
	ctx := context.Background()
	rent := 1000.0
	serviceCharge := 400.0

	tenantID := uuid.New()
	tenants := []*models.Tenant{
		{
			ID: tenantID,
			Lease: &models.Lease{
				Rent:          &rent,
				ServiceCharge: &serviceCharge,
				PaymentStatus: models.PaymentStatusPaid,
			},
		},
	}
	payments := []*models.Payment{
		{ID: uuid.New(), TenantID: tenantID, Amount: 1000},
	}

	suite.cacheSvc.On("GetFinancialSummary", ctx).Return(nil, errors.New("cache miss"))
	suite.paymentRepo.On("ListAll", ctx, aggregateFetchLimit, 0).Return(payments, nil)
	suite.tenantRepo.On("List", ctx, false, aggregateFetchLimit, 0).Return(tenants, nil)
	suite.cacheSvc.On("SetFinancialSummary", ctx, mock.AnythingOfType("*finance.Summary"), summaryCacheTTL).Return(nil)

	summary, err := suite.service.FinancialSummary(ctx)
	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 1000.0, summary.Collected, 1e-9)
	// Fee is 10% of the fee-bearing portion, capped at the service charge.
	assert.InDelta(suite.T(), 40.0, summary.ManagementFee, 1e-9)
}

func (suite *DashboardServiceTestSuite) TestOccupancyRate_EmptyPortfolio() {
	ctx := context.Background()

	suite.tenantRepo.On("List", ctx, false, aggregateFetchLimit, 0).Return([]*models.Tenant{}, nil)
	suite.propertyRepo.On("List", ctx, aggregateFetchLimit, 0).Return([]*models.Property{}, nil)

	rate, err := suite.service.OccupancyRate(ctx)
	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), rate)
}

func (suite *DashboardServiceTestSuite) TestOccupancyRate_UnionOfSources() {
	ctx := context.Background()
	propertyID := uuid.New()

	// One tenant in A1 plus an airbnb unit A2; A3 stays vacant.
	tenants := []*models.Tenant{
		{ID: uuid.New(), PropertyID: propertyID, UnitName: "A1"},
	}
	properties := []*models.Property{
		{
			ID: propertyID,
			Units: []models.Unit{
				{Name: "A1", Status: models.UnitStatusVacant},
				{Name: "A2", Status: models.UnitStatusAirbnb},
				{Name: "A3", Status: models.UnitStatusVacant},
			},
		},
	}

	suite.tenantRepo.On("List", ctx, false, aggregateFetchLimit, 0).Return(tenants, nil)
	suite.propertyRepo.On("List", ctx, aggregateFetchLimit, 0).Return(properties, nil)

	rate, err := suite.service.OccupancyRate(ctx)
	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 200.0/3.0, rate, 1e-9)
}

func (suite *DashboardServiceTestSuite) TestRefreshSummaryCache() {
	ctx := context.Background()

	suite.paymentRepo.On("ListAll", ctx, aggregateFetchLimit, 0).Return([]*models.Payment{}, nil)
	suite.tenantRepo.On("List", ctx, false, aggregateFetchLimit, 0).Return([]*models.Tenant{}, nil)
	suite.cacheSvc.On("SetFinancialSummary", ctx, mock.AnythingOfType("*finance.Summary"), summaryCacheTTL).Return(nil)

	err := suite.service.RefreshSummaryCache(ctx)
	assert.NoError(suite.T(), err)
}
