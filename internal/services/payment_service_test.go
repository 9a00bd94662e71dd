package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"nyumbani/internal/finance"
	"nyumbani/internal/models"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	paymentRepo *MockPaymentRepository
	tenantRepo  *MockTenantRepository
	cacheSvc    *MockCacheService
	service     PaymentService
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.paymentRepo = &MockPaymentRepository{}
	suite.tenantRepo = &MockTenantRepository{}
	suite.cacheSvc = &MockCacheService{}
	suite.service = NewPaymentService(suite.paymentRepo, suite.tenantRepo, suite.cacheSvc,
		finance.DefaultFeePolicy, zerolog.Nop())

	suite.paymentRepo.Test(suite.T())
	suite.tenantRepo.Test(suite.T())
	suite.cacheSvc.Test(suite.T())
}

func (suite *PaymentServiceTestSuite) TearDownTest() {
	suite.paymentRepo.AssertExpectations(suite.T())
	suite.tenantRepo.AssertExpectations(suite.T())
	suite.cacheSvc.AssertExpectations(suite.T())
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (suite *PaymentServiceTestSuite) TestRecord_FullRentSettlesLease() {
	ctx := context.Background()
	tenantID := uuid.New()
	rent := 1000.0

	tenant := &models.Tenant{
		ID:   tenantID,
		Name: "Jane Wanjiku",
		Lease: &models.Lease{
			Rent:          &rent,
			PaymentStatus: models.PaymentStatusPending,
		},
	}
	suite.tenantRepo.On("GetByID", ctx, tenantID).Return(tenant, nil)
	suite.paymentRepo.On("Create", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)
	suite.tenantRepo.On("UpdatePaymentStatus", ctx, tenantID, models.PaymentStatusPaid).Return(nil)
	suite.cacheSvc.On("InvalidateFinancialSummary", ctx).Return(nil)

	payment, err := suite.service.Record(ctx, &RecordPaymentRequest{
		TenantID: tenantID,
		Amount:   1000,
	})
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), payment)
	assert.Equal(suite.T(), 1000.0, payment.Amount)
}

func (suite *PaymentServiceTestSuite) TestRecord_PartialRentLeavesStatus() {
	ctx := context.Background()
	tenantID := uuid.New()
	rent := 1000.0

	tenant := &models.Tenant{
		ID:   tenantID,
		Name: "Jane Wanjiku",
		Lease: &models.Lease{
			Rent:          &rent,
			PaymentStatus: models.PaymentStatusPending,
		},
	}
	suite.tenantRepo.On("GetByID", ctx, tenantID).Return(tenant, nil)
	suite.paymentRepo.On("Create", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)
	suite.cacheSvc.On("InvalidateFinancialSummary", ctx).Return(nil)

	_, err := suite.service.Record(ctx, &RecordPaymentRequest{
		TenantID: tenantID,
		Amount:   400,
	})
	assert.NoError(suite.T(), err)
	suite.tenantRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus", ctx, tenantID, models.PaymentStatusPaid)
}

func (suite *PaymentServiceTestSuite) TestRecord_RejectsNonPositiveAmount() {
	_, err := suite.service.Record(context.Background(), &RecordPaymentRequest{
		TenantID: uuid.New(),
		Amount:   0,
	})
	assert.Error(suite.T(), err)
}

func (suite *PaymentServiceTestSuite) TestRecord_RejectsUnknownType() {
	badType := "Barter"
	_, err := suite.service.Record(context.Background(), &RecordPaymentRequest{
		TenantID: uuid.New(),
		Amount:   100,
		Type:     &badType,
	})
	assert.Error(suite.T(), err)
}

func (suite *PaymentServiceTestSuite) TestBreakdown_CapsFeeAtServiceCharge() {
	ctx := context.Background()
	paymentID := uuid.New()
	tenantID := uuid.New()
	serviceCharge := 400.0

	payment := &models.Payment{ID: paymentID, TenantID: tenantID, Amount: 1000}
	tenant := &models.Tenant{
		ID:    tenantID,
		Lease: &models.Lease{ServiceCharge: &serviceCharge},
	}
	suite.paymentRepo.On("GetByID", ctx, paymentID).Return(payment, nil)
	suite.tenantRepo.On("GetByID", ctx, tenantID).Return(tenant, nil)

	breakdown, err := suite.service.Breakdown(ctx, paymentID)
	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 40.0, breakdown.ManagementFee, 1e-9)
	assert.InDelta(suite.T(), 600.0, breakdown.Excess, 1e-9)
}

func (suite *PaymentServiceTestSuite) TestBreakdown_RejectsDeposits() {
	ctx := context.Background()
	paymentID := uuid.New()
	depositType := models.PaymentTypeDeposit

	payment := &models.Payment{ID: paymentID, TenantID: uuid.New(), Amount: 500, Type: &depositType}
	suite.paymentRepo.On("GetByID", ctx, paymentID).Return(payment, nil)

	_, err := suite.service.Breakdown(ctx, paymentID)
	assert.Error(suite.T(), err)
}
