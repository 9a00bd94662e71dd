package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"nyumbani/internal/models"
)

type PaymentRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     PaymentRepository
	tenantID uuid.UUID
	ctx      context.Context
}

func (suite *PaymentRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewPaymentRepository(mock)
	suite.tenantID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *PaymentRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestPaymentRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentRepoTestSuite))
}

func (suite *PaymentRepoTestSuite) TestCreate() {
	rentType := models.PaymentTypeRent
	payment := &models.Payment{
		ID:       uuid.New(),
		TenantID: suite.tenantID,
		Amount:   15000,
		Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Type:     &rentType,
	}

	suite.mock.ExpectExec(`INSERT INTO payments`).
		WithArgs(payment.ID, payment.TenantID, payment.Amount, payment.Date,
			payment.Type, payment.Method, payment.Notes).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, payment)
	assert.NoError(suite.T(), err)
}

func (suite *PaymentRepoTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	suite.mock.ExpectQuery(`SELECT id, tenant_id, amount, paid_at`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	payment, err := suite.repo.GetByID(suite.ctx, id)
	assert.Nil(suite.T(), payment)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *PaymentRepoTestSuite) TestListByTenant() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "tenant_id", "amount", "paid_at", "payment_type", "method", "notes", "created_at",
	}).
		AddRow(uuid.New(), suite.tenantID, 15000.0, now, nil, nil, nil, now).
		AddRow(uuid.New(), suite.tenantID, 2500.0, now, nil, nil, nil, now)

	suite.mock.ExpectQuery(`SELECT id, tenant_id, amount, paid_at`).
		WithArgs(suite.tenantID).
		WillReturnRows(rows)

	payments, err := suite.repo.ListByTenant(suite.ctx, suite.tenantID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), payments, 2)
	assert.Equal(suite.T(), 15000.0, payments[0].Amount)
	assert.Equal(suite.T(), 2500.0, payments[1].Amount)
}
