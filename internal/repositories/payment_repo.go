package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nyumbani/internal/models"
)

// PaymentRepository is append-only: payments are never updated or deleted
// once recorded.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Payment, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*models.Payment, error)
}

type paymentRepo struct {
	db Database
}

func NewPaymentRepository(db Database) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, tenant_id, amount, paid_at, payment_type, method, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, payment.ID, payment.TenantID, payment.Amount,
		payment.Date, payment.Type, payment.Method, payment.Notes)
	return err
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	query := `
		SELECT id, tenant_id, amount, paid_at, payment_type, method, notes, created_at
		FROM payments
		WHERE id = $1
	`
	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepo) ListAll(ctx context.Context, limit, offset int) ([]*models.Payment, error) {
	query := `
		SELECT id, tenant_id, amount, paid_at, payment_type, method, notes, created_at
		FROM payments
		ORDER BY paid_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *paymentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error) {
	query := `
		SELECT id, tenant_id, amount, paid_at, payment_type, method, notes, created_at
		FROM payments
		WHERE tenant_id = $1
		ORDER BY paid_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *paymentRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Payment, error) {
	query := `
		SELECT id, tenant_id, amount, paid_at, payment_type, method, notes, created_at
		FROM payments
		WHERE paid_at >= $1 AND paid_at < $2
		ORDER BY paid_at
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	payment := &models.Payment{}
	err := row.Scan(&payment.ID, &payment.TenantID, &payment.Amount, &payment.Date,
		&payment.Type, &payment.Method, &payment.Notes, &payment.CreatedAt)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func collectPayments(rows pgx.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
