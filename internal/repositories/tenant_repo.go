package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nyumbani/internal/models"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error
	Archive(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, includeArchived bool, limit, offset int) ([]*models.Tenant, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Tenant, error)
	ListDueBefore(ctx context.Context, cutoff string) ([]*models.Tenant, error)
}

type tenantRepo struct {
	db Database
}

func NewTenantRepository(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

const tenantColumns = `
	id, name, email, phone, property_id, unit_name, archived,
	rent, service_charge, deposit, lease_start, lease_due, payment_status,
	created_at, updated_at
`

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	lease := tenant.Lease
	if lease == nil {
		lease = &models.Lease{PaymentStatus: models.PaymentStatusPending}
	}
	query := `
		INSERT INTO tenants (id, name, email, phone, property_id, unit_name, archived,
			rent, service_charge, deposit, lease_start, lease_due, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tenant.ID, tenant.Name, tenant.Email, tenant.Phone,
		tenant.PropertyID, tenant.UnitName, tenant.Archived,
		lease.Rent, lease.ServiceCharge, lease.Deposit, lease.StartDate, lease.DueDate, lease.PaymentStatus)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	tenant, err := scanTenant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	lease := tenant.Lease
	if lease == nil {
		lease = &models.Lease{PaymentStatus: models.PaymentStatusPending}
	}
	query := `
		UPDATE tenants
		SET name = $1, email = $2, phone = $3, property_id = $4, unit_name = $5,
			rent = $6, service_charge = $7, deposit = $8, lease_start = $9, lease_due = $10,
			payment_status = $11, updated_at = NOW()
		WHERE id = $12
	`
	_, err := r.db.Exec(ctx, query, tenant.Name, tenant.Email, tenant.Phone,
		tenant.PropertyID, tenant.UnitName,
		lease.Rent, lease.ServiceCharge, lease.Deposit, lease.StartDate, lease.DueDate,
		lease.PaymentStatus, tenant.ID)
	return err
}

func (r *tenantRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE tenants SET payment_status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *tenantRepo) Archive(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE tenants SET archived = TRUE, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *tenantRepo) List(ctx context.Context, includeArchived bool, limit, offset int) ([]*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE archived = FALSE OR $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, includeArchived, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTenants(rows)
}

func (r *tenantRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE property_id = $1 AND archived = FALSE
		ORDER BY unit_name
	`
	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTenants(rows)
}

// ListDueBefore returns active tenants whose lease due date has passed and
// whose rent is still pending. Used by the overdue sweep.
func (r *tenantRepo) ListDueBefore(ctx context.Context, cutoff string) ([]*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE archived = FALSE AND payment_status = $1 AND lease_due < $2
		ORDER BY lease_due
	`
	rows, err := r.db.Query(ctx, query, models.PaymentStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTenants(rows)
}

func scanTenant(row rowScanner) (*models.Tenant, error) {
	tenant := &models.Tenant{Lease: &models.Lease{}}
	err := row.Scan(&tenant.ID, &tenant.Name, &tenant.Email, &tenant.Phone,
		&tenant.PropertyID, &tenant.UnitName, &tenant.Archived,
		&tenant.Lease.Rent, &tenant.Lease.ServiceCharge, &tenant.Lease.Deposit,
		&tenant.Lease.StartDate, &tenant.Lease.DueDate, &tenant.Lease.PaymentStatus,
		&tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func collectTenants(rows pgx.Rows) ([]*models.Tenant, error) {
	var tenants []*models.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}
