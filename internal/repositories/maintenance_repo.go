package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nyumbani/internal/models"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, req *models.MaintenanceRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, resolvedAt *time.Time) error
	List(ctx context.Context, limit, offset int) ([]*models.MaintenanceRequest, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequest, error)
	ListOpen(ctx context.Context) ([]*models.MaintenanceRequest, error)
}

type maintenanceRepo struct {
	db Database
}

func NewMaintenanceRepository(db Database) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

const maintenanceColumns = `
	id, tenant_id, property_id, unit_name, title, description, status, resolved_at, created_at, updated_at
`

func (r *maintenanceRepo) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (id, tenant_id, property_id, unit_name, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, req.ID, req.TenantID, req.PropertyID, req.UnitName,
		req.Title, req.Description, req.Status)
	return err
}

func (r *maintenanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE id = $1`
	req, err := scanMaintenance(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *maintenanceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, resolvedAt *time.Time) error {
	query := `
		UPDATE maintenance_requests
		SET status = $1, resolved_at = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, status, resolvedAt, id)
	return err
}

func (r *maintenanceRepo) List(ctx context.Context, limit, offset int) ([]*models.MaintenanceRequest, error) {
	query := `
		SELECT ` + maintenanceColumns + `
		FROM maintenance_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMaintenance(rows)
}

func (r *maintenanceRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequest, error) {
	query := `
		SELECT ` + maintenanceColumns + `
		FROM maintenance_requests
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMaintenance(rows)
}

func (r *maintenanceRepo) ListOpen(ctx context.Context) ([]*models.MaintenanceRequest, error) {
	query := `
		SELECT ` + maintenanceColumns + `
		FROM maintenance_requests
		WHERE status <> $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, models.MaintenanceStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMaintenance(rows)
}

func scanMaintenance(row rowScanner) (*models.MaintenanceRequest, error) {
	req := &models.MaintenanceRequest{}
	err := row.Scan(&req.ID, &req.TenantID, &req.PropertyID, &req.UnitName,
		&req.Title, &req.Description, &req.Status, &req.ResolvedAt,
		&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func collectMaintenance(rows pgx.Rows) ([]*models.MaintenanceRequest, error) {
	var reqs []*models.MaintenanceRequest
	for rows.Next() {
		req, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
