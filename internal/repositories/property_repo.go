package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nyumbani/internal/models"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	UpdateUnitStatus(ctx context.Context, id uuid.UUID, unitName, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Property, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error)
}

type propertyRepo struct {
	db Database
}

func NewPropertyRepository(db Database) PropertyRepository {
	return &propertyRepo{db: db}
}

// Units are stored as a JSONB array on the property row, mirroring the
// nested unit documents of the source data.
func (r *propertyRepo) Create(ctx context.Context, property *models.Property) error {
	units, err := json.Marshal(property.Units)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO properties (id, name, address, landlord_id, units, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, property.ID, property.Name, property.Address, property.LandlordID, units)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	query := `
		SELECT id, name, address, landlord_id, units, created_at, updated_at
		FROM properties
		WHERE id = $1
	`
	property, err := scanProperty(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return property, nil
}

func (r *propertyRepo) Update(ctx context.Context, property *models.Property) error {
	units, err := json.Marshal(property.Units)
	if err != nil {
		return err
	}
	query := `
		UPDATE properties
		SET name = $1, address = $2, landlord_id = $3, units = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err = r.db.Exec(ctx, query, property.Name, property.Address, property.LandlordID, units, property.ID)
	return err
}

// UpdateUnitStatus rewrites the status of a single unit inside the JSONB
// array without touching the rest of the row.
func (r *propertyRepo) UpdateUnitStatus(ctx context.Context, id uuid.UUID, unitName, status string) error {
	property, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	found := false
	for i := range property.Units {
		if property.Units[i].Name == unitName {
			property.Units[i].Status = status
			found = true
		}
	}
	if !found {
		return ErrNotFound
	}
	return r.Update(ctx, property)
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM properties WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *propertyRepo) List(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	query := `
		SELECT id, name, address, landlord_id, units, created_at, updated_at
		FROM properties
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

func (r *propertyRepo) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	query := `
		SELECT id, name, address, landlord_id, units, created_at, updated_at
		FROM properties
		WHERE landlord_id = $1
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

func scanProperty(row rowScanner) (*models.Property, error) {
	property := &models.Property{}
	var units []byte
	err := row.Scan(&property.ID, &property.Name, &property.Address, &property.LandlordID,
		&units, &property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(units) > 0 {
		if err := json.Unmarshal(units, &property.Units); err != nil {
			return nil, err
		}
	}
	return property, nil
}

func collectProperties(rows pgx.Rows) ([]*models.Property, error) {
	var properties []*models.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, rows.Err()
}
