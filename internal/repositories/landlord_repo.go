package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nyumbani/internal/models"
)

type LandlordRepository interface {
	Create(ctx context.Context, landlord *models.Landlord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Landlord, error)
	Update(ctx context.Context, landlord *models.Landlord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Landlord, error)
}

type landlordRepo struct {
	db Database
}

func NewLandlordRepository(db Database) LandlordRepository {
	return &landlordRepo{db: db}
}

func (r *landlordRepo) Create(ctx context.Context, landlord *models.Landlord) error {
	query := `
		INSERT INTO landlords (id, name, email, phone, bank_account, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, landlord.ID, landlord.Name, landlord.Email, landlord.Phone, landlord.BankAccount)
	return err
}

func (r *landlordRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Landlord, error) {
	landlord := &models.Landlord{}
	query := `
		SELECT id, name, email, phone, bank_account, created_at, updated_at
		FROM landlords
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&landlord.ID, &landlord.Name, &landlord.Email,
		&landlord.Phone, &landlord.BankAccount, &landlord.CreatedAt, &landlord.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return landlord, nil
}

func (r *landlordRepo) Update(ctx context.Context, landlord *models.Landlord) error {
	query := `
		UPDATE landlords
		SET name = $1, email = $2, phone = $3, bank_account = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, landlord.Name, landlord.Email, landlord.Phone, landlord.BankAccount, landlord.ID)
	return err
}

func (r *landlordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM landlords WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *landlordRepo) List(ctx context.Context, limit, offset int) ([]*models.Landlord, error) {
	query := `
		SELECT id, name, email, phone, bank_account, created_at, updated_at
		FROM landlords
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var landlords []*models.Landlord
	for rows.Next() {
		landlord := &models.Landlord{}
		if err := rows.Scan(&landlord.ID, &landlord.Name, &landlord.Email, &landlord.Phone,
			&landlord.BankAccount, &landlord.CreatedAt, &landlord.UpdatedAt); err != nil {
			return nil, err
		}
		landlords = append(landlords, landlord)
	}
	return landlords, rows.Err()
}
