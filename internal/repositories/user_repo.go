package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nyumbani/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, profile *models.UserProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	GetByExternalUID(ctx context.Context, uid string) (*models.UserProfile, error)
	Update(ctx context.Context, profile *models.UserProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.UserProfile, error)
}

type userRepo struct {
	db Database
}

func NewUserRepository(db Database) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, profile *models.UserProfile) error {
	ownerDetails, err := marshalOwnerDetails(profile.OwnerDetails)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO user_profiles (id, external_uid, email, display_name, role, tenant_id, landlord_id, owner_details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, profile.ID, profile.ExternalUID, profile.Email, profile.DisplayName,
		profile.Role, profile.TenantID, profile.LandlordID, ownerDetails)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	query := `
		SELECT id, external_uid, email, display_name, role, tenant_id, landlord_id, owner_details, created_at, updated_at
		FROM user_profiles
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByExternalUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	query := `
		SELECT id, external_uid, email, display_name, role, tenant_id, landlord_id, owner_details, created_at, updated_at
		FROM user_profiles
		WHERE external_uid = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, uid))
}

func (r *userRepo) Update(ctx context.Context, profile *models.UserProfile) error {
	ownerDetails, err := marshalOwnerDetails(profile.OwnerDetails)
	if err != nil {
		return err
	}
	query := `
		UPDATE user_profiles
		SET email = $1, display_name = $2, role = $3, tenant_id = $4, landlord_id = $5, owner_details = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err = r.db.Exec(ctx, query, profile.Email, profile.DisplayName, profile.Role,
		profile.TenantID, profile.LandlordID, ownerDetails, profile.ID)
	return err
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM user_profiles WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *userRepo) List(ctx context.Context, limit, offset int) ([]*models.UserProfile, error) {
	query := `
		SELECT id, external_uid, email, display_name, role, tenant_id, landlord_id, owner_details, created_at, updated_at
		FROM user_profiles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.UserProfile
	for rows.Next() {
		profile, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *userRepo) scanOne(row rowScanner) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	var ownerDetails []byte
	err := row.Scan(&profile.ID, &profile.ExternalUID, &profile.Email, &profile.DisplayName,
		&profile.Role, &profile.TenantID, &profile.LandlordID, &ownerDetails,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(ownerDetails) > 0 {
		var info models.PropertyOwnerInfo
		if err := json.Unmarshal(ownerDetails, &info); err != nil {
			return nil, err
		}
		profile.OwnerDetails = &info
	}
	return profile, nil
}

func marshalOwnerDetails(info *models.PropertyOwnerInfo) ([]byte, error) {
	if info == nil {
		return nil, nil
	}
	return json.Marshal(info)
}
