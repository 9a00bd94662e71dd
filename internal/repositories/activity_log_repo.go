package repositories

import (
	"context"


	"nyumbani/internal/models"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, limit, offset int) ([]*models.ActivityLog, error)
	ListByEntity(ctx context.Context, entityType string, limit, offset int) ([]*models.ActivityLog, error)
}

type activityLogRepo struct {
	db Database
}

func NewActivityLogRepository(db Database) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, user_id, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, entry.ID, entry.UserID, entry.Action,
		entry.EntityType, entry.EntityID, entry.Detail)
	return err
}

func (r *activityLogRepo) List(ctx context.Context, limit, offset int) ([]*models.ActivityLog, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, detail, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ActivityLog
	for rows.Next() {
		entry := &models.ActivityLog{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.EntityType,
			&entry.EntityID, &entry.Detail, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *activityLogRepo) ListByEntity(ctx context.Context, entityType string, limit, offset int) ([]*models.ActivityLog, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, detail, created_at
		FROM activity_logs
		WHERE entity_type = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, entityType, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ActivityLog
	for rows.Next() {
		entry := &models.ActivityLog{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.EntityType,
			&entry.EntityID, &entry.Detail, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
