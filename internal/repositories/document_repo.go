package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nyumbani/internal/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Document, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Document, error)
}

type documentRepo struct {
	db Database
}

func NewDocumentRepository(db Database) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (id, name, object_key, content_type, size_bytes, tenant_id, property_id, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.Exec(ctx, query, doc.ID, doc.Name, doc.ObjectKey, doc.ContentType,
		doc.SizeBytes, doc.TenantID, doc.PropertyID, doc.UploadedBy)
	return err
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc := &models.Document{}
	query := `
		SELECT id, name, object_key, content_type, size_bytes, tenant_id, property_id, uploaded_by, created_at
		FROM documents
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&doc.ID, &doc.Name, &doc.ObjectKey, &doc.ContentType,
		&doc.SizeBytes, &doc.TenantID, &doc.PropertyID, &doc.UploadedBy, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM documents WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *documentRepo) List(ctx context.Context, limit, offset int) ([]*models.Document, error) {
	query := `
		SELECT id, name, object_key, content_type, size_bytes, tenant_id, property_id, uploaded_by, created_at
		FROM documents
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (r *documentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Document, error) {
	query := `
		SELECT id, name, object_key, content_type, size_bytes, tenant_id, property_id, uploaded_by, created_at
		FROM documents
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func collectDocuments(rows pgx.Rows) ([]*models.Document, error) {
	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.ObjectKey, &doc.ContentType,
			&doc.SizeBytes, &doc.TenantID, &doc.PropertyID, &doc.UploadedBy, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
