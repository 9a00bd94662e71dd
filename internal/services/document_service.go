package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nyumbani/internal/models"
	"nyumbani/internal/repositories"
	"nyumbani/internal/storage"
)

const presignedURLExpiry = 15 * time.Minute

// DocumentService stores files in the object store and their metadata in
// Postgres. Downloads go out as short-lived presigned URLs.
type DocumentService interface {
	Upload(ctx context.Context, req *UploadDocumentRequest) (*models.Document, error)
	DownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Document, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Document, error)
}

type UploadDocumentRequest struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
	TenantID    *uuid.UUID
	PropertyID  *uuid.UUID
	UploadedBy  *uuid.UUID
}

type documentService struct {
	docRepo repositories.DocumentRepository
	store   storage.ObjectStore
	bucket  string
	logger  zerolog.Logger
}

func NewDocumentService(docRepo repositories.DocumentRepository, store storage.ObjectStore, bucket string, logger zerolog.Logger) DocumentService {
	return &documentService{docRepo: docRepo, store: store, bucket: bucket, logger: logger}
}

func (s *documentService) Upload(ctx context.Context, req *UploadDocumentRequest) (*models.Document, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("document name is required")
	}
	if req.Size <= 0 {
		return nil, fmt.Errorf("document is empty")
	}

	id := uuid.New()
	objectKey := fmt.Sprintf("documents/%s/%s", id, req.Name)

	if err := s.store.Upload(ctx, s.bucket, objectKey, req.Reader, req.Size, req.ContentType); err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}

	doc := &models.Document{
		ID:          id,
		Name:        req.Name,
		ObjectKey:   objectKey,
		ContentType: req.ContentType,
		SizeBytes:   req.Size,
		TenantID:    req.TenantID,
		PropertyID:  req.PropertyID,
		UploadedBy:  req.UploadedBy,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		// Metadata write failed; do not leave an orphaned object behind.
		if cleanupErr := s.store.Delete(ctx, s.bucket, objectKey); cleanupErr != nil {
			s.logger.Error().Err(cleanupErr).Str("object_key", objectKey).Msg("failed to clean up orphaned object")
		}
		return nil, fmt.Errorf("record document: %w", err)
	}
	return doc, nil
}

func (s *documentService) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignedURL(ctx, s.bucket, doc.ObjectKey, presignedURLExpiry)
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, s.bucket, doc.ObjectKey); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return s.docRepo.Delete(ctx, id)
}

func (s *documentService) List(ctx context.Context, limit, offset int) ([]*models.Document, error) {
	return s.docRepo.List(ctx, limit, offset)
}

func (s *documentService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Document, error) {
	return s.docRepo.ListByTenant(ctx, tenantID)
}
