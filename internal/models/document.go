package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is metadata for a file stored in the object store (lease
// agreements, receipts, inspection reports). The bytes live in MinIO.
type Document struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	ObjectKey   string     `json:"object_key" db:"object_key"`
	ContentType string     `json:"content_type" db:"content_type"`
	SizeBytes   int64      `json:"size_bytes" db:"size_bytes"`
	TenantID    *uuid.UUID `json:"tenant_id,omitempty" db:"tenant_id"`
	PropertyID  *uuid.UUID `json:"property_id,omitempty" db:"property_id"`
	UploadedBy  *uuid.UUID `json:"uploaded_by,omitempty" db:"uploaded_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
