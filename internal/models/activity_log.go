package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog records who changed what. Written by the audit middleware on
// every mutating request.
type ActivityLog struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	Action     string     `json:"action" db:"action"`
	EntityType string     `json:"entity_type" db:"entity_type"`
	EntityID   *string    `json:"entity_id,omitempty" db:"entity_id"`
	Detail     *string    `json:"detail,omitempty" db:"detail"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
