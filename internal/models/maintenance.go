package models

import (
	"time"

	"github.com/google/uuid"
)

// Maintenance request status values.
const (
	MaintenanceStatusOpen       = "Open"
	MaintenanceStatusInProgress = "In Progress"
	MaintenanceStatusCompleted  = "Completed"
)

type MaintenanceRequest struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TenantID    uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	PropertyID  uuid.UUID  `json:"property_id" db:"property_id"`
	UnitName    string     `json:"unit_name" db:"unit_name"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      string     `json:"status" db:"status"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
