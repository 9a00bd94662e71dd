package models

import (
	"time"

	"github.com/google/uuid"
)

// Role values assignable to a user profile.
const (
	RoleAdmin     = "admin"
	RoleAgent     = "agent"
	RoleViewer    = "viewer"
	RoleTenant    = "tenant"
	RoleHomeowner = "homeowner"
)

// UserProfile links an identity-provider account to an application role.
// Tenant and landlord references are optional and depend on the role.
type UserProfile struct {
	ID           uuid.UUID           `json:"id" db:"id"`
	ExternalUID  string              `json:"external_uid" db:"external_uid"`
	Email        string              `json:"email" db:"email"`
	DisplayName  string              `json:"display_name" db:"display_name"`
	Role         string              `json:"role" db:"role"`
	TenantID     *uuid.UUID          `json:"tenant_id,omitempty" db:"tenant_id"`
	LandlordID   *uuid.UUID          `json:"landlord_id,omitempty" db:"landlord_id"`
	OwnerDetails *PropertyOwnerInfo  `json:"property_owner_details,omitempty" db:"owner_details"`
	CreatedAt    time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" db:"updated_at"`
}

// PropertyOwnerInfo describes the holdings of a homeowner profile.
// Stored as JSONB alongside the profile row.
type PropertyOwnerInfo struct {
	PropertyIDs []uuid.UUID `json:"property_ids"`
	UnitNames   []string    `json:"unit_names"`
}

// IsStaff reports whether the role belongs to the agency side of the app.
func (p *UserProfile) IsStaff() bool {
	switch p.Role {
	case RoleAdmin, RoleAgent, RoleViewer:
		return true
	}
	return false
}
