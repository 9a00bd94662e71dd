package models

import (
	"time"

	"github.com/google/uuid"
)

// Lease payment status values.
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
	PaymentStatusOverdue = "Overdue"
)

// Lease holds the rental terms attached to a tenant. Rent and service
// charge are nullable: owner-occupied units carry a service charge only.
type Lease struct {
	Rent          *float64   `json:"rent,omitempty" db:"rent"`
	ServiceCharge *float64   `json:"service_charge,omitempty" db:"service_charge"`
	Deposit       *float64   `json:"deposit,omitempty" db:"deposit"`
	StartDate     *time.Time `json:"start_date,omitempty" db:"start_date"`
	DueDate       *time.Time `json:"due_date,omitempty" db:"due_date"`
	PaymentStatus string     `json:"payment_status" db:"payment_status"`
}

type Tenant struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	UnitName   string    `json:"unit_name" db:"unit_name"`
	Lease      *Lease    `json:"lease,omitempty"`
	Archived   bool      `json:"archived" db:"archived"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
