package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment type values. Deposits are held in trust and never count toward
// management-fee revenue.
const (
	PaymentTypeRent          = "Rent"
	PaymentTypeDeposit       = "Deposit"
	PaymentTypeServiceCharge = "ServiceCharge"
	PaymentTypeUtility       = "Utility"
	PaymentTypeOther         = "Other"
)

// Payment is an append-only record of money received from a tenant.
type Payment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Amount    float64   `json:"amount" db:"amount"`
	Date      time.Time `json:"date" db:"paid_at"`
	Type      *string   `json:"type,omitempty" db:"payment_type"`
	Method    *string   `json:"method,omitempty" db:"method"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
