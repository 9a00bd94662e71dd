package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit status values. Anything other than vacant means the unit is in use
// even when no tenant record points at it (airbnb, client occupied).
const (
	UnitStatusVacant   = "vacant"
	UnitStatusOccupied = "occupied"
	UnitStatusAirbnb   = "airbnb"
	UnitStatusClient   = "client"
)

type Unit struct {
	Name   string   `json:"name" db:"name"`
	Status string   `json:"status" db:"status"`
	Rent   *float64 `json:"rent,omitempty" db:"rent"`
}

type Property struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Address    string     `json:"address" db:"address"`
	LandlordID *uuid.UUID `json:"landlord_id,omitempty" db:"landlord_id"`
	Units      []Unit     `json:"units"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
