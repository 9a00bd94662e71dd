package finance

import (
	"github.com/google/uuid"

	"nyumbani/internal/models"
)

// UnitRef identifies a unit within a property.
type UnitRef struct {
	PropertyID uuid.UUID
	UnitName   string
}

// OccupiedUnits returns the set of occupied units. A unit counts as
// occupied when a tenant record references it or when its own status is
// anything other than vacant (airbnb and client-occupied units have no
// tenant record). The two sources are unioned; neither overrides the other.
func OccupiedUnits(tenants []*models.Tenant, properties []*models.Property) map[UnitRef]struct{} {
	occupied := make(map[UnitRef]struct{})

	for _, t := range tenants {
		if t == nil {
			continue
		}
		occupied[UnitRef{PropertyID: t.PropertyID, UnitName: t.UnitName}] = struct{}{}
	}

	for _, p := range properties {
		if p == nil {
			continue
		}
		for _, u := range p.Units {
			if u.Status != models.UnitStatusVacant {
				occupied[UnitRef{PropertyID: p.ID, UnitName: u.Name}] = struct{}{}
			}
		}
	}

	return occupied
}

// TotalUnits counts every unit across the portfolio.
func TotalUnits(properties []*models.Property) int {
	var n int
	for _, p := range properties {
		if p == nil {
			continue
		}
		n += len(p.Units)
	}
	return n
}

// PortfolioOccupancy computes the occupancy rate for the whole portfolio.
func PortfolioOccupancy(tenants []*models.Tenant, properties []*models.Property) float64 {
	return OccupancyRate(len(OccupiedUnits(tenants, properties)), TotalUnits(properties))
}
