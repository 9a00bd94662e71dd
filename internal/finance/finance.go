// Package finance folds tenant, payment and property collections into the
// dashboard summary figures. Everything here is a pure function of its
// inputs: no I/O, no cached state, and malformed records degrade to zero
// instead of failing, since a partial summary still has to render.
package finance

import (
	"github.com/google/uuid"

	"nyumbani/internal/models"
)

// Summary is the derived financial aggregate shown on the dashboard.
type Summary struct {
	Collected     float64 `json:"collected"`
	Pending       float64 `json:"pending"`
	Overdue       float64 `json:"overdue"`
	ManagementFee float64 `json:"management_fee"`
}

// Aggregate computes the rent totals by lease payment status plus the
// management-fee revenue across all recorded payments. Tenants without a
// lease or without a rent figure contribute nothing.
func Aggregate(payments []*models.Payment, tenants []*models.Tenant, policy FeePolicy) Summary {
	var s Summary
	for _, t := range tenants {
		if t == nil || t.Lease == nil {
			continue
		}
		rent := amountOrZero(t.Lease.Rent)
		switch t.Lease.PaymentStatus {
		case models.PaymentStatusPaid:
			s.Collected += rent
		case models.PaymentStatusPending:
			s.Pending += rent
		case models.PaymentStatusOverdue:
			s.Overdue += rent
		}
	}
	s.ManagementFee = ManagementFeeRevenue(payments, tenants, policy)
	return s
}

// ManagementFeeRevenue sums the agency's cut over all payments. Deposits
// are held in trust and are filtered out before the breakdown, not passed
// through with a zero fee.
func ManagementFeeRevenue(payments []*models.Payment, tenants []*models.Tenant, policy FeePolicy) float64 {
	charges := make(map[uuid.UUID]float64, len(tenants))
	for _, t := range tenants {
		if t == nil || t.Lease == nil {
			continue
		}
		charges[t.ID] = amountOrZero(t.Lease.ServiceCharge)
	}

	var total float64
	for _, p := range payments {
		if p == nil {
			continue
		}
		if p.Type != nil && *p.Type == models.PaymentTypeDeposit {
			continue
		}
		total += policy.TransactionBreakdown(p.Amount, charges[p.TenantID]).ManagementFee
	}
	return total
}

// OccupancyRate is occupied over total as a percentage, defined as 0 for
// an empty portfolio.
func OccupancyRate(occupied, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(occupied) / float64(total) * 100
}

func amountOrZero(v *float64) float64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
