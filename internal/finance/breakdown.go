package finance

// FeePolicy is the contracted fee schedule the agency applies to service
// charges. The rate is configuration, not code: it is read from config at
// startup and injected into every computation.
type FeePolicy struct {
	// Rate is the agency's fraction of the fee-bearing portion, e.g. 0.10.
	Rate float64
}

// DefaultFeePolicy is the standard 10% management agreement.
var DefaultFeePolicy = FeePolicy{Rate: 0.10}

// Breakdown splits a single payment into its destinations.
type Breakdown struct {
	// ManagementFee is the agency's cut of the fee-bearing portion.
	ManagementFee float64 `json:"management_fee"`
	// NetToLandlord is the fee-bearing portion minus the fee.
	NetToLandlord float64 `json:"net_to_landlord"`
	// Excess is the amount above the contracted service charge. It covers
	// utilities and arrears and bears no fee.
	Excess float64 `json:"excess"`
}

// TransactionBreakdown apportions one payment against the tenant's
// contracted service charge. Only the portion up to the service charge is
// fee-bearing. Negative or malformed inputs are treated as zero.
func (p FeePolicy) TransactionBreakdown(amount, serviceCharge float64) Breakdown {
	if amount < 0 {
		amount = 0
	}
	if serviceCharge < 0 {
		serviceCharge = 0
	}

	feeBearing := amount
	var excess float64
	if amount > serviceCharge {
		feeBearing = serviceCharge
		excess = amount - serviceCharge
	}

	fee := feeBearing * p.Rate
	return Breakdown{
		ManagementFee: fee,
		NetToLandlord: feeBearing - fee,
		Excess:        excess,
	}
}
