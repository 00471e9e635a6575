package formulas

// Fund performance multiples. Each guards its denominator and returns nil
// instead of dividing by a non-positive value.

// TVPI calculates the Total Value to Paid-In multiple.
//
//	TVPI = (Distributions + NAV) / Paid-In Capital
func TVPI(totalValue, paidIn float64) *float64 {
	return safeRatio(totalValue, paidIn)
}

// DPI calculates the Distributions to Paid-In multiple.
func DPI(distributions, paidIn float64) *float64 {
	return safeRatio(distributions, paidIn)
}

// RVPI calculates the Residual Value to Paid-In multiple, the unrealized
// portion of the fund's value.
func RVPI(nav, paidIn float64) *float64 {
	return safeRatio(nav, paidIn)
}

// MOIC calculates the Multiple on Invested Capital. Similar to TVPI but the
// denominator may exclude fees depending on what the caller passes.
func MOIC(totalValue, investedCapital float64) *float64 {
	return safeRatio(totalValue, investedCapital)
}

// CalledPercent calculates the share of committed capital already called,
// as a percentage in [0, 100] for a fund within its commitment.
func CalledPercent(paidIn, commitment float64) *float64 {
	r := safeRatio(paidIn, commitment)
	if r == nil {
		return nil
	}
	pct := *r * 100
	return &pct
}

// DistributedPercent calculates distributions as a percentage of committed
// capital.
func DistributedPercent(distributions, commitment float64) *float64 {
	r := safeRatio(distributions, commitment)
	if r == nil {
		return nil
	}
	pct := *r * 100
	return &pct
}

func safeRatio(numerator, denominator float64) *float64 {
	if denominator <= 0 {
		return nil
	}
	v := numerator / denominator
	return &v
}
