package allocation

// Constraints bounds the recommended new investment per strategy. A
// strategy missing from Min defaults to 0; missing from Max defaults to the
// full available capital.
type Constraints struct {
	Min map[string]float64 `json:"min,omitempty"`
	Max map[string]float64 `json:"max,omitempty"`
}

// Recommendation is the optimizer output: recommended new investment per
// strategy plus the totals it was derived from.
type Recommendation struct {
	Allocations      map[string]float64 `json:"allocations"`
	TotalAllocated   float64            `json:"total_allocated"`
	AvailableCapital float64            `json:"available_capital"`
	ProjectedTotal   float64            `json:"projected_total"`
	Scaled           bool               `json:"scaled"` // true when proportionally scaled to budget
}
