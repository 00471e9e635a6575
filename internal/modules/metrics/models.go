package metrics

// Result holds every computed performance metric for one entity (fund,
// strategy or portfolio). Dollar fields are always present; ratio and IRR
// fields are nil when a precondition fails, with the reason recorded in
// Absences under the metric name. Results are ephemeral and never mutated
// after creation.
type Result struct {
	PaidIn             float64 `json:"paid_in"`
	Distributions      float64 `json:"distributions"`
	CurrentNAV         float64 `json:"current_nav"`
	TotalValue         float64 `json:"total_value"`
	TotalCommitment    float64 `json:"total_commitment"`
	UnfundedCommitment float64 `json:"unfunded_commitment"`

	IRR                *float64 `json:"irr"`
	TVPI               *float64 `json:"tvpi"`
	DPI                *float64 `json:"dpi"`
	RVPI               *float64 `json:"rvpi"`
	MOIC               *float64 `json:"moic"`
	CalledPercent      *float64 `json:"called_percent"`
	DistributedPercent *float64 `json:"distributed_percent"`

	// FundCount is set on aggregated results only.
	FundCount int `json:"fund_count,omitempty"`

	// Absences maps an absent metric name to the reason it could not be
	// computed. Empty when every metric is present.
	Absences map[string]string `json:"absences,omitempty"`
}

// FundResult pairs a fund with its computed metrics in batch calculations.
type FundResult struct {
	FundID int    `json:"fund_id"`
	Result Result `json:"result"`
}
