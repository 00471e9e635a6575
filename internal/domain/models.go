package domain

// Fund represents a closed-end fund position in the portfolio.
// Read-only input supplied by the data-access layer.
type Fund struct {
	ID              int     `json:"fund_id"`
	Name            string  `json:"fund_name"`
	VintageYear     int     `json:"vintage_year"`
	PrimaryStrategy string  `json:"primary_strategy"`
	SubStrategy     string  `json:"sub_strategy,omitempty"`
	TotalCommitment float64 `json:"total_commitment"`
}

// ModelingAssumption holds per-strategy forecasting parameters.
type ModelingAssumption struct {
	Strategy                   string  `json:"strategy"`
	ExpectedMOIC               float64 `json:"expected_moic"`
	TargetIRR                  float64 `json:"target_irr"`
	InvestmentPeriodYears      int     `json:"investment_period_years"`
	FundLifeYears              int     `json:"fund_life_years"`
	NAVInitialQtrDepreciation  float64 `json:"nav_initial_qtr_depreciation"`
	NAVInitialDepreciationQtrs int     `json:"nav_initial_depreciation_qtrs"`
}
