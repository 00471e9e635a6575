package projection

import (
	"time"

	"github.com/aristath/fundflow/internal/domain"
)

// Period is one simulated quarter of a fund's life. CallInvestment and
// ManagementFees are emitted negative (capital out of the investor),
// Distribution positive.
type Period struct {
	PeriodIndex    int       `json:"period"`
	Date           time.Time `json:"date"`
	CallInvestment float64   `json:"call_investment"`
	ManagementFees float64   `json:"management_fees"`
	Distribution   float64   `json:"distribution"`
	NAV            float64   `json:"nav"`
	NAVChange      float64   `json:"nav_change"`
}

// FundInput is the current state of a fund at the start of the projection.
type FundInput struct {
	FundID             int     `json:"fund_id"`
	FundName           string  `json:"fund_name,omitempty"`
	Strategy           string  `json:"strategy"`
	VintageYear        int     `json:"vintage_year"`
	UnfundedCommitment float64 `json:"unfunded_commitment"`
	CurrentNAV         float64 `json:"current_nav"`
	ExpectedMOIC       float64 `json:"expected_moic"`
	TargetIRR          float64 `json:"target_irr"`
}

// PortfolioFund pairs fund metadata with its projectable state.
type PortfolioFund struct {
	Fund               domain.Fund `json:"fund"`
	UnfundedCommitment float64     `json:"unfunded_commitment"`
	CurrentNAV         float64     `json:"current_nav"`
}

// FundProjection is the simulated quarterly series for one fund.
type FundProjection struct {
	FundID   int      `json:"fund_id"`
	FundName string   `json:"fund_name,omitempty"`
	Strategy string   `json:"strategy"`
	Periods  []Period `json:"projection"`
}

// StrategyTotals holds per-period rollups for one strategy. Call and fee
// totals are magnitudes.
type StrategyTotals struct {
	Calls         []float64 `json:"calls"`
	Distributions []float64 `json:"distributions"`
	NAV           []float64 `json:"nav"`
}

// PortfolioProjection is the portfolio-level forecast: per-period totals,
// per-strategy rollups and the underlying per-fund series.
type PortfolioProjection struct {
	TotalCalls         []float64                  `json:"total_calls"`
	TotalDistributions []float64                  `json:"total_distributions"`
	TotalFees          []float64                  `json:"total_fees"`
	TotalNAV           []float64                  `json:"total_nav"`
	ByStrategy         map[string]*StrategyTotals `json:"by_strategy"`
	ByFund             []FundProjection           `json:"by_fund"`
}
