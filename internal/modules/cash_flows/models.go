package cash_flows

import (
	"strings"
	"time"
)

// FlowType classifies a ledger entry.
type FlowType string

const (
	FlowCallInvestment              FlowType = "call_investment"
	FlowCallFees                    FlowType = "call_fees"
	FlowDistributionReturnOfCapital FlowType = "distribution_return_of_capital"
	FlowDistributionProfit          FlowType = "distribution_profit"
	FlowNAVUpdate                   FlowType = "nav_update"
)

// IsFee reports whether the type denotes a management fee call.
func (t FlowType) IsFee() bool {
	return strings.Contains(strings.ToLower(string(t)), "fee")
}

// IsNAVUpdate reports whether the entry carries a mark-to-market NAV
// rather than an actual cash movement.
func (t FlowType) IsNAVUpdate() bool {
	return t == FlowNAVUpdate
}

// CashFlow represents a single ledger entry (append-only, immutable).
//
// Amount is signed: negative for capital leaving the investor (calls and
// fees), positive for capital returned (distributions). A nav_update entry
// carries the latest NAV in Amount and is never summed into paid-in or
// distributed totals.
type CashFlow struct {
	TransactionID int       `json:"transaction_id"`
	FundID        int       `json:"fund_id"`
	Date          time.Time `json:"date"`
	Type          FlowType  `json:"type"`
	Amount        float64   `json:"amount"`
}

// IsCall reports whether this entry is a capital call.
func (cf CashFlow) IsCall() bool {
	return !cf.Type.IsNAVUpdate() && cf.Amount < 0
}

// IsDistribution reports whether this entry is a distribution.
func (cf CashFlow) IsDistribution() bool {
	return !cf.Type.IsNAVUpdate() && cf.Amount > 0
}

// AggregationPeriod selects the bucketing granularity for time-series
// aggregation.
type AggregationPeriod string

const (
	PeriodMonthly   AggregationPeriod = "monthly"
	PeriodQuarterly AggregationPeriod = "quarterly"
	PeriodYearly    AggregationPeriod = "yearly"
	PeriodAllTime   AggregationPeriod = "all_time"
)

// CumulativePoint is one step of the running net cash flow series.
type CumulativePoint struct {
	Date       time.Time `json:"date"`
	Cumulative float64   `json:"cumulative"`
}

// JCurvePoint is one bucket of the J-curve series, in chronological order.
type JCurvePoint struct {
	Period         string  `json:"period"`
	NetFlow        float64 `json:"net_flow"`
	CumulativeFlow float64 `json:"cumulative_flow"`
}

// YTDMetrics summarizes activity between January 1 and the reference date.
type YTDMetrics struct {
	Calls            float64 `json:"ytd_calls"`
	Distributions    float64 `json:"ytd_distributions"`
	NetFlow          float64 `json:"ytd_net_flow"`
	TransactionCount int     `json:"ytd_transaction_count"`
	ReferenceYear    int     `json:"reference_year"`
}

// Summary is the composed cash-flow report for a set of ledger entries.
type Summary struct {
	TotalCalls         float64            `json:"total_calls"`
	TotalDistributions float64            `json:"total_distributions"`
	NetCashFlow        float64            `json:"net_cash_flow"`
	CallCount          int                `json:"call_count"`
	DistributionCount  int                `json:"distribution_count"`
	TotalTransactions  int                `json:"total_transactions"`
	EarliestDate       *time.Time         `json:"earliest_date"`
	LatestDate         *time.Time         `json:"latest_date"`
	ByPeriod           map[string]float64 `json:"aggregated_by_period"`
	JCurve             []JCurvePoint      `json:"j_curve"`
	YTD                YTDMetrics         `json:"ytd_metrics"`
}
