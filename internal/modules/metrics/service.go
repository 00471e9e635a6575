package metrics

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fundflow/internal/domain"
	"github.com/aristath/fundflow/internal/modules/cash_flows"
	"github.com/aristath/fundflow/pkg/formulas"
)

// Absence reasons for guarded denominators.
const (
	reasonPaidInNotPositive     = "paid-in capital is not positive"
	reasonCommitmentNotPositive = "total commitment is not positive"
	reasonNoCashFlows           = "fewer than two dated cash flows"
	reasonIRRNotAggregable      = "IRR cannot be derived from entity-level results; use AggregateIRR over the combined cash flows"
	reasonNoResults             = "no entity results to aggregate"
)

// Service computes fund performance metrics and hierarchical aggregates.
type Service struct {
	log     zerolog.Logger
	irrOpts formulas.XIRROptions
}

// NewService creates a new metrics service
func NewService(log zerolog.Logger, irrOpts formulas.XIRROptions) *Service {
	return &Service{
		log:     log.With().Str("service", "metrics").Logger(),
		irrOpts: irrOpts,
	}
}

// CalculateXIRR solves for the IRR of the given dated flows using the
// service's solver settings.
func (s *Service) CalculateXIRR(cashFlows []float64, dates []time.Time) (float64, error) {
	return formulas.XIRR(cashFlows, dates, s.irrOpts)
}

// CalculateAll computes the full metric set for one entity's cash flow
// stream.
//
// Paid-in is the magnitude of all negative flows, distributions the sum of
// all positive flows; nav_update entries count toward neither. The IRR uses
// the terminal-mark convention: the current NAV is appended as one
// additional flow dated at the last transaction date, treating the
// unrealized mark as if realized then. A failed metric is left nil with its
// reason in Absences; nothing here panics or aborts.
func (s *Service) CalculateAll(flows []cash_flows.CashFlow, totalCommitment, currentNAV float64) Result {
	cash := cashOnly(flows)
	sort.SliceStable(cash, func(i, j int) bool { return cash[i].Date.Before(cash[j].Date) })

	var paidIn, distributions float64
	for _, cf := range cash {
		if cf.Amount < 0 {
			paidIn += -cf.Amount
		} else {
			distributions += cf.Amount
		}
	}
	totalValue := distributions + currentNAV

	result := Result{
		PaidIn:             paidIn,
		Distributions:      distributions,
		CurrentNAV:         currentNAV,
		TotalValue:         totalValue,
		TotalCommitment:    totalCommitment,
		UnfundedCommitment: totalCommitment - paidIn,
	}

	result.TVPI = formulas.TVPI(totalValue, paidIn)
	result.DPI = formulas.DPI(distributions, paidIn)
	result.RVPI = formulas.RVPI(currentNAV, paidIn)
	result.MOIC = formulas.MOIC(totalValue, paidIn)
	result.CalledPercent = formulas.CalledPercent(paidIn, totalCommitment)
	result.DistributedPercent = formulas.DistributedPercent(distributions, totalCommitment)

	if paidIn <= 0 {
		s.markAbsent(&result, reasonPaidInNotPositive, "tvpi", "dpi", "rvpi", "moic")
	}
	if totalCommitment <= 0 {
		s.markAbsent(&result, reasonCommitmentNotPositive, "called_percent", "distributed_percent")
	}

	if len(cash) == 0 {
		s.markAbsent(&result, reasonNoCashFlows, "irr")
		return result
	}

	// Terminal mark: NAV realized at the date of the last transaction.
	amounts := make([]float64, 0, len(cash)+1)
	dates := make([]time.Time, 0, len(cash)+1)
	for _, cf := range cash {
		amounts = append(amounts, cf.Amount)
		dates = append(dates, cf.Date)
	}
	amounts = append(amounts, currentNAV)
	dates = append(dates, cash[len(cash)-1].Date)

	irr, err := formulas.XIRR(amounts, dates, s.irrOpts)
	if err != nil {
		s.log.Debug().Err(err).Msg("IRR unavailable")
		s.markAbsent(&result, err.Error(), "irr")
		return result
	}
	result.IRR = &irr

	return result
}

// CalculateFundMetrics runs CalculateAll per fund over a shared ledger.
//
// The current NAV comes from navByFund when present, otherwise from the
// fund's most recent nav_update entry (zero if it has none). One fund's
// metric failures never abort the batch; every fund gets a result.
func (s *Service) CalculateFundMetrics(funds []domain.Fund, flows []cash_flows.CashFlow, navByFund map[int]float64) []FundResult {
	byFund := make(map[int][]cash_flows.CashFlow)
	for _, cf := range flows {
		byFund[cf.FundID] = append(byFund[cf.FundID], cf)
	}

	results := make([]FundResult, 0, len(funds))
	for _, fund := range funds {
		fundFlows := byFund[fund.ID]

		nav, ok := navByFund[fund.ID]
		if !ok {
			nav, _, _ = LatestNAV(fundFlows)
		}

		results = append(results, FundResult{
			FundID: fund.ID,
			Result: s.CalculateAll(fundFlows, fund.TotalCommitment, nav),
		})
	}

	s.log.Debug().Int("funds", len(results)).Msg("calculated fund metrics batch")
	return results
}

// LatestNAV returns the amount and date of the most recent nav_update entry,
// or ok=false when the flows carry no mark.
func LatestNAV(flows []cash_flows.CashFlow) (nav float64, date time.Time, ok bool) {
	for _, cf := range flows {
		if !cf.Type.IsNAVUpdate() {
			continue
		}
		if !ok || cf.Date.After(date) {
			nav, date, ok = cf.Amount, cf.Date, true
		}
	}
	return nav, date, ok
}

// Aggregate rolls entity results up one hierarchy level: dollar fields are
// summed, then every ratio is recomputed from the pooled totals so the
// result is capital-weighted rather than a mean of entity ratios.
//
// The IRR is deliberately left absent: it cannot be derived from child
// IRRs. Callers wanting a combined IRR must use AggregateIRR over the
// union of the underlying dated flows.
func (s *Service) Aggregate(results []Result) Result {
	if len(results) == 0 {
		out := Result{}
		s.markAbsent(&out, reasonNoResults,
			"irr", "tvpi", "dpi", "rvpi", "moic", "called_percent", "distributed_percent")
		return out
	}

	var paidIn, distributions, nav, commitment float64
	for _, r := range results {
		paidIn += r.PaidIn
		distributions += r.Distributions
		nav += r.CurrentNAV
		commitment += r.TotalCommitment
	}
	totalValue := distributions + nav

	out := Result{
		PaidIn:             paidIn,
		Distributions:      distributions,
		CurrentNAV:         nav,
		TotalValue:         totalValue,
		TotalCommitment:    commitment,
		UnfundedCommitment: commitment - paidIn,
		FundCount:          len(results),
	}

	out.TVPI = formulas.TVPI(totalValue, paidIn)
	out.DPI = formulas.DPI(distributions, paidIn)
	out.RVPI = formulas.RVPI(nav, paidIn)
	out.MOIC = formulas.MOIC(totalValue, paidIn)
	out.CalledPercent = formulas.CalledPercent(paidIn, commitment)
	out.DistributedPercent = formulas.DistributedPercent(distributions, commitment)

	if paidIn <= 0 {
		s.markAbsent(&out, reasonPaidInNotPositive, "tvpi", "dpi", "rvpi", "moic")
	}
	if commitment <= 0 {
		s.markAbsent(&out, reasonCommitmentNotPositive, "called_percent", "distributed_percent")
	}
	s.markAbsent(&out, reasonIRRNotAggregable, "irr")

	return out
}

// AggregateIRR computes the portfolio-level IRR from the union of the
// underlying dated flows, with the combined NAV appended as a terminal mark
// at the latest transaction date.
func (s *Service) AggregateIRR(flows []cash_flows.CashFlow, combinedNAV float64) (float64, error) {
	cash := cashOnly(flows)
	if len(cash) == 0 {
		return 0, formulas.ErrInsufficientData
	}
	sort.SliceStable(cash, func(i, j int) bool { return cash[i].Date.Before(cash[j].Date) })

	amounts := make([]float64, 0, len(cash)+1)
	dates := make([]time.Time, 0, len(cash)+1)
	for _, cf := range cash {
		amounts = append(amounts, cf.Amount)
		dates = append(dates, cf.Date)
	}
	amounts = append(amounts, combinedNAV)
	dates = append(dates, cash[len(cash)-1].Date)

	return formulas.XIRR(amounts, dates, s.irrOpts)
}

func (s *Service) markAbsent(r *Result, reason string, names ...string) {
	if r.Absences == nil {
		r.Absences = make(map[string]string, len(names))
	}
	for _, name := range names {
		r.Absences[name] = reason
	}
}

func cashOnly(flows []cash_flows.CashFlow) []cash_flows.CashFlow {
	out := make([]cash_flows.CashFlow, 0, len(flows))
	for _, cf := range flows {
		if cf.Type.IsNAVUpdate() {
			continue
		}
		out = append(out, cf)
	}
	return out
}
