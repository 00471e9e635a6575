package projection

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fundflow/internal/domain"
	"github.com/aristath/fundflow/pkg/formulas"
)

// Fallback modeling parameters for strategies without an assumption row.
const (
	defaultExpectedMOIC = 2.0
	defaultTargetIRR    = 0.15
)

// Management fees halve once the fund is strictly more than this many
// years past its vintage.
const feeTierCutoverYears = 5

// Service runs the quarterly cash-flow and NAV simulation
// (Takahashi/Alexander-style pacing model).
type Service struct {
	log           zerolog.Logger
	annualFeeRate float64
}

// NewService creates a new projection service. annualFeeRate is the yearly
// management fee rate applied to the fund's initial (unfunded + NAV) base.
func NewService(log zerolog.Logger, annualFeeRate float64) *Service {
	return &Service{
		log:           log.With().Str("service", "projection").Logger(),
		annualFeeRate: annualFeeRate,
	}
}

// ProjectFund simulates one fund forward numPeriods quarters from asOf.
//
// Per quarter:
//  1. calls pace the running unfunded balance along the strategy S-curve
//  2. fees are charged on the initial (unfunded + NAV) base, halving after
//     the vintage-year-five cutover
//  3. distributions pace the remaining target pool
//     (max(0, unfunded * MOIC - NAV)) along the strategy J-curve
//  4. NAV depreciates flat before the distribution trough quarter, then
//     compounds at the quarterly equivalent of the target IRR; it is
//     floored at zero and can never go negative
func (s *Service) ProjectFund(input FundInput, numPeriods int, asOf time.Time) []Period {
	if numPeriods <= 0 {
		return nil
	}

	params := ShapeParamsFor(input.Strategy)
	callShape := formulas.SCurve(numPeriods, params.callPeakPeriod(numPeriods), params.CallSteepness)
	distShape := formulas.JCurve(numPeriods, params.distTroughPeriod(numPeriods), params.DistSteepness)
	troughPeriod := params.distTroughPeriod(numPeriods)
	dates := QuarterEndDates(asOf, numPeriods)

	// Distributions still needed to reach the MOIC target on the capital
	// yet to be deployed.
	remainingDistributions := math.Max(0, input.UnfundedCommitment*input.ExpectedMOIC-input.CurrentNAV)

	nav := input.CurrentNAV
	remainingCommitment := input.UnfundedCommitment
	quarterlyFeeRate := s.annualFeeRate / 4
	feeBase := input.UnfundedCommitment + input.CurrentNAV

	vintage := input.VintageYear
	if vintage == 0 {
		vintage = asOf.Year()
	}

	periods := make([]Period, 0, numPeriods)
	for q := 0; q < numPeriods; q++ {
		call := remainingCommitment * callShape[q]
		remainingCommitment -= call

		rate := quarterlyFeeRate
		yearsSinceVintage := (asOf.Year() + q/4) - vintage
		if yearsSinceVintage > feeTierCutoverYears {
			rate = quarterlyFeeRate / 2
		}
		fee := feeBase * rate

		distribution := remainingDistributions * distShape[q]
		remainingDistributions -= distribution

		var navChange float64
		if q < troughPeriod {
			// Early J-curve depreciation, quarterly share of the
			// annual depth.
			navChange = nav * (-params.JCurveDepth / 4)
		} else {
			quarterlyGrowth := math.Pow(1+input.TargetIRR, 0.25) - 1
			navChange = nav * quarterlyGrowth
		}

		nav = nav + call - fee - distribution + navChange
		nav = math.Max(0, nav)

		periods = append(periods, Period{
			PeriodIndex:    q + 1,
			Date:           dates[q],
			CallInvestment: -call,
			ManagementFees: -fee,
			Distribution:   distribution,
			NAV:            nav,
			NAVChange:      navChange,
		})
	}

	s.log.Debug().
		Int("fund_id", input.FundID).
		Str("strategy", input.Strategy).
		Int("periods", numPeriods).
		Msg("projected fund cash flows")

	return periods
}

// ProjectPortfolio runs the per-fund simulation for every portfolio fund
// and rolls the results into portfolio-level and per-strategy period
// totals. Strategies without an assumption row use the fallback MOIC and
// target IRR. Call and fee totals are magnitudes.
func (s *Service) ProjectPortfolio(funds []PortfolioFund, assumptions map[string]domain.ModelingAssumption, numPeriods int, asOf time.Time) PortfolioProjection {
	out := PortfolioProjection{
		TotalCalls:         make([]float64, numPeriods),
		TotalDistributions: make([]float64, numPeriods),
		TotalFees:          make([]float64, numPeriods),
		TotalNAV:           make([]float64, numPeriods),
		ByStrategy:         make(map[string]*StrategyTotals),
	}

	for _, pf := range funds {
		strategy := pf.Fund.PrimaryStrategy
		if strategy == "" {
			strategy = DefaultStrategy
		}

		moic, irr := defaultExpectedMOIC, defaultTargetIRR
		if a, ok := assumptions[strategy]; ok {
			moic, irr = a.ExpectedMOIC, a.TargetIRR
		}

		periods := s.ProjectFund(FundInput{
			FundID:             pf.Fund.ID,
			FundName:           pf.Fund.Name,
			Strategy:           strategy,
			VintageYear:        pf.Fund.VintageYear,
			UnfundedCommitment: pf.UnfundedCommitment,
			CurrentNAV:         pf.CurrentNAV,
			ExpectedMOIC:       moic,
			TargetIRR:          irr,
		}, numPeriods, asOf)

		totals, ok := out.ByStrategy[strategy]
		if !ok {
			totals = &StrategyTotals{
				Calls:         make([]float64, numPeriods),
				Distributions: make([]float64, numPeriods),
				NAV:           make([]float64, numPeriods),
			}
			out.ByStrategy[strategy] = totals
		}

		for i, p := range periods {
			out.TotalCalls[i] += -p.CallInvestment
			out.TotalDistributions[i] += p.Distribution
			out.TotalFees[i] += -p.ManagementFees
			out.TotalNAV[i] += p.NAV

			totals.Calls[i] += -p.CallInvestment
			totals.Distributions[i] += p.Distribution
			totals.NAV[i] += p.NAV
		}

		out.ByFund = append(out.ByFund, FundProjection{
			FundID:   pf.Fund.ID,
			FundName: pf.Fund.Name,
			Strategy: strategy,
			Periods:  periods,
		})
	}

	s.log.Info().
		Int("funds", len(funds)).
		Int("periods", numPeriods).
		Msg("projected portfolio cash flows")

	return out
}

// QuarterEndDates returns the first n calendar quarter-end dates strictly
// after asOf.
func QuarterEndDates(asOf time.Time, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	current := quarterEnd(asOf)
	for len(dates) < n {
		if !current.After(asOf) {
			current = quarterEnd(current.AddDate(0, 0, 1))
			continue
		}
		dates = append(dates, current)
		current = quarterEnd(current.AddDate(0, 0, 1))
	}
	return dates
}

func quarterEnd(t time.Time) time.Time {
	year := t.Year()
	switch {
	case t.Month() <= time.March:
		return time.Date(year, time.March, 31, 0, 0, 0, 0, t.Location())
	case t.Month() <= time.June:
		return time.Date(year, time.June, 30, 0, 0, 0, 0, t.Location())
	case t.Month() <= time.September:
		return time.Date(year, time.September, 30, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(year, time.December, 31, 0, 0, 0, 0, t.Location())
	}
}
