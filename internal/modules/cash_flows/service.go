package cash_flows

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// Service aggregates, filters and analyzes collections of cash flows.
// All operations are pure functions over caller-supplied slices; the
// service holds no state beyond its logger.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new cash flow service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("service", "cash_flows").Logger(),
	}
}

// AggregateByPeriod buckets signed amounts by a derived period key:
// "YYYY" (yearly), "YYYY-Qn" (quarterly), "YYYY-MM" (monthly) or the single
// "all_time" bucket. nav_update entries are skipped.
func (s *Service) AggregateByPeriod(flows []CashFlow, period AggregationPeriod) map[string]float64 {
	aggregated := make(map[string]float64)

	for _, cf := range flows {
		if cf.Type.IsNAVUpdate() {
			continue
		}
		aggregated[periodKey(cf.Date, period)] += cf.Amount
	}

	s.log.Debug().
		Int("flows", len(flows)).
		Int("buckets", len(aggregated)).
		Str("period", string(period)).
		Msg("aggregated cash flows")

	return aggregated
}

func periodKey(date time.Time, period AggregationPeriod) string {
	switch period {
	case PeriodYearly:
		return fmt.Sprintf("%04d", date.Year())
	case PeriodQuarterly:
		quarter := (int(date.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", date.Year(), quarter)
	case PeriodMonthly:
		return fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
	default:
		return string(PeriodAllTime)
	}
}

// CumulativeCashFlows returns the running net total in chronological order.
// Input order does not matter; flows are sorted by date first.
func (s *Service) CumulativeCashFlows(flows []CashFlow) []CumulativePoint {
	sorted := make([]CashFlow, 0, len(flows))
	for _, cf := range flows {
		if cf.Type.IsNAVUpdate() {
			continue
		}
		sorted = append(sorted, cf)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	series := make([]CumulativePoint, 0, len(sorted))
	var cumulative float64
	for _, cf := range sorted {
		cumulative += cf.Amount
		series = append(series, CumulativePoint{Date: cf.Date, Cumulative: cumulative})
	}

	return series
}

// SeparateCallsAndDistributions partitions flows by sign. With
// includeFees=false, fee-typed entries are dropped from the calls
// partition. nav_update entries land in neither partition.
func (s *Service) SeparateCallsAndDistributions(flows []CashFlow, includeFees bool) (calls, distributions []CashFlow) {
	for _, cf := range flows {
		switch {
		case cf.IsCall():
			if includeFees || !cf.Type.IsFee() {
				calls = append(calls, cf)
			}
		case cf.IsDistribution():
			distributions = append(distributions, cf)
		}
	}

	s.log.Debug().
		Int("calls", len(calls)).
		Int("distributions", len(distributions)).
		Msg("separated cash flows")

	return calls, distributions
}

// NetCashFlow returns total distributions minus total call magnitudes.
// Positive means distributions exceed calls.
func (s *Service) NetCashFlow(calls, distributions []CashFlow) float64 {
	var totalCalls, totalDistributions float64
	for _, cf := range calls {
		if cf.Amount < 0 {
			totalCalls += -cf.Amount
		} else {
			totalCalls += cf.Amount
		}
	}
	for _, cf := range distributions {
		totalDistributions += cf.Amount
	}
	return totalDistributions - totalCalls
}

// FilterByDateRange keeps flows within [start, end], both bounds inclusive.
// A nil bound is open.
func (s *Service) FilterByDateRange(flows []CashFlow, start, end *time.Time) []CashFlow {
	filtered := make([]CashFlow, 0, len(flows))
	for _, cf := range flows {
		if start != nil && cf.Date.Before(*start) {
			continue
		}
		if end != nil && cf.Date.After(*end) {
			continue
		}
		filtered = append(filtered, cf)
	}
	return filtered
}

// FilterByFunds keeps flows belonging to any of the given fund IDs.
func (s *Service) FilterByFunds(flows []CashFlow, fundIDs []int) []CashFlow {
	wanted := make(map[int]struct{}, len(fundIDs))
	for _, id := range fundIDs {
		wanted[id] = struct{}{}
	}

	filtered := make([]CashFlow, 0, len(flows))
	for _, cf := range flows {
		if _, ok := wanted[cf.FundID]; ok {
			filtered = append(filtered, cf)
		}
	}
	return filtered
}

// JCurve aggregates net flows per period and accumulates them in
// chronological order. The cumulative trough is the characteristic "J".
//
// Period keys sort lexicographically, which is chronological for yearly and
// monthly keys; quarterly keys sort correctly within a single millennium.
func (s *Service) JCurve(flows []CashFlow, period AggregationPeriod) []JCurvePoint {
	aggregated := s.AggregateByPeriod(flows, period)

	keys := make([]string, 0, len(aggregated))
	for key := range aggregated {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	points := make([]JCurvePoint, 0, len(keys))
	var cumulative float64
	for _, key := range keys {
		net := aggregated[key]
		cumulative += net
		points = append(points, JCurvePoint{
			Period:         key,
			NetFlow:        net,
			CumulativeFlow: cumulative,
		})
	}

	return points
}

// CalculateYTD restricts flows to [Jan 1 of the reference year, reference
// date] and summarizes calls, distributions and net flow for the window.
func (s *Service) CalculateYTD(flows []CashFlow, referenceDate time.Time) YTDMetrics {
	yearStart := time.Date(referenceDate.Year(), time.January, 1, 0, 0, 0, 0, referenceDate.Location())
	ytdFlows := s.FilterByDateRange(flows, &yearStart, &referenceDate)

	calls, distributions := s.SeparateCallsAndDistributions(ytdFlows, true)

	var totalCalls, totalDistributions float64
	for _, cf := range calls {
		totalCalls += -cf.Amount
	}
	for _, cf := range distributions {
		totalDistributions += cf.Amount
	}

	return YTDMetrics{
		Calls:            totalCalls,
		Distributions:    totalDistributions,
		NetFlow:          totalDistributions - totalCalls,
		TransactionCount: len(ytdFlows),
		ReferenceYear:    referenceDate.Year(),
	}
}

// GenerateSummary composes totals, per-period aggregation, J-curve and YTD
// metrics into one report for the given flows.
func (s *Service) GenerateSummary(flows []CashFlow, includeFees bool, period AggregationPeriod, referenceDate time.Time) Summary {
	calls, distributions := s.SeparateCallsAndDistributions(flows, includeFees)

	var totalCalls, totalDistributions float64
	for _, cf := range calls {
		totalCalls += -cf.Amount
	}
	for _, cf := range distributions {
		totalDistributions += cf.Amount
	}

	summary := Summary{
		TotalCalls:         totalCalls,
		TotalDistributions: totalDistributions,
		NetCashFlow:        totalDistributions - totalCalls,
		CallCount:          len(calls),
		DistributionCount:  len(distributions),
		TotalTransactions:  len(flows),
		ByPeriod:           s.AggregateByPeriod(flows, period),
		JCurve:             s.JCurve(flows, period),
		YTD:                s.CalculateYTD(flows, referenceDate),
	}

	for i, cf := range flows {
		date := cf.Date
		if i == 0 || date.Before(*summary.EarliestDate) {
			d := date
			summary.EarliestDate = &d
		}
		if i == 0 || date.After(*summary.LatestDate) {
			d := date
			summary.LatestDate = &d
		}
	}

	s.log.Info().
		Int("transactions", len(flows)).
		Msg("generated cash flow summary")

	return summary
}
