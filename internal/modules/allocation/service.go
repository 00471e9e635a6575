package allocation

import (
	"github.com/rs/zerolog"
)

// Service recommends new investments that rebalance strategy exposures
// toward their targets, given expected distributions.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new allocation service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("service", "allocation").Logger(),
	}
}

// OptimalAllocation answers: how much new capital should go into each
// strategy to hold exposures at target, given the distributions the
// projection engine expects?
//
// The projected portfolio total is current NAV minus projected
// distributions plus the fresh capital. Each strategy's gap to its target
// value is clamped into [min, max] (never negative); if the clamped gaps
// exceed the available capital, every allocation is scaled down
// proportionally so the total never exceeds the budget.
func (s *Service) OptimalAllocation(
	currentExposures map[string]float64,
	targetFractions map[string]float64,
	availableCapital float64,
	projectedDistributions map[string]float64,
	constraints Constraints,
) Recommendation {
	var totalCurrent, totalDistributions float64
	for _, v := range currentExposures {
		totalCurrent += v
	}
	for _, v := range projectedDistributions {
		totalDistributions += v
	}
	projectedTotal := totalCurrent - totalDistributions + availableCapital

	allocations := make(map[string]float64, len(targetFractions))
	var totalAllocated float64

	for strategy, fraction := range targetFractions {
		targetValue := projectedTotal * fraction
		projectedValue := currentExposures[strategy] - projectedDistributions[strategy]
		gap := targetValue - projectedValue

		minAlloc := 0.0
		if v, ok := constraints.Min[strategy]; ok {
			minAlloc = v
		}
		maxAlloc := availableCapital
		if v, ok := constraints.Max[strategy]; ok {
			maxAlloc = v
		}

		alloc := max(minAlloc, min(gap, maxAlloc))
		alloc = max(0, alloc)

		allocations[strategy] = alloc
		totalAllocated += alloc
	}

	scaled := false
	if totalAllocated > availableCapital && totalAllocated > 0 {
		factor := availableCapital / totalAllocated
		for strategy := range allocations {
			allocations[strategy] *= factor
		}
		totalAllocated = availableCapital
		scaled = true
	}

	s.log.Debug().
		Int("strategies", len(allocations)).
		Float64("total_allocated", totalAllocated).
		Bool("scaled", scaled).
		Msg("calculated optimal allocation")

	return Recommendation{
		Allocations:      allocations,
		TotalAllocated:   totalAllocated,
		AvailableCapital: availableCapital,
		ProjectedTotal:   projectedTotal,
		Scaled:           scaled,
	}
}
