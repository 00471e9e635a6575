package projection

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/fundflow/internal/domain"
	"github.com/aristath/fundflow/pkg/logger"
)

func testService() *Service {
	return NewService(logger.New(logger.Config{Level: "error"}), 0.02)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func baseInput() FundInput {
	return FundInput{
		FundID:             1,
		Strategy:           "Private Equity",
		VintageYear:        2024,
		UnfundedCommitment: 10_000_000,
		CurrentNAV:         5_000_000,
		ExpectedMOIC:       1.85,
		TargetIRR:          0.16,
	}
}

func TestShapeParamsFor_KnownStrategies(t *testing.T) {
	for _, strategy := range []string{"Venture Capital", "Private Equity", "Real Estate", "Infrastructure"} {
		params := ShapeParamsFor(strategy)
		assert.Greater(t, params.CallSteepness, 0.0, strategy)
		assert.Greater(t, params.JCurveDepth, 0.0, strategy)
	}
}

func TestShapeParamsFor_UnknownFallsBackToDefaultRow(t *testing.T) {
	fallback := ShapeParamsFor("Growth Debt Opportunities IV")
	assert.Equal(t, ShapeParamsFor(DefaultStrategy), fallback)
	// The fallback is the real Private Equity table row, not a zero value.
	assert.InDelta(t, 0.08, fallback.JCurveDepth, 1e-12)
}

func TestProjectFund_BasicShape(t *testing.T) {
	s := testService()
	periods := s.ProjectFund(baseInput(), 20, date(2025, 12, 31))
	require.Len(t, periods, 20)

	for i, p := range periods {
		assert.Equal(t, i+1, p.PeriodIndex)
		assert.LessOrEqual(t, p.CallInvestment, 0.0, "calls are emitted negative")
		assert.Less(t, p.ManagementFees, 0.0, "fees are emitted negative")
		assert.GreaterOrEqual(t, p.Distribution, 0.0)
		assert.GreaterOrEqual(t, p.NAV, 0.0, "NAV is floored at zero")
	}

	// Total calls never exceed the unfunded commitment.
	var totalCalls float64
	for _, p := range periods {
		totalCalls += -p.CallInvestment
	}
	assert.LessOrEqual(t, totalCalls, baseInput().UnfundedCommitment+1e-6)
}

func TestProjectFund_QuarterEndDates(t *testing.T) {
	s := testService()
	periods := s.ProjectFund(baseInput(), 4, date(2025, 12, 31))
	require.Len(t, periods, 4)

	assert.Equal(t, date(2026, 3, 31), periods[0].Date)
	assert.Equal(t, date(2026, 6, 30), periods[1].Date)
	assert.Equal(t, date(2026, 9, 30), periods[2].Date)
	assert.Equal(t, date(2026, 12, 31), periods[3].Date)
}

func TestProjectFund_FeeTierBoundary(t *testing.T) {
	s := testService()
	input := baseInput()
	input.VintageYear = 2021

	// As-of 2026: quarters 0-3 are year five since vintage (full rate),
	// quarters 4-7 are year six (half rate).
	periods := s.ProjectFund(input, 8, date(2026, 1, 1))
	require.Len(t, periods, 8)

	fullRateFee := periods[3].ManagementFees
	halfRateFee := periods[4].ManagementFees
	assert.InDelta(t, fullRateFee/2, halfRateFee, 1e-9)
	// Within a tier the fee is flat (constant base).
	assert.InDelta(t, periods[0].ManagementFees, periods[3].ManagementFees, 1e-9)
	assert.InDelta(t, periods[4].ManagementFees, periods[7].ManagementFees, 1e-9)
}

func TestProjectFund_JCurveNAVPhases(t *testing.T) {
	s := testService()
	input := baseInput()
	input.Strategy = "Venture Capital" // trough at period 10 of 20
	periods := s.ProjectFund(input, 20, date(2025, 12, 31))

	trough := ShapeParamsFor("Venture Capital").distTroughPeriod(20)
	require.Greater(t, trough, 0)

	// Depreciation phase: value change is negative while NAV is positive.
	for q := 0; q < trough; q++ {
		if periods[q].NAV > 0 {
			assert.LessOrEqual(t, periods[q].NAVChange, 0.0, "period %d", q)
		}
	}
	// Growth phase: value change turns non-negative.
	for q := trough; q < len(periods); q++ {
		assert.GreaterOrEqual(t, periods[q].NAVChange, 0.0, "period %d", q)
	}
}

func TestProjectFund_NAVNeverNegative_Randomized(t *testing.T) {
	s := testService()
	rng := rand.New(rand.NewSource(42))
	strategies := []string{"Venture Capital", "Private Equity", "Real Estate", "Infrastructure", "Unknown"}

	for run := 0; run < 200; run++ {
		input := FundInput{
			FundID:             run,
			Strategy:           strategies[rng.Intn(len(strategies))],
			VintageYear:        2015 + rng.Intn(10),
			UnfundedCommitment: rng.Float64() * 50_000_000,
			CurrentNAV:         rng.Float64() * 20_000_000,
			ExpectedMOIC:       0.5 + rng.Float64()*3,
			TargetIRR:          rng.Float64() * 0.4,
		}
		numPeriods := 1 + rng.Intn(40)

		periods := s.ProjectFund(input, numPeriods, date(2025, 12, 31))
		for _, p := range periods {
			require.GreaterOrEqual(t, p.NAV, 0.0,
				"run %d strategy %s period %d", run, input.Strategy, p.PeriodIndex)
		}
	}
}

func TestProjectFund_NoPeriods(t *testing.T) {
	s := testService()
	assert.Nil(t, s.ProjectFund(baseInput(), 0, date(2025, 12, 31)))
}

func TestProjectPortfolio(t *testing.T) {
	s := testService()
	funds := []PortfolioFund{
		{
			Fund:               domain.Fund{ID: 1, Name: "Pinnacle Tech Fund VI", VintageYear: 2021, PrimaryStrategy: "Private Equity", TotalCommitment: 6_600_000},
			UnfundedCommitment: 2_600_000,
			CurrentNAV:         4_500_000,
		},
		{
			Fund:               domain.Fund{ID: 2, Name: "Apex Venture Partners III", VintageYear: 2023, PrimaryStrategy: "Venture Capital", TotalCommitment: 1_600_000},
			UnfundedCommitment: 800_000,
			CurrentNAV:         900_000,
		},
		{
			Fund:               domain.Fund{ID: 3, Name: "Global Buyout Capital X", VintageYear: 2018, PrimaryStrategy: "Private Equity", TotalCommitment: 32_500_000},
			UnfundedCommitment: 7_500_000,
			CurrentNAV:         18_000_000,
		},
	}
	assumptions := map[string]domain.ModelingAssumption{
		"Private Equity":  {Strategy: "Private Equity", ExpectedMOIC: 1.85, TargetIRR: 0.16},
		"Venture Capital": {Strategy: "Venture Capital", ExpectedMOIC: 2.75, TargetIRR: 0.22},
	}

	result := s.ProjectPortfolio(funds, assumptions, 20, date(2025, 12, 31))

	require.Len(t, result.TotalCalls, 20)
	require.Len(t, result.ByFund, 3)
	require.Contains(t, result.ByStrategy, "Private Equity")
	require.Contains(t, result.ByStrategy, "Venture Capital")

	// Portfolio totals are the sum of the per-strategy rollups.
	for i := 0; i < 20; i++ {
		var strategyCalls, strategyNAV float64
		for _, totals := range result.ByStrategy {
			strategyCalls += totals.Calls[i]
			strategyNAV += totals.NAV[i]
		}
		assert.InDelta(t, result.TotalCalls[i], strategyCalls, 1e-6)
		assert.InDelta(t, result.TotalNAV[i], strategyNAV, 1e-6)
		assert.GreaterOrEqual(t, result.TotalCalls[i], 0.0)
		assert.GreaterOrEqual(t, result.TotalFees[i], 0.0)
	}
}

func TestProjectPortfolio_MissingAssumptionsUseDefaults(t *testing.T) {
	s := testService()
	funds := []PortfolioFund{
		{
			Fund:               domain.Fund{ID: 10, PrimaryStrategy: "Real Estate", VintageYear: 2016, TotalCommitment: 20_900_000},
			UnfundedCommitment: 5_900_000,
			CurrentNAV:         5_000_000,
		},
	}

	result := s.ProjectPortfolio(funds, nil, 8, date(2025, 12, 31))
	require.Len(t, result.ByFund, 1)

	// With the fallback MOIC of 2.0 there is a distribution pool to pay
	// out; some quarter must distribute.
	var totalDistributions float64
	for _, d := range result.TotalDistributions {
		totalDistributions += d
	}
	assert.Greater(t, totalDistributions, 0.0)
}

func TestQuarterEndDates(t *testing.T) {
	tests := []struct {
		name  string
		asOf  time.Time
		first time.Time
	}{
		{"on a quarter end", date(2025, 12, 31), date(2026, 3, 31)},
		{"mid quarter", date(2026, 1, 15), date(2026, 3, 31)},
		{"day before quarter end", date(2026, 3, 30), date(2026, 3, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := QuarterEndDates(tt.asOf, 5)
			require.Len(t, dates, 5)
			assert.Equal(t, tt.first, dates[0])
			for i := 1; i < len(dates); i++ {
				assert.True(t, dates[i].After(dates[i-1]))
			}
		})
	}
}
