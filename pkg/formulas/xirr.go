package formulas

import (
	"errors"
	"math"
	"time"
)

// Failure modes of the IRR solver. Ratio metrics never error; they return
// nil on a guarded denominator instead.
var (
	// ErrInsufficientData means fewer than two flows, or flows and dates
	// of different lengths.
	ErrInsufficientData = errors.New("insufficient cash flow data for IRR")

	// ErrNonConvergence means the solver ran out of iterations or the NPV
	// derivative collapsed below tolerance.
	ErrNonConvergence = errors.New("IRR did not converge")

	// ErrNumericInstability means the candidate rate left the stable band
	// or an intermediate value overflowed.
	ErrNumericInstability = errors.New("IRR calculation is numerically unstable")
)

// Solver defaults, overridable per call via XIRROptions.
const (
	DefaultIRRGuess         = 0.1
	DefaultIRRMaxIterations = 100
	DefaultIRRTolerance     = 1e-6

	// Candidate rates outside this band are treated as divergence.
	irrRateFloor   = -0.99
	irrRateCeiling = 10.0

	daysPerYear = 365.25
)

// XIRROptions tunes the Newton-Raphson solver.
type XIRROptions struct {
	InitialGuess  float64
	MaxIterations int
	Tolerance     float64
}

// DefaultXIRROptions returns the standard solver settings.
func DefaultXIRROptions() XIRROptions {
	return XIRROptions{
		InitialGuess:  DefaultIRRGuess,
		MaxIterations: DefaultIRRMaxIterations,
		Tolerance:     DefaultIRRTolerance,
	}
}

// XIRR calculates the internal rate of return for irregularly dated cash
// flows using the Newton-Raphson method.
//
// Flows are signed: negative for capital leaving the investor (calls, fees),
// positive for capital returned (distributions). Times are converted to
// Actual/365.25 year fractions from dates[0].
//
// Returns the converged annual rate as a decimal (0.15 for 15%), or one of
// the sentinel errors above.
func XIRR(cashFlows []float64, dates []time.Time, opts XIRROptions) (float64, error) {
	if len(cashFlows) < 2 || len(cashFlows) != len(dates) {
		return 0, ErrInsufficientData
	}

	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultIRRMaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultIRRTolerance
	}

	// Year fractions from the first flow date.
	start := dates[0]
	years := make([]float64, len(dates))
	for i, d := range dates {
		years[i] = d.Sub(start).Hours() / 24 / daysPerYear
	}

	rate := opts.InitialGuess

	for iter := 0; iter < opts.MaxIterations; iter++ {
		var npv, dnpv float64
		for i, cf := range cashFlows {
			t := years[i]
			discount := math.Pow(1+rate, t)
			npv += cf / discount
			dnpv += -cf * t / math.Pow(1+rate, t+1)
		}

		if math.IsNaN(npv) || math.IsInf(npv, 0) || math.IsNaN(dnpv) || math.IsInf(dnpv, 0) {
			return 0, ErrNumericInstability
		}

		if math.Abs(npv) < opts.Tolerance {
			return rate, nil
		}

		// Derivative collapse makes the Newton step meaningless.
		if math.Abs(dnpv) < opts.Tolerance {
			return 0, ErrNonConvergence
		}

		rate = rate - npv/dnpv

		if rate < irrRateFloor || rate > irrRateCeiling {
			return 0, ErrNumericInstability
		}
	}

	return 0, ErrNonConvergence
}
