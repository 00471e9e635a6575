package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Pacing curves for the Takahashi/Alexander-style projection model. Both
// return weights normalized to sum to 1.0, or all zeros when the raw curve
// sums to zero.

// SCurve generates a logistic-sigmoid deployment profile centered at
// peakPeriod. Higher steepness concentrates deployment around the peak.
// Used to pace capital calls.
func SCurve(numPeriods, peakPeriod int, steepness float64) []float64 {
	if numPeriods <= 0 {
		return nil
	}

	values := make([]float64, numPeriods)
	for i := 0; i < numPeriods; i++ {
		x := (float64(i) - float64(peakPeriod)) / (float64(numPeriods) / steepness)
		values[i] = 1 / (1 + math.Exp(-x))
	}

	return normalize(values)
}

// JCurve generates a back-loaded distribution profile: near-zero weight
// before troughPeriod, exponential growth after it. Used to pace
// distributions.
func JCurve(numPeriods, troughPeriod int, recoverySteepness float64) []float64 {
	if numPeriods <= 0 {
		return nil
	}

	values := make([]float64, numPeriods)
	for i := 0; i < numPeriods; i++ {
		if i < troughPeriod {
			values[i] = 0.01
		} else {
			x := (float64(i) - float64(troughPeriod)) / recoverySteepness
			values[i] = math.Exp(x / float64(numPeriods))
		}
	}

	return normalize(values)
}

func normalize(values []float64) []float64 {
	total := floats.Sum(values)
	if total > 0 {
		floats.Scale(1/total, values)
	} else {
		for i := range values {
			values[i] = 0
		}
	}
	return values
}
