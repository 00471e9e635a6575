package projection

// ShapeParams are the pacing-curve parameters for one strategy. Peak and
// trough are expressed as fractions of the projection horizon.
type ShapeParams struct {
	CallPeakFraction   float64 `json:"call_peak_fraction"`
	CallSteepness      float64 `json:"call_steepness"`
	DistTroughFraction float64 `json:"dist_trough_fraction"`
	DistSteepness      float64 `json:"dist_steepness"`
	JCurveDepth        float64 `json:"j_curve_depth"` // Annual early depreciation rate
}

// DefaultStrategy is the profile used for any strategy name missing from
// the table. It is a real table entry, not a separate code path.
const DefaultStrategy = "Private Equity"

// strategyShapes maps primary strategy names to their pacing profiles.
var strategyShapes = map[string]ShapeParams{
	"Venture Capital": {
		CallPeakFraction:   0.3, // Early investment
		CallSteepness:      2.5,
		DistTroughFraction: 0.5, // Late returns
		DistSteepness:      1.2,
		JCurveDepth:        0.15, // Deep J-curve
	},
	DefaultStrategy: {
		CallPeakFraction:   0.4,
		CallSteepness:      2.0,
		DistTroughFraction: 0.4,
		DistSteepness:      1.5,
		JCurveDepth:        0.08,
	},
	"Real Estate": {
		CallPeakFraction:   0.2, // Fast deployment
		CallSteepness:      3.0,
		DistTroughFraction: 0.1, // Quick returns
		DistSteepness:      2.0,
		JCurveDepth:        0.02,
	},
	"Infrastructure": {
		CallPeakFraction:   0.5, // Slow deployment
		CallSteepness:      1.5,
		DistTroughFraction: 0.2, // Steady returns
		DistSteepness:      3.0,
		JCurveDepth:        0.01,
	},
}

// ShapeParamsFor returns the pacing profile for a strategy, falling back to
// the DefaultStrategy row for unrecognized names.
func ShapeParamsFor(strategy string) ShapeParams {
	if params, ok := strategyShapes[strategy]; ok {
		return params
	}
	return strategyShapes[DefaultStrategy]
}

// callPeakPeriod converts the peak fraction to a period index.
func (p ShapeParams) callPeakPeriod(numPeriods int) int {
	return int(float64(numPeriods) * p.CallPeakFraction)
}

// distTroughPeriod converts the trough fraction to a period index.
func (p ShapeParams) distTroughPeriod(numPeriods int) int {
	return int(float64(numPeriods) * p.DistTroughFraction)
}
