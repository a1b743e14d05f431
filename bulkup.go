package landsim

import "math"

// BulkUpModel holds the logistic within-cell growth shape shared across a
// whole run: the bulk-up rate r and the shape parameter J, the latter
// derived once from within_cell_min and the true-min flag.
type BulkUpModel struct {
	R           float64 // within_cell_bulk_up
	W0          float64 // within_cell_min
	TrueMinFlag bool
}

// shapeJ computes J for a cell whose full coverage (or, for the
// detection model, host density) is propFull. Preserves the literal
// degenerate case from the source tool: under TrueMinFlag, if W0 >=
// propFull, J is forced to 0 (the cell is saturated immediately) rather
// than treated as an error.
func (b BulkUpModel) shapeJ(propFull float64) float64 {
	if b.TrueMinFlag {
		if b.W0 >= propFull {
			return 0
		}
		wPrime := b.W0 / propFull
		return (1 - wPrime) / wPrime
	}
	return (1 - b.W0) / b.W0
}

// Incidence returns the logistic incidence fraction propFull/(1+J e^-r tau)
// at tau time units after first infection.
func (b BulkUpModel) Incidence(propFull, tau float64) float64 {
	j := b.shapeJ(propFull)
	return propFull / (1 + j*math.Exp(-b.R*tau))
}

// NextEmissionDelay draws the delay, from current time tNow, until the
// next secondary emission from a source cell infected at tInf with
// maximum emission rate lambda = prop_full*rel_inf*rate_sec. Returns
// (delta, ok); ok is false when lambda <= 0, meaning no event should be
// scheduled.
func (b BulkUpModel) NextEmissionDelay(tNow, tInf, lambda, propFull float64, rng *RNG) (float64, bool) {
	if lambda <= 0 {
		return 0, false
	}
	tau := tNow - tInf
	j := b.shapeJ(propFull)
	u := rng.Uniform01()
	deltaMin := -math.Log(u) / lambda

	if j == 0 {
		return deltaMin, true
	}

	r := b.R
	inner := math.Exp(r*(tau+deltaMin)) + j*(math.Exp(r*deltaMin)-1)
	deltaReal := math.Log(inner)/r - tau
	return deltaReal, true
}
