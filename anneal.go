package landsim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ObjectiveTraceEntry is one row emitted by the annealer at every
// iteration: the iteration index, the current objective value, and a
// snapshot of the pattern at that point.
type ObjectiveTraceEntry struct {
	Iter    int
	ObjCur  float64
	Pattern Pattern
}

// Annealer runs the simulated-annealing pattern search described in
// §4.8: single-slot swaps, Metropolis acceptance, geometric cooling.
type Annealer struct {
	Ensemble        *Ensemble
	Mode            ObjMode
	NumSites        int
	AllowDuplicates bool
	Cool            float64
	Alpha           float64
	NumIters        int
}

// initialPattern draws NumSites hosts uniformly from the ensemble's
// ever-infected set, honouring the allow-duplicates flag. Built by
// appending accepted draws onto a growing slice, rather than filling a
// fixed-size slice out of order, so an unfilled slot never aliases a
// legitimate host id (slot zero value 0 is a valid host id).
func (a *Annealer) initialPattern(rng *RNG) Pattern {
	pool := a.Ensemble.EverInfected()
	p := make(Pattern, 0, a.NumSites)
	for len(p) < a.NumSites {
		candidate := pool[rng.IntN(len(pool))]
		if a.AllowDuplicates || !contains(p, candidate) {
			p = append(p, candidate)
		}
	}
	return p
}

func contains(p Pattern, v int) bool {
	for _, x := range p {
		if x == v {
			return true
		}
	}
	return false
}

func containsExcept(p Pattern, v int, except int) bool {
	for i, x := range p {
		if i == except {
			continue
		}
		if x == v {
			return true
		}
	}
	return false
}

// Run executes the annealing loop and returns the full objective trace:
// one entry per iteration j = 0..NumIters (NumIters+1 entries), each taken
// after that iteration's proposal was accepted or reverted. The initial
// pattern is not recorded as a separate entry.
func (a *Annealer) Run(rng *RNG) ([]ObjectiveTraceEntry, error) {
	pool := a.Ensemble.EverInfected()
	pattern := a.initialPattern(rng)
	objCur, err := Objective(a.Ensemble, pattern, a.Mode, rng)
	if err != nil {
		return nil, err
	}

	temperature := a.Cool
	trace := make([]ObjectiveTraceEntry, 0, a.NumIters+1)

	for j := 0; j <= a.NumIters; j++ {
		slot := rng.IntN(a.NumSites)
		previous := pattern[slot]

		var candidate int
		for {
			candidate = pool[rng.IntN(len(pool))]
			if a.AllowDuplicates || !containsExcept(pattern, candidate, slot) {
				break
			}
		}
		pattern[slot] = candidate

		objNew, err := Objective(a.Ensemble, pattern, a.Mode, rng)
		if err != nil {
			return nil, err
		}

		var acceptProb float64
		switch {
		case objNew > objCur:
			acceptProb = 1
		case (objNew-objCur)/temperature < -99:
			acceptProb = 0
		default:
			acceptProb = math.Exp((objNew - objCur) / temperature)
		}

		if rng.Uniform01() < acceptProb {
			objCur = objNew
		} else {
			pattern[slot] = previous
		}

		snapshot := make(Pattern, len(pattern))
		copy(snapshot, pattern)
		trace = append(trace, ObjectiveTraceEntry{Iter: j, ObjCur: objCur, Pattern: snapshot})

		temperature *= a.Alpha
	}
	return trace, nil
}

// TraceSummary is a distributional summary of an objective trace's current
// values, used to report how much the search actually moved instead of
// just its final value.
type TraceSummary struct {
	Mean    float64
	StdDev  float64
	Best    float64
	BestIdx int
}

// SummarizeTrace reduces a full objective trace to its mean, standard
// deviation, and best-seen value, so a caller can log a one-line summary
// of an annealing run without keeping the whole trace around.
func SummarizeTrace(trace []ObjectiveTraceEntry) TraceSummary {
	if len(trace) == 0 {
		return TraceSummary{}
	}
	values := make([]float64, len(trace))
	best, bestIdx := trace[0].ObjCur, 0
	for i, e := range trace {
		values[i] = e.ObjCur
		if e.ObjCur > best {
			best, bestIdx = e.ObjCur, i
		}
	}
	mean := stat.Mean(values, nil)
	return TraceSummary{
		Mean:    mean,
		StdDev:  stat.StdDev(values, nil),
		Best:    best,
		BestIdx: bestIdx,
	}
}
