package landsim

import "github.com/pkg/errors"

// Pattern is an ordered candidate set of host cell ids for surveillance.
// Duplicates are allowed iff the configuration says so.
type Pattern []int

// ObjMode selects which of the three contribution rules the objective
// function uses per run.
type ObjMode int

const (
	// ObjProbAny is 1 - probability that no cell in the pattern is
	// detected.
	ObjProbAny ObjMode = 0
	// ObjBernoulli is a Bernoulli sample of "any detection" at
	// probability 1 - p_not_any.
	ObjBernoulli ObjMode = 1
	// ObjExpectedFinds is the expected number of cells in the pattern
	// detected.
	ObjExpectedFinds ObjMode = 2
)

// pDetectFor looks up a host's detection probability within one run via
// binary search; a host never infected in that run contributes 0.
func pDetectFor(run *RunRecord, hostID int) float64 {
	i, ok := run.indexOf(hostID)
	if !ok {
		return 0
	}
	return run.PDetect[i]
}

// Objective evaluates a pattern's mean contribution across every run in
// the ensemble, under the given mode.
func Objective(e *Ensemble, p Pattern, mode ObjMode, rng *RNG) (float64, error) {
	if mode != ObjProbAny && mode != ObjBernoulli && mode != ObjExpectedFinds {
		return 0, errors.Errorf(UnrecognizedObjectiveModeError, mode)
	}

	total := 0.0
	for ri := range e.Runs {
		run := &e.Runs[ri]
		pNotAny := 1.0
		eFinds := 0.0
		for _, h := range p {
			pd := pDetectFor(run, h)
			pNotAny *= 1 - pd
			eFinds += pd
		}

		var contribution float64
		switch mode {
		case ObjProbAny:
			contribution = 1 - pNotAny
		case ObjBernoulli:
			if rng.Uniform01() < 1-pNotAny {
				contribution = 1
			}
		case ObjExpectedFinds:
			contribution = eFinds
		}
		total += contribution
	}
	if len(e.Runs) == 0 {
		return 0, nil
	}
	return total / float64(len(e.Runs)), nil
}
