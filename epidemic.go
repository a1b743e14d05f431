package landsim

// StopReason records why a run ended.
type StopReason int

const (
	// StopMaxTime means the run reached max_time without crossing the
	// incidence threshold.
	StopMaxTime StopReason = 0
	// StopIncidence means true incidence reached max_incidence*total_full.
	StopIncidence StopReason = 1
)

// InfectionRecord is one entry in a run's ordered infection history.
type InfectionRecord struct {
	CellID int
	TInf   float64
	Source InfSource
}

// ReportTick is one row of the per-run reporting series, emitted every
// report_time simulated time units.
type ReportTick struct {
	T               float64
	NumInfected     int
	FracInfected    float64
	FracFullInfected float64
}

// RunStats accumulates operational counters present in the historical
// tool's console output; they carry no correctness weight, only
// diagnostic value.
type RunStats struct {
	NumPrimaryAttempts    int
	NumPrimaryAccepted    int
	NumSecondaryAttempts  int
	NumSecondaryAccepted  int
}

// EpidemicTrace is the full record of one realisation: the ordered
// infection history, the reporting series, and the reason the run
// stopped.
type EpidemicTrace struct {
	Infections []InfectionRecord
	Reports    []ReportTick
	StopReason StopReason
	StopTime   float64
	Stats      RunStats
}

// Epidemic bundles a landscape with the precomputed tables it needs to
// run repeated independent realisations. It is reused across runs; call
// Run to produce one EpidemicTrace, which resets the landscape's
// per-cell mutable state first.
type Epidemic struct {
	Landscape *Landscape
	Pressure  *PrimaryPressure
	Kernel    *DispersalKernel
	BulkUp    BulkUpModel
	Cfg       SimConfig

	clock *PrimaryClock
	queue *SecondaryQueue
}

// NewEpidemic assembles the engine for repeated runs over one landscape.
func NewEpidemic(l *Landscape, cfg SimConfig) (*Epidemic, error) {
	pressure := NewPrimaryPressure(l, cfg.RatePriInf)
	kernel, err := NewDispersalKernel(l.Cols, l.Rows, cfg.DispScale)
	if err != nil {
		return nil, err
	}
	rateSec := cfg.RateSecInf * kernel.RateScale

	e := &Epidemic{
		Landscape: l,
		Pressure:  pressure,
		Kernel:    kernel,
		BulkUp: BulkUpModel{
			R: cfg.WithinCellBulkUp, W0: cfg.WithinCellMin, TrueMinFlag: cfg.TrueMinFlag,
		},
		Cfg:   cfg,
		clock: NewPrimaryClock(pressure),
		queue: NewSecondaryQueue(len(l.Cells)),
	}
	e.Cfg.RateSecInf = rateSec
	return e, nil
}

// Run executes one independent realisation, resetting all per-cell state
// first.
func (e *Epidemic) Run(rng *RNG) (*EpidemicTrace, error) {
	e.Landscape.resetRun()
	e.queue.reset()
	e.clock.reset()

	trace := &EpidemicTrace{}
	t := 0.0

	e.clock.Arm(0, rng)
	if e.Cfg.RatePriInf == 0 {
		seedIdx := rng.IntN(len(e.Landscape.Cells))
		e.infect(seedIdx, 0, PrimarySource, rng, trace)
	}

	nextReport := 0.0
	emitReports := func(upTo float64) {
		for nextReport <= upTo {
			trace.Reports = append(trace.Reports, e.reportTick(nextReport, trace))
			nextReport += e.Cfg.ReportTime
		}
	}

	for {
		tPri := e.clock.NextT()
		var tSec float64
		if e.queue.Empty() {
			tSec = tPri + 1
		} else {
			tSec = e.queue.PeekMin()
		}

		if tPri <= tSec {
			if tPri >= e.Cfg.MaxTime {
				t = e.Cfg.MaxTime
				trace.StopReason = StopMaxTime
				trace.StopTime = t
				break
			}
			t = tPri
			trace.Stats.NumPrimaryAttempts++
			target := e.clock.DrawTargetCell(rng)
			if !e.Landscape.Cells[target].Infected() {
				trace.Stats.NumPrimaryAccepted++
				e.infect(target, t, PrimarySource, rng, trace)
			}
			e.clock.Arm(t, rng)
		} else {
			if tSec >= e.Cfg.MaxTime {
				t = e.Cfg.MaxTime
				trace.StopReason = StopMaxTime
				trace.StopTime = t
				break
			}
			srcIdx := e.queue.PopMin()
			t = tSec
			trace.Stats.NumSecondaryAttempts++

			src := &e.Landscape.Cells[srcIdx]
			res := e.Kernel.Sample(src.X, src.Y, e.Landscape, rng)
			if res.Kind == HitCell {
				target := &e.Landscape.Cells[res.CellID]
				if !target.Infected() {
					accept := rng.Uniform01() < target.RelSus*target.PropFull
					if accept {
						trace.Stats.NumSecondaryAccepted++
						e.infect(res.CellID, t, SecondaryFrom(srcIdx), rng, trace)
					}
				}
			}
			e.rescheduleSource(srcIdx, t, rng)
		}

		emitReports(t)

		incidence := e.trueIncidence(t)
		if incidence >= e.Cfg.MaxIncidence*e.Landscape.TotalFull {
			trace.StopReason = StopIncidence
			trace.StopTime = t
			break
		}
	}

	emitReports(t)
	return trace, nil
}

func (e *Epidemic) infect(cellID int, t float64, src InfSource, rng *RNG, trace *EpidemicTrace) {
	cell := &e.Landscape.Cells[cellID]
	cell.infect(t, src)
	trace.Infections = append(trace.Infections, InfectionRecord{CellID: cellID, TInf: t, Source: src})
	e.rescheduleSource(cellID, t, rng)
}

func (e *Epidemic) rescheduleSource(cellID int, t float64, rng *RNG) {
	cell := &e.Landscape.Cells[cellID]
	lambda := cell.PropFull * cell.RelInf * e.Cfg.RateSecInf
	delta, ok := e.BulkUp.NextEmissionDelay(t, cell.tInf, lambda, cell.PropFull, rng)
	if !ok {
		cell.tNext = undefinedTime
		return
	}
	cell.tNext = t + delta
	e.queue.Insert(cellID, cell.tNext)
}

func (e *Epidemic) trueIncidence(t float64) float64 {
	total := 0.0
	for i := range e.Landscape.Cells {
		c := &e.Landscape.Cells[i]
		if !c.Infected() {
			continue
		}
		total += e.BulkUp.Incidence(c.PropFull, t-c.tInf)
	}
	return total
}

func (e *Epidemic) reportTick(t float64, trace *EpidemicTrace) ReportTick {
	numInfected := len(trace.Infections)
	return ReportTick{
		T:                t,
		NumInfected:      numInfected,
		FracInfected:     float64(numInfected) / float64(len(e.Landscape.Cells)),
		FracFullInfected: e.trueIncidence(t) / e.Landscape.TotalFull,
	}
}
