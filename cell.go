package landsim

import "math"

// InfSource tags how a cell became infected: nothing yet, an external
// primary arrival, or a named source cell's secondary emission. Used
// instead of a sentinel integer so that "no source" and "source cell 0"
// can never be confused.
type InfSource struct {
	kind   infKind
	sender int
}

type infKind uint8

const (
	infNone infKind = iota
	infPrimary
	infSecondary
)

// NoSource is the zero InfSource: the cell has not been infected yet.
var NoSource = InfSource{kind: infNone}

// PrimarySource marks an infection caused by inoculum from outside the
// landscape.
var PrimarySource = InfSource{kind: infPrimary}

// SecondaryFrom marks an infection transmitted by the named source cell.
func SecondaryFrom(cellIndex int) InfSource {
	return InfSource{kind: infSecondary, sender: cellIndex}
}

// IsNone reports whether the cell is still uninfected.
func (s InfSource) IsNone() bool { return s.kind == infNone }

// IsPrimary reports whether the infection arrived as a primary.
func (s InfSource) IsPrimary() bool { return s.kind == infPrimary }

// Sender returns the source cell index and true when the infection was a
// secondary transmission; otherwise it returns (-1, false).
func (s InfSource) Sender() (int, bool) {
	if s.kind != infSecondary {
		return -1, false
	}
	return s.sender, true
}

// undefinedTime marks t_inf / t_next as not-yet-set. The epidemic clock
// never produces a negative time, so -1 is an unambiguous sentinel.
const undefinedTime = -1.0

// Cell is one active grid position. Everywhere outside Landscape, a cell
// is referred to by its stable index into the landscape's active-cell
// arena, never by pointer or by (row, col).
type Cell struct {
	X, Y int

	PropFull float64 // host coverage fraction, in (0, 1]
	RelInf   float64 // relative infectivity multiplier
	RelSus   float64 // relative susceptibility multiplier
	RelPri   float64 // relative primary-pressure multiplier

	tInf    float64
	tNext   float64
	infType InfSource
}

func newCell(x, y int, propFull, relInf, relSus, relPri float64) Cell {
	return Cell{
		X: x, Y: y,
		PropFull: propFull, RelInf: relInf, RelSus: relSus, RelPri: relPri,
		tInf: undefinedTime, tNext: undefinedTime, infType: NoSource,
	}
}

// Infected reports whether t_inf has been set for this run.
func (c *Cell) Infected() bool { return c.tInf != undefinedTime }

// InfectedAt returns t_inf and true if the cell has been infected.
func (c *Cell) InfectedAt() (float64, bool) {
	if !c.Infected() {
		return 0, false
	}
	return c.tInf, true
}

// Source returns how this cell was infected.
func (c *Cell) Source() InfSource { return c.infType }

// reset clears all per-run mutable state, as required between runs.
func (c *Cell) reset() {
	c.tInf = undefinedTime
	c.tNext = undefinedTime
	c.infType = NoSource
}

// infect sets t_inf and the infection source. Invariant: called at most
// once per run per cell; callers must check Infected() first.
func (c *Cell) infect(t float64, src InfSource) {
	c.tInf = t
	c.infType = src
}

// Incidence returns the logistic within-cell incidence fraction at
// simulated time t, given the shape parameters J and r from the bulk-up
// model (see bulkup.go). Returns 0 if the cell is not yet infected.
func (c *Cell) Incidence(t, r, j float64) float64 {
	tau, ok := c.InfectedAt()
	if !ok {
		return 0
	}
	return c.PropFull / (1 + j*math.Exp(-r*(t-tau)))
}
