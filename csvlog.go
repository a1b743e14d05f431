package landsim

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// CSVRunLogger writes one Core A realisation as a set of comma-delimited
// files, named the way the historical tool names its per-instance
// outputs: <stub>/<stub>_<i>.txt for infection records,
// <stub>/<stub>_dpc_<i>.txt for the reporting series,
// <stub>/endTime_<i>.txt and <stub>/endReason_<i>.txt for the scalars.
type CSVRunLogger struct {
	dir      string
	stub     string
	instance int
}

// NewCSVRunLogger builds a logger writing under outStub/ for the given
// instance number.
func NewCSVRunLogger(outStub string, instance int) *CSVRunLogger {
	l := &CSVRunLogger{}
	l.SetBasePath(outStub, instance)
	return l
}

func (l *CSVRunLogger) SetBasePath(outStub string, instance int) {
	l.dir = outStub
	l.stub = filepath.Base(outStub)
	l.instance = instance
}

func (l *CSVRunLogger) Init() error {
	return os.MkdirAll(l.dir, 0755)
}

func (l *CSVRunLogger) Close() error { return nil }

func (l *CSVRunLogger) runPath() string {
	return filepath.Join(l.dir, fmt.Sprintf("%s_%d.txt", l.stub, l.instance))
}
func (l *CSVRunLogger) reportPath() string {
	return filepath.Join(l.dir, fmt.Sprintf("%s_dpc_%d.txt", l.stub, l.instance))
}
func (l *CSVRunLogger) endTimePath() string {
	return filepath.Join(l.dir, fmt.Sprintf("endTime_%d.txt", l.instance))
}
func (l *CSVRunLogger) endReasonPath() string {
	return filepath.Join(l.dir, fmt.Sprintf("endReason_%d.txt", l.instance))
}

// WriteRun appends the per-cell infection record rows, the reporting
// series, and the end-time/end-reason scalar files for one run.
func (l *CSVRunLogger) WriteRun(land *Landscape, trace *EpidemicTrace, bulk BulkUpModel) error {
	numCells := len(land.Cells)
	cumulativeIncidence, finalIncidence := incidenceFields(land, trace, bulk)

	var b bytes.Buffer
	const template = "%d,%d,%g,%d,%d,%d,%g,%g,%g,%g,%d,%g,%d,%g,%g\n"
	for rank, rec := range trace.Infections {
		c := &land.Cells[rec.CellID]
		srcX, srcY := -1, -1
		if sender, ok := rec.Source.Sender(); ok {
			s := &land.Cells[sender]
			srcX, srcY = s.X, s.Y
		}
		infType := 0
		if rec.Source.IsPrimary() {
			infType = 1
		} else if _, ok := rec.Source.Sender(); ok {
			infType = 2
		}
		row := fmt.Sprintf(template,
			c.X, c.Y, rec.TInf, infType, srcX, srcY,
			c.PropFull, c.RelInf, c.RelSus, c.RelPri,
			rank+1, float64(rank+1)/float64(numCells), rec.CellID,
			cumulativeIncidence[rank], finalIncidence[rank],
		)
		b.WriteString(row)
	}
	if err := appendToFile(l.runPath(), b.Bytes()); err != nil {
		return err
	}

	var rb bytes.Buffer
	for _, rep := range trace.Reports {
		rb.WriteString(fmt.Sprintf("%g,%d,%g,%g\n", rep.T, rep.NumInfected, rep.FracInfected, rep.FracFullInfected))
	}
	if err := appendToFile(l.reportPath(), rb.Bytes()); err != nil {
		return err
	}

	if err := appendToFile(l.endTimePath(), []byte(fmt.Sprintf("%g\n", trace.StopTime))); err != nil {
		return err
	}
	return appendToFile(l.endReasonPath(), []byte(fmt.Sprintf("%d\n", trace.StopReason)))
}

// CSVObjectiveLogger writes the annealer's per-iteration objective trace
// as one comma-delimited row per iteration.
type CSVObjectiveLogger struct {
	path string
}

func NewCSVObjectiveLogger(path string) *CSVObjectiveLogger {
	l := &CSVObjectiveLogger{}
	l.SetPath(path)
	return l
}

func (l *CSVObjectiveLogger) SetPath(path string) { l.path = path }

func (l *CSVObjectiveLogger) Init() error {
	return os.MkdirAll(filepath.Dir(l.path), 0755)
}

func (l *CSVObjectiveLogger) Close() error { return nil }

func (l *CSVObjectiveLogger) WriteEntry(e ObjectiveTraceEntry) error {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("%d,%g", e.Iter, e.ObjCur))
	for _, h := range e.Pattern {
		b.WriteString(fmt.Sprintf(",%d", h))
	}
	b.WriteString("\n")
	return appendToFile(l.path, b.Bytes())
}
