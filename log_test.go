package landsim

import (
	"math"
	"testing"
)

// incidenceFixture builds a 3-cell landscape and a trace where the cells
// infect in order 0, 1, 2 at increasing times, for exercising
// incidenceFields against a hand-computed expectation.
func incidenceFixture() (*Landscape, *EpidemicTrace, BulkUpModel) {
	l := sampleLandscape(1, 3, 1.0, 1, 1, 1)
	bulk := BulkUpModel{R: 2.0, W0: 0.1, TrueMinFlag: false}

	trace := &EpidemicTrace{
		Infections: []InfectionRecord{
			{CellID: 0, TInf: 0, Source: PrimarySource},
			{CellID: 1, TInf: 1, Source: SecondaryFrom(0)},
			{CellID: 2, TInf: 2.5, Source: SecondaryFrom(1)},
		},
		StopTime: 5,
	}
	return l, trace, bulk
}

func TestIncidenceFieldsCumulativeMatchesGroundTruthSum(t *testing.T) {
	l, trace, bulk := incidenceFixture()
	cumulative, _ := incidenceFields(l, trace, bulk)

	for j := range trace.Infections {
		tInfJ := trace.Infections[j].TInf
		want := 0.0
		for k := 0; k <= j; k++ {
			c := &l.Cells[trace.Infections[k].CellID]
			want += bulk.Incidence(c.PropFull, tInfJ-trace.Infections[k].TInf)
		}
		want /= l.TotalFull
		if math.Abs(cumulative[j]-want) > 1e-12 {
			t.Fatalf("row %d: cumulative = %g, want %g", j, cumulative[j], want)
		}
	}
}

func TestIncidenceFieldsFinalIsPerCellNotRunWideConstant(t *testing.T) {
	l, trace, bulk := incidenceFixture()
	_, final := incidenceFields(l, trace, bulk)

	for j := range trace.Infections {
		c := &l.Cells[trace.Infections[j].CellID]
		want := bulk.Incidence(c.PropFull, trace.StopTime-trace.Infections[j].TInf) / c.PropFull
		if math.Abs(final[j]-want) > 1e-12 {
			t.Fatalf("row %d: final = %g, want %g", j, final[j], want)
		}
	}
	// Rows infected earlier have had longer to bulk up towards stop time,
	// so their final incidence fraction should be strictly larger; a
	// run-wide constant would make every row equal.
	if !(final[0] > final[1] && final[1] > final[2]) {
		t.Fatalf("expected strictly decreasing final incidence by infection order, got %v", final)
	}
}

func TestIncidenceFieldsEmptyTrace(t *testing.T) {
	l := sampleLandscape(1, 2, 1.0, 1, 1, 1)
	bulk := BulkUpModel{R: 1, W0: 0.1, TrueMinFlag: false}
	cumulative, final := incidenceFields(l, &EpidemicTrace{}, bulk)
	if len(cumulative) != 0 || len(final) != 0 {
		t.Fatalf("expected empty slices for a run with no infections, got %v / %v", cumulative, final)
	}
}
