package landsim

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestCSVRunLoggerWriteRunIncidenceColumnsMatchIncidenceFields(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "run")
	logger := NewCSVRunLogger(stub, 0)
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	land, trace, bulk := incidenceFixture()
	if err := logger.WriteRun(land, trace, bulk); err != nil {
		t.Fatal(err)
	}

	wantCumulative, wantFinal := incidenceFields(land, trace, bulk)

	f, err := os.Open(logger.runPath())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	row := 0
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ",")
		if len(fields) != 15 {
			t.Fatalf("row %d: expected 15 fields, got %d (%q)", row, len(fields), scanner.Text())
		}
		gotCumulative, err := strconv.ParseFloat(fields[13], 64)
		if err != nil {
			t.Fatal(err)
		}
		gotFinal, err := strconv.ParseFloat(fields[14], 64)
		if err != nil {
			t.Fatal(err)
		}
		if gotCumulative != wantCumulative[row] {
			t.Fatalf("row %d: cumulative_incidence_fraction = %g, want %g", row, gotCumulative, wantCumulative[row])
		}
		if gotFinal != wantFinal[row] {
			t.Fatalf("row %d: final_incidence_fraction = %g, want %g", row, gotFinal, wantFinal[row])
		}
		// The rank/num_cells column (index 11) must stay distinct from the
		// cumulative incidence column: they were previously aliased.
		rankFrac, err := strconv.ParseFloat(fields[11], 64)
		if err != nil {
			t.Fatal(err)
		}
		if rankFrac == gotCumulative && row < len(wantCumulative)-1 {
			t.Fatalf("row %d: rank_frac and cumulative incidence must not collapse to the same value here", row)
		}
		row++
	}
	if row != len(trace.Infections) {
		t.Fatalf("expected %d rows, got %d", len(trace.Infections), row)
	}
}

func TestCSVRunLoggerWriteRunFinalIncidenceVariesPerRow(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "run")
	logger := NewCSVRunLogger(stub, 1)
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	land, trace, bulk := incidenceFixture()
	if err := logger.WriteRun(land, trace, bulk); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(logger.runPath())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	finals := make([]float64, len(lines))
	for i, line := range lines {
		fields := strings.Split(line, ",")
		v, err := strconv.ParseFloat(fields[14], 64)
		if err != nil {
			t.Fatal(err)
		}
		finals[i] = v
	}
	if finals[0] == finals[1] || finals[1] == finals[2] {
		t.Fatalf("final_incidence_fraction must vary per row, not repeat a run-wide constant: %v", finals)
	}
}
