package landsim

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeEnsembleFixture builds a two-run ensemble directory on disk in the
// stub_<i>.txt / endTime_<i>.txt layout LoadEnsemble expects. Fields are
// 1-indexed per the historical ensemble file format: position 2 is t_inf,
// 6 is host_density, 12 is host_id.
func writeEnsembleFixture(t *testing.T, dir, stub string) {
	t.Helper()
	row := func(tInf, dens float64, hostID int) string {
		fields := make([]string, 12)
		for i := range fields {
			fields[i] = "0"
		}
		fields[ensembleFieldTInf-1] = fmt.Sprintf("%g", tInf)
		fields[ensembleFieldHostDensity-1] = fmt.Sprintf("%g", dens)
		fields[ensembleFieldHostID-1] = fmt.Sprintf("%d", hostID)
		line := ""
		for i, f := range fields {
			if i > 0 {
				line += " "
			}
			line += f
		}
		return line
	}

	run1 := row(1.0, 0.8, 3) + "\n" + row(2.0, 0.5, 1) + "\n"
	run2 := row(0.5, 0.9, 1) + "\n"

	if err := os.WriteFile(filepath.Join(dir, stub+"_1.txt"), []byte(run1), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, stub+"_2.txt"), []byte(run2), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "endTime_1.txt"), []byte("10.0"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "endTime_2.txt"), []byte("12.0"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadEnsembleParsesRunsAndFields(t *testing.T) {
	dir := t.TempDir()
	writeEnsembleFixture(t, dir, "run")

	e, err := LoadEnsemble(dir, "run")
	if err != nil {
		t.Fatal(err)
	}
	if len(e.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(e.Runs))
	}
	if e.Runs[0].MaxTimeInf != 10.0 {
		t.Fatalf("run 1 MaxTimeInf = %g, want 10.0", e.Runs[0].MaxTimeInf)
	}
	if e.Runs[1].MaxTimeInf != 12.0 {
		t.Fatalf("run 2 MaxTimeInf = %g, want 12.0", e.Runs[1].MaxTimeInf)
	}

	// run 1 should be sorted by host id: 1 then 3.
	if len(e.Runs[0].HostIDs) != 2 || e.Runs[0].HostIDs[0] != 1 || e.Runs[0].HostIDs[1] != 3 {
		t.Fatalf("run 1 host ids not sorted: %v", e.Runs[0].HostIDs)
	}
	idx, ok := e.Runs[0].indexOf(3)
	if !ok || e.Runs[0].TInf[idx] != 1.0 || e.Runs[0].HostDensity[idx] != 0.8 {
		t.Fatalf("host 3 fields not parsed at the expected column positions")
	}
}

func TestLoadEnsembleEverInfectedIsUnionAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writeEnsembleFixture(t, dir, "run")

	e, err := LoadEnsemble(dir, "run")
	if err != nil {
		t.Fatal(err)
	}
	want := map[int]bool{1: true, 3: true}
	if len(e.EverInfected()) != len(want) {
		t.Fatalf("EverInfected() = %v, want hosts %v", e.EverInfected(), want)
	}
	for _, h := range e.EverInfected() {
		if !want[h] {
			t.Fatalf("unexpected host %d in EverInfected()", h)
		}
	}
	if e.OccurrenceCount(1) != 2 {
		t.Fatalf("host 1 occurs in both runs, want OccurrenceCount 2, got %d", e.OccurrenceCount(1))
	}
	if e.OccurrenceCount(3) != 1 {
		t.Fatalf("host 3 occurs in one run, want OccurrenceCount 1, got %d", e.OccurrenceCount(3))
	}
}

func TestLoadEnsembleRejectsShortLines(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "run_1.txt"), []byte("1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "endTime_1.txt"), []byte("1.0"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEnsemble(dir, "run"); err == nil {
		t.Fatal("expected an error for a line with too few fields")
	}
}

func TestLoadEnsembleChecksLastRunNumber(t *testing.T) {
	dir := t.TempDir()
	writeEnsembleFixture(t, dir, "run")
	if err := os.WriteFile(filepath.Join(dir, "lastRunNumber.txt"), []byte("5"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEnsemble(dir, "run"); err == nil {
		t.Fatal("expected a mismatch error between lastRunNumber.txt and the actual run file count")
	}
}

func TestNewEnsembleFromTracesBuildsRunRecordsInProcess(t *testing.T) {
	l := sampleLandscape(2, 2, 1, 1, 1, 1)
	traces := []*EpidemicTrace{
		{
			Infections: []InfectionRecord{
				{CellID: 0, TInf: 1.0, Source: PrimarySource},
				{CellID: 2, TInf: 2.0, Source: SecondaryFrom(0)},
			},
			StopTime: 5,
		},
	}
	e := NewEnsembleFromTraces(l, traces)
	if len(e.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(e.Runs))
	}
	if e.Runs[0].MaxTimeInf != 5 {
		t.Fatalf("MaxTimeInf = %g, want 5", e.Runs[0].MaxTimeInf)
	}
	if len(e.EverInfected()) != 2 {
		t.Fatalf("expected 2 ever-infected hosts, got %v", e.EverInfected())
	}
}
