package landsim

import (
	"path/filepath"
	"testing"
)

func TestSQLiteRunLoggerWriteRunIncidenceColumnsMatchIncidenceFields(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "run")
	logger := NewSQLiteRunLogger(stub, 0)
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	land, trace, bulk := incidenceFixture()
	if err := logger.WriteRun(land, trace, bulk); err != nil {
		t.Fatal(err)
	}

	wantCumulative, wantFinal := incidenceFields(land, trace, bulk)

	db, err := openSQLiteDB(logger.path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows, err := db.Query("select rank, cum_incidence, final_incidence from " + logger.infectionsTable() + " order by rank")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var rank int
		var cum, final float64
		if err := rows.Scan(&rank, &cum, &final); err != nil {
			t.Fatal(err)
		}
		if cum != wantCumulative[i] {
			t.Fatalf("row %d: cum_incidence = %g, want %g", i, cum, wantCumulative[i])
		}
		if final != wantFinal[i] {
			t.Fatalf("row %d: final_incidence = %g, want %g", i, final, wantFinal[i])
		}
		i++
	}
	if i != len(trace.Infections) {
		t.Fatalf("expected %d rows, got %d", len(trace.Infections), i)
	}
}
