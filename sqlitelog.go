package landsim

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

func openSQLiteDB(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", path)
}

// SQLiteRunLogger writes one Core A realisation to a SQLite database,
// a pair of numbered tables per run (infections%03d, reports%03d), mirroring
// the historical tool's per-instance-numbered-table convention.
type SQLiteRunLogger struct {
	path     string
	instance int
}

func NewSQLiteRunLogger(outStub string, instance int) *SQLiteRunLogger {
	l := &SQLiteRunLogger{}
	l.SetBasePath(outStub, instance)
	return l
}

func (l *SQLiteRunLogger) SetBasePath(outStub string, instance int) {
	l.path = filepath.Join(outStub, filepath.Base(outStub)+".db")
	l.instance = instance
}

func (l *SQLiteRunLogger) infectionsTable() string { return fmt.Sprintf("infections%03d", l.instance) }
func (l *SQLiteRunLogger) reportsTable() string    { return fmt.Sprintf("reports%03d", l.instance) }

func (l *SQLiteRunLogger) Init() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return err
	}
	db, err := openSQLiteDB(l.path)
	if err != nil {
		return err
	}
	defer db.Close()

	stmt := fmt.Sprintf(`
	create table %s (id integer not null primary key, x int, y int, t_inf real,
		inf_type int, source_x int, source_y int, prop_full real, rel_inf real,
		rel_sus real, rel_pri real, rank int, rank_frac real, cell_id int,
		cum_incidence real, final_incidence real);
	create table %s (id integer not null primary key, t real, num_infected int,
		frac_infected real, frac_full_infected real);
	`, l.infectionsTable(), l.reportsTable())
	_, err = db.Exec(stmt)
	if err != nil {
		return fmt.Errorf("%q: %s", err, stmt)
	}
	return nil
}

func (l *SQLiteRunLogger) Close() error { return nil }

// WriteRun inserts the infection records and reporting series for one
// run as two transactions against its numbered tables.
func (l *SQLiteRunLogger) WriteRun(land *Landscape, trace *EpidemicTrace, bulk BulkUpModel) error {
	db, err := openSQLiteDB(l.path)
	if err != nil {
		return err
	}
	defer db.Close()

	numCells := len(land.Cells)
	cumulativeIncidence, finalIncidence := incidenceFields(land, trace, bulk)

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	insertStmt := "insert into " + l.infectionsTable() +
		`(x, y, t_inf, inf_type, source_x, source_y, prop_full, rel_inf, rel_sus,
		rel_pri, rank, rank_frac, cell_id, cum_incidence, final_incidence)
		values (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		return err
	}
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
		_, err = stmt.Exec(c.X, c.Y, rec.TInf, infType, srcX, srcY,
			c.PropFull, c.RelInf, c.RelSus, c.RelPri,
			rank+1, float64(rank+1)/float64(numCells), rec.CellID,
			cumulativeIncidence[rank], finalIncidence[rank])
		if err != nil {
			stmt.Close()
			return err
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		return err
	}

	tx, err = db.Begin()
	if err != nil {
		return err
	}
	reportStmt := "insert into " + l.reportsTable() +
		"(t, num_infected, frac_infected, frac_full_infected) values (?,?,?,?)"
	stmt, err = tx.Prepare(reportStmt)
	if err != nil {
		return err
	}
	for _, rep := range trace.Reports {
		_, err = stmt.Exec(rep.T, rep.NumInfected, rep.FracInfected, rep.FracFullInfected)
		if err != nil {
			stmt.Close()
			return err
		}
	}
	stmt.Close()
	return tx.Commit()
}
