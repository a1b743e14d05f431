package landsim

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RunRecord is one run's slice of the ensemble: parallel arrays indexed
// by position, sorted by host_id so that lookups can binary-search.
type RunRecord struct {
	HostIDs     []int // sorted
	TInf        []float64
	HostDensity []float64
	PDetect     []float64 // filled in by ComputeDetectionProbabilities
	MaxTimeInf  float64
}

// indexOf returns the position of hostID in this run via binary search,
// or (-1, false) if the host was never infected in this run.
func (r *RunRecord) indexOf(hostID int) (int, bool) {
	i := sort.SearchInts(r.HostIDs, hostID)
	if i < len(r.HostIDs) && r.HostIDs[i] == hostID {
		return i, true
	}
	return -1, false
}

// Ensemble is the loaded collection of runs plus the union of every host
// id infected in at least one run, with occurrence counts — the set
// patterns are drawn from.
type Ensemble struct {
	Runs []RunRecord

	everInfected     []int // sorted, deduplicated
	occurrenceCounts map[int]int
}

// EverInfected returns the sorted, deduplicated list of host ids infected
// in at least one run.
func (e *Ensemble) EverInfected() []int { return e.everInfected }

// OccurrenceCount returns how many runs a host id was infected in.
func (e *Ensemble) OccurrenceCount(hostID int) int { return e.occurrenceCounts[hostID] }

const (
	ensembleFieldTInf        = 2
	ensembleFieldHostDensity = 6
	ensembleFieldHostID      = 12
)

// LoadEnsemble reads run files named stub_<i>.txt (1-indexed) from dir,
// each paired with an endTime_<i>.txt carrying that run's max_time_inf. If
// lastRunNumber.txt is present its count is checked against the number of
// run files actually found.
func LoadEnsemble(dir, stub string) (*Ensemble, error) {
	numRuns, haveCount, err := readLastRunNumber(dir)
	if err != nil {
		return nil, err
	}

	e := &Ensemble{occurrenceCounts: make(map[int]int)}
	seen := make(map[int]struct{})

	i := 1
	for {
		runPath := filepath.Join(dir, fmt.Sprintf("%s_%d.txt", stub, i))
		if _, err := os.Stat(runPath); err != nil {
			break
		}
		rec, err := loadRunRecord(runPath)
		if err != nil {
			return nil, err
		}
		endTimePath := filepath.Join(dir, fmt.Sprintf("endTime_%d.txt", i))
		maxT, err := readSingleFloat(endTimePath)
		if err != nil {
			return nil, err
		}
		rec.MaxTimeInf = maxT

		for _, h := range rec.HostIDs {
			if _, ok := seen[h]; !ok {
				seen[h] = struct{}{}
				e.everInfected = append(e.everInfected, h)
			}
			e.occurrenceCounts[h]++
		}
		e.Runs = append(e.Runs, *rec)
		i++
	}

	if haveCount && numRuns != len(e.Runs) {
		return nil, errors.Errorf(EnsembleRunCountError, numRuns, len(e.Runs))
	}
	sort.Ints(e.everInfected)
	return e, nil
}

func loadRunRecord(path string) (*RunRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening ensemble run file %s", path)
	}
	defer f.Close()

	rec := &RunRecord{}
	type row struct {
		hostID int
		tInf   float64
		dens   float64
	}
	var rows []row

	sc := bufio.NewScanner(f)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		fields := strings.Fields(sc.Text())
		if len(fields) < ensembleFieldHostID {
			return nil, errors.Errorf(EnsembleLineFieldsError, path, lineNum, ensembleFieldHostID, len(fields))
		}
		tInf, err := strconv.ParseFloat(fields[ensembleFieldTInf-1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "ensemble file %s line %d: t_inf field", path, lineNum)
		}
		dens, err := strconv.ParseFloat(fields[ensembleFieldHostDensity-1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "ensemble file %s line %d: host_density field", path, lineNum)
		}
		hostID, err := strconv.Atoi(fields[ensembleFieldHostID-1])
		if err != nil {
			return nil, errors.Wrapf(err, "ensemble file %s line %d: host_id field", path, lineNum)
		}
		rows = append(rows, row{hostID: hostID, tInf: tInf, dens: dens})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading ensemble run file %s", path)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].hostID < rows[j].hostID })
	rec.HostIDs = make([]int, len(rows))
	rec.TInf = make([]float64, len(rows))
	rec.HostDensity = make([]float64, len(rows))
	for i, r := range rows {
		rec.HostIDs[i] = r.hostID
		rec.TInf[i] = r.tInf
		rec.HostDensity[i] = r.dens
	}
	return rec, nil
}

func readSingleFloat(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s", path)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s as a number", path)
	}
	return v, nil
}

func readLastRunNumber(dir string) (count int, present bool, err error) {
	path := filepath.Join(dir, "lastRunNumber.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false, errors.Wrapf(err, "parsing %s as an integer", path)
	}
	return n, true, nil
}

// NewEnsembleFromTraces builds an Ensemble directly from in-memory run
// traces, for callers (such as the campaign runner) that chain Core A
// straight into Core B within one process instead of round-tripping
// through the on-disk ensemble file format.
func NewEnsembleFromTraces(l *Landscape, traces []*EpidemicTrace) *Ensemble {
	e := &Ensemble{occurrenceCounts: make(map[int]int)}
	seen := make(map[int]struct{})

	for _, tr := range traces {
		type row struct {
			hostID int
			tInf   float64
			dens   float64
		}
		rows := make([]row, 0, len(tr.Infections))
		for _, inf := range tr.Infections {
			rows = append(rows, row{
				hostID: inf.CellID,
				tInf:   inf.TInf,
				dens:   l.Cells[inf.CellID].PropFull,
			})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].hostID < rows[j].hostID })

		rec := RunRecord{MaxTimeInf: tr.StopTime}
		for _, r := range rows {
			rec.HostIDs = append(rec.HostIDs, r.hostID)
			rec.TInf = append(rec.TInf, r.tInf)
			rec.HostDensity = append(rec.HostDensity, r.dens)
			if _, ok := seen[r.hostID]; !ok {
				seen[r.hostID] = struct{}{}
				e.everInfected = append(e.everInfected, r.hostID)
			}
			e.occurrenceCounts[r.hostID]++
		}
		e.Runs = append(e.Runs, rec)
	}
	sort.Ints(e.everInfected)
	return e
}
