package landsim

// sampleLandscape builds a small in-memory landscape for tests without
// touching disk.
func sampleLandscape(rows, cols int, propFull, relInf, relSus, relPri float64) *Landscape {
	l := &Landscape{Rows: rows, Cols: cols}
	l.cellLookup = make([]int, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := newCell(col, row, propFull, relInf, relSus, relPri)
			idx := len(l.Cells)
			l.Cells = append(l.Cells, cell)
			l.cellLookup[row*cols+col] = idx
			l.TotalFull += propFull
		}
	}
	return l
}

func sampleSimConfig() SimConfig {
	return SimConfig{
		CellThresh:       0,
		NumIts:           1,
		MaxTime:          10,
		RatePriInf:       1,
		RateSecInf:       0,
		DispScale:        1,
		ReportTime:       1,
		MaxIncidence:     1,
		WithinCellBulkUp: 10,
		WithinCellMin:    0.01,
		TrueMinFlag:      false,
	}
}

// sampleEnsemble builds a minimal two-run ensemble in memory, each run
// infecting three host ids (0,1,2 in the first run, 1,2,3 in the second)
// at different times, for annealer/objective tests that don't need full
// epidemic traces.
func sampleEnsemble() *Ensemble {
	e := &Ensemble{occurrenceCounts: make(map[int]int)}
	run1 := RunRecord{
		HostIDs:     []int{0, 1, 2},
		TInf:        []float64{0, 1, 2},
		HostDensity: []float64{1, 1, 1},
		PDetect:     []float64{0.9, 0.5, 0.1},
		MaxTimeInf:  10,
	}
	run2 := RunRecord{
		HostIDs:     []int{1, 2, 3},
		TInf:        []float64{0.5, 1.5, 2.5},
		HostDensity: []float64{1, 1, 1},
		PDetect:     []float64{0.4, 0.6, 0.2},
		MaxTimeInf:  10,
	}
	e.Runs = []RunRecord{run1, run2}
	for _, h := range []int{0, 1, 2, 3} {
		e.everInfected = append(e.everInfected, h)
	}
	e.occurrenceCounts[0] = 1
	e.occurrenceCounts[1] = 2
	e.occurrenceCounts[2] = 2
	e.occurrenceCounts[3] = 1
	return e
}
