package landsim

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const gisNodataToken = "-9999"
const gisHeaderLines = 6

// Landscape is the dense grid plus the sparse arena of active cells. A
// cell is active iff its prop_full is present and >= cellThresh. Active
// list indices are the stable cell ids used everywhere else.
type Landscape struct {
	Rows, Cols int
	Cells      []Cell // the active-cell arena

	// cellLookup maps row*Cols+col to an index into Cells, or -1 when
	// the position holds no active cell.
	cellLookup []int

	TotalFull float64
}

// CellAt returns the active-cell index at (row, col), or (-1, false) if
// the position is not active.
func (l *Landscape) CellAt(row, col int) (int, bool) {
	if row < 0 || row >= l.Rows || col < 0 || col >= l.Cols {
		return -1, false
	}
	idx := l.cellLookup[row*l.Cols+col]
	if idx < 0 {
		return -1, false
	}
	return idx, true
}

// NumCells returns the total number of grid positions (active or not).
func (l *Landscape) NumCells() int { return l.Rows * l.Cols }

// gridField is one of the four parallel raster layers, read in the order
// prop_full, rel_inf, rel_pri, rel_sus as in the reference tool.
type gridField struct {
	values [][]float64 // 0 at NODATA positions; see nodata
	nodata [][]bool
	ncols  int
	nrows  int
}

func readGISHeader(sc *bufio.Scanner, path string) (ncols, nrows int, err error) {
	ncols, nrows = -1, -1
	for i := 0; i < gisHeaderLines; i++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, 0, errors.Wrapf(err, "raster %s: truncated header", path)
			}
			return 0, 0, errors.Errorf("raster %s: truncated header", path)
		}
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch {
		case strings.HasPrefix(fields[0], "ncols"):
			ncols, err = strconv.Atoi(fields[1])
			if err != nil {
				return 0, 0, errors.Wrapf(err, RasterHeaderError, "ncols", i, line)
			}
		case strings.HasPrefix(fields[0], "nrows"):
			nrows, err = strconv.Atoi(fields[1])
			if err != nil {
				return 0, 0, errors.Wrapf(err, RasterHeaderError, "nrows", i, line)
			}
		}
	}
	if ncols < 0 || nrows < 0 {
		return 0, 0, errors.Errorf(RasterHeaderError, "ncols/nrows", gisHeaderLines, "<missing>")
	}
	return ncols, nrows, nil
}

func readGISField(path string, expectNcols, expectNrows int) (*gridField, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening raster file %s", path)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	ncols, nrows, err := readGISHeader(sc, path)
	if err != nil {
		return nil, err
	}
	if expectNcols > 0 && (ncols != expectNcols || nrows != expectNrows) {
		return nil, errors.Errorf("raster %s: expected %d columns x %d rows, got %d x %d",
			path, expectNcols, expectNrows, ncols, nrows)
	}

	g := &gridField{
		values: make([][]float64, nrows),
		nodata: make([][]bool, nrows),
		ncols:  ncols,
		nrows:  nrows,
	}
	for row := 0; row < nrows; row++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, errors.Wrapf(err, RasterRowCountError, path, nrows, row)
			}
			return nil, errors.Errorf(RasterRowCountError, path, nrows, row)
		}
		tokens := strings.Fields(sc.Text())
		if len(tokens) != ncols {
			return nil, errors.Errorf(RasterRowLengthError, path, row, ncols, len(tokens))
		}
		vals := make([]float64, ncols)
		nd := make([]bool, ncols)
		for col, tok := range tokens {
			if tok == gisNodataToken {
				nd[col] = true
				continue
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, errors.Wrapf(err, RasterParseNumberError, path, row, col, tok)
			}
			vals[col] = v
		}
		g.values[row] = vals
		g.nodata[row] = nd
	}
	if err := sc.Err(); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "reading raster file %s", path)
	}
	return g, nil
}

// LoadLandscape reads the four parallel ASCII-grid layers (prop_full,
// rel_inf, rel_pri, rel_sus) and assembles the active-cell arena. The
// first file establishes the grid shape; the remaining three must match
// it exactly and must carry real values (not NODATA) at every position
// that prop_full marks active.
func LoadLandscape(filePropFull, fileRelInf, fileRelPri, fileRelSus string, cellThresh float64) (*Landscape, error) {
	propFull, err := readGISField(filePropFull, 0, 0)
	if err != nil {
		return nil, err
	}
	relInf, err := readGISField(fileRelInf, propFull.ncols, propFull.nrows)
	if err != nil {
		return nil, err
	}
	relPri, err := readGISField(fileRelPri, propFull.ncols, propFull.nrows)
	if err != nil {
		return nil, err
	}
	relSus, err := readGISField(fileRelSus, propFull.ncols, propFull.nrows)
	if err != nil {
		return nil, err
	}

	l := &Landscape{Rows: propFull.nrows, Cols: propFull.ncols}
	l.cellLookup = make([]int, l.Rows*l.Cols)
	for i := range l.cellLookup {
		l.cellLookup[i] = -1
	}

	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			if propFull.nodata[row][col] {
				continue
			}
			pf := propFull.values[row][col]
			if pf < cellThresh {
				continue
			}
			if relInf.nodata[row][col] {
				return nil, errors.Errorf(RasterNodataAtActive, fileRelInf, row, col)
			}
			if relPri.nodata[row][col] {
				return nil, errors.Errorf(RasterNodataAtActive, fileRelPri, row, col)
			}
			if relSus.nodata[row][col] {
				return nil, errors.Errorf(RasterNodataAtActive, fileRelSus, row, col)
			}
			cell := newCell(col, row, pf,
				relInf.values[row][col], relSus.values[row][col], relPri.values[row][col])
			idx := len(l.Cells)
			l.Cells = append(l.Cells, cell)
			l.cellLookup[row*l.Cols+col] = idx
			l.TotalFull += pf
		}
	}
	return l, nil
}

// resetRun clears every cell's per-run mutable state; called between
// independent realisations of the same landscape.
func (l *Landscape) resetRun() {
	for i := range l.Cells {
		l.Cells[i].reset()
	}
}
