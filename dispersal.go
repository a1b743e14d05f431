package landsim

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// dispersalHit classifies the outcome of a dispersal draw.
type dispersalHit int

const (
	// HitWithinSource means the draw landed inside the source cell
	// itself: no external infection attempt occurs.
	HitWithinSource dispersalHit = iota
	// HitOffLandscape means the draw fell beyond the kernel's support.
	HitOffLandscape
	// HitMiss means the draw resolved to an offset that is off-grid or
	// not an active cell.
	HitMiss
	// HitCell means the draw resolved to a live target cell.
	HitCell
)

// DispersalResult is the outcome of one dispersal draw.
type DispersalResult struct {
	Kind   dispersalHit
	CellID int // valid only when Kind == HitCell
}

// DispersalKernel is the quadrant-folded cumulative dispersal table. One
// quadrant is stored (size Cols x Rows of the landscape it was built
// for); sampling reflects into all four quadrants at draw time.
type DispersalKernel struct {
	cols, rows int
	cum        []float64 // row-major cumulative sums over the quadrant
	InCell     float64
	OnLandscape float64
	// RateScale is the factor the caller must multiply rate_sec_inf by,
	// to compensate for renormalisation when the raw kernel mass
	// exceeded 1. It is 1 when no renormalisation was needed.
	RateScale float64
}

// NewDispersalKernel builds the kernel for a cols x rows landscape and a
// given radial scale sigma (disp_scale).
func NewDispersalKernel(cols, rows int, sigma float64) (*DispersalKernel, error) {
	if sigma <= 0 {
		return nil, errors.Errorf(ZeroKernelMassError, sigma)
	}
	k := &DispersalKernel{cols: cols, rows: rows}
	probs := make([]float64, cols*rows)
	total := 0.0
	denom := 2 * math.Pi * sigma * sigma
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r := math.Hypot(float64(x), float64(y))
			p := math.Exp(-r/sigma) / denom
			if x == 0 || y == 0 {
				p /= 2
			}
			p *= 4
			probs[y*cols+x] = p
			total += p
		}
	}
	k.InCell = probs[0]
	k.OnLandscape = total
	k.RateScale = 1.0
	if total > 1 {
		k.RateScale = total
		for i := range probs {
			probs[i] /= total
		}
		k.InCell = probs[0]
		k.OnLandscape = 1.0
	}
	if k.OnLandscape <= 0 {
		return nil, errors.Errorf(ZeroKernelMassError, sigma)
	}

	k.cum = make([]float64, len(probs))
	running := 0.0
	for i, p := range probs {
		running += p
		k.cum[i] = running
	}
	return k, nil
}

func decodeOffset(idx, cols int) (dx, dy int) {
	return idx % cols, idx / cols
}

// Sample draws a target relative to a source cell at (srcX, srcY) on the
// given landscape, drawing exactly one uniform variate from rng.
func (k *DispersalKernel) Sample(srcX, srcY int, l *Landscape, rng *RNG) DispersalResult {
	u := rng.UniformN(4)
	q := int(u)
	if q > 3 {
		q = 3
	}
	r := u - float64(q)

	if r < k.InCell {
		return DispersalResult{Kind: HitWithinSource}
	}
	if r > k.OnLandscape {
		return DispersalResult{Kind: HitOffLandscape}
	}

	idx := sort.Search(len(k.cum), func(i int) bool { return k.cum[i] > r })
	if idx >= len(k.cum) {
		return DispersalResult{Kind: HitOffLandscape}
	}
	dx, dy := decodeOffset(idx, k.cols)

	switch q {
	case 1:
		dx = -dx
	case 2:
		dx, dy = -dx, -dy
	case 3:
		dy = -dy
	}

	targetX, targetY := srcX+dx, srcY+dy
	cellID, ok := l.CellAt(targetY, targetX)
	if !ok {
		return DispersalResult{Kind: HitMiss}
	}
	return DispersalResult{Kind: HitCell, CellID: cellID}
}
