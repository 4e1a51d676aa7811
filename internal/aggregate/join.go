package aggregate

import (
	"fmt"

	"github.com/SeamusWaldron/xcross/internal/symmetry"
)

// Levels bounds the distances the histograms can hold.
const Levels = 16

// MaxFree is the number of slots a corner or edge of a pair can occupy
// around a fixed cross: all eight corners, and the eight edges the cross
// leaves over.
const MaxFree = 8

// Quadrants in a Counts table. The first two are read directly from the
// BL and BR tables; the last two read the same tables after a y2 rotation
// and so stand for the FR and FL pairs.
const (
	QuadBL = iota
	QuadBR
	QuadFR
	QuadFL
	numQuads
)

const maxSubsets = MaxFree * (MaxFree - 1) / 2

// Counts is indexed [quadrant][free corner][free edge][distance]. Filled by
// the aggregator it first holds histograms over the six orientations of a
// pair, then the cumulative "at least d" counts.
type Counts [numQuads][MaxFree][MaxFree][Levels]int64

// accumulate turns each histogram into at-least counts in place.
func (c *Counts) accumulate(free int) {
	for q := range c {
		for u := 0; u < free; u++ {
			for v := 0; v < free; v++ {
				h := &c[q][u][v]
				var sum int64
				for d := Levels - 1; d >= 0; d-- {
					sum += h[d]
					h[d] = sum
				}
			}
		}
	}
}

// halves are the meet-in-the-middle tables: for a corner 2-subset and an
// edge 2-subset, the number of ways the two pairs of one half can sit on
// them with both distances at least k.
type halves struct {
	left, right [maxSubsets][maxSubsets][Levels]int64
}

type joiner struct {
	free    int
	subsets []symmetry.Pair
	pairs   [][2]int
}

func newJoiner(free int) *joiner {
	subsets := symmetry.Subsets2(free)
	return &joiner{
		free:    free,
		subsets: subsets,
		pairs:   symmetry.DisjointPairs(subsets),
	}
}

// half sums the four role assignments of a half: which of the two corners
// goes to the first quadrant, times which of the two edges does.
func half(a, b *[MaxFree][MaxFree][Levels]int64, c1, c2, e1, e2, k int) int64 {
	return a[c1][e1][k]*b[c2][e2][k] +
		a[c1][e2][k]*b[c2][e1][k] +
		a[c2][e1][k]*b[c1][e2][k] +
		a[c2][e2][k]*b[c1][e1][k]
}

// join adds to out[k], for k < levels, the number of placements of the four
// pairs on distinct free slots with every pair at distance at least k.
func (j *joiner) join(at *Counts, h *halves, levels int, out *[Levels]int64) {
	for i, cs := range j.subsets {
		for jj, es := range j.subsets {
			l, r := &h.left[i][jj], &h.right[i][jj]
			for k := 0; k < levels; k++ {
				l[k] = half(&at[QuadBL], &at[QuadBR], cs.A, cs.B, es.A, es.B, k)
				r[k] = half(&at[QuadFR], &at[QuadFL], cs.A, cs.B, es.A, es.B, k)
			}
		}
	}

	for _, pc := range j.pairs {
		left, right := &h.left[pc[0]], &h.right[pc[1]]
		for _, pe := range j.pairs {
			l, r := &left[pe[0]], &right[pe[1]]
			for k := 0; k < levels; k++ {
				out[k] += l[k] * r[k]
			}
		}
	}
}

// Join runs the meet-in-the-middle over at-least counts for free corner and
// edge slots 0..free-1 and returns, for each k below levels, the number of
// placements of the four pairs with every distance at least k.
func Join(at *Counts, free, levels int) ([Levels]int64, error) {
	var out [Levels]int64
	if free < 4 || free > MaxFree {
		return out, fmt.Errorf("%w: %d free slots", ErrTableShape, free)
	}
	if levels < 1 || levels > Levels {
		return out, fmt.Errorf("%w: %d levels", ErrDepthRange, levels)
	}
	newJoiner(free).join(at, new(halves), levels, &out)
	return out, nil
}
