// Package symmetry holds the y2 relabeling of cross coordinates and the
// small combinatorial tables the aggregator iterates over.
package symmetry

import (
	"github.com/SeamusWaldron/xcross/internal/coord"
	"github.com/SeamusWaldron/xcross/internal/cube"
)

// CrossY2 maps every coordinate of codec to the coordinate of the same
// position seen after a y2 rotation. The tracked pieces are the cross edges
// in cube.CrossEdges order, so y2 also swaps which tracked piece sits where:
// piece k takes the rotated placement of piece (k+2) mod 4. The map is an
// involution and fixes the solved cross.
func CrossY2(codec coord.Codec) []int32 {
	n := codec.Pieces()
	mod := codec.Modulus()
	out := make([]int32, codec.Size())

	var src, dst [coord.MaxPieces]int
	for x := range out {
		codec.Unrank(x, src[:n])
		for k := 0; k < n; k++ {
			p := src[(k+n/2)%n]
			dst[k] = mod*cube.Y2Edge[p/mod] + p%mod
		}
		out[x] = int32(codec.Rank(dst[:n]))
	}
	return out
}

// Pair is a 2-subset {A, B} with A < B.
type Pair struct {
	A, B int
}

// Subsets2 lists every 2-subset of 0..n-1 in lexicographic order.
func Subsets2(n int) []Pair {
	out := make([]Pair, 0, n*(n-1)/2)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			out = append(out, Pair{A: a, B: b})
		}
	}
	return out
}

// Disjoint reports whether p and q share no element.
func (p Pair) Disjoint(q Pair) bool {
	return p.A != q.A && p.A != q.B && p.B != q.A && p.B != q.B
}

// DisjointPairs returns the ordered pairs (i, j) of indices into subsets
// whose subsets share no element.
func DisjointPairs(subsets []Pair) [][2]int {
	var out [][2]int
	for i, p := range subsets {
		for j, q := range subsets {
			if p.Disjoint(q) {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}
