// Package movetable builds the transition tables the searches run on.
//
// A PieceTable follows a single piece through each generator. A Table lifts
// a PieceTable to every coordinate of a codec by decoding the coordinate into
// its placements, moving each piece independently and re-encoding.
package movetable

import (
	"fmt"

	"github.com/SeamusWaldron/xcross/internal/coord"
	"github.com/SeamusWaldron/xcross/internal/cube"
	"github.com/SeamusWaldron/xcross/pkg/types"
)

// Placements is the number of (slot, orientation) values of one piece.
// Both corners (8*3) and edges (12*2) have 24.
const Placements = 24

// PieceTable gives, for each placement and generator, the new placement.
type PieceTable [Placements][types.NumMoves]uint8

// BuildPiece simulates every placement of one piece under every generator.
// The piece is put alone in an otherwise solved state with the requested
// twist or flip, moved, and located again.
func BuildPiece(kind cube.PieceKind) *PieceTable {
	mod := kind.Modulus()
	t := &PieceTable{}
	for p := 0; p < kind.Slots()*mod; p++ {
		piece, ori := p/mod, p%mod

		s := cube.New()
		if kind == cube.Corner {
			s.CO[piece] = int8(ori)
		} else {
			s.EO[piece] = int8(ori)
		}

		for m := 0; m < types.NumMoves; m++ {
			t[p][m] = uint8(s.Multiply(cube.Generator(m)).Placement(kind, piece))
		}
	}
	return t
}

// Table is a composite move table over all coordinates of a codec.
// It is immutable once built and safe for concurrent reads.
type Table struct {
	codec coord.Codec
	next  []int32
	slots []uint32
}

// Build fills the move table for codec using piece for the per-piece moves.
// Each generator has its inverse among the generators, so writing (x, m) -> y
// also fills (y, inverse(m)) -> x and the second entry is never recomputed.
func Build(codec coord.Codec, piece *PieceTable) (*Table, error) {
	if codec.Modulus()*codec.Slots() != Placements {
		return nil, fmt.Errorf("%w: codec has %d placements", ErrPlacements, codec.Modulus()*codec.Slots())
	}

	size := codec.Size()
	next := make([]int32, size*types.NumMoves)
	for i := range next {
		next[i] = -1
	}

	slots := make([]uint32, size)
	n := codec.Pieces()
	mod := codec.Modulus()
	var src, dst [coord.MaxPieces]int
	for x := 0; x < size; x++ {
		codec.Unrank(x, src[:n])
		for k := 0; k < n; k++ {
			slots[x] |= 1 << (src[k] / mod)
		}
		row := x * types.NumMoves
		for m := 0; m < types.NumMoves; m++ {
			if next[row+m] != -1 {
				continue
			}
			for k := 0; k < n; k++ {
				dst[k] = int(piece[src[k]][m])
			}
			y := codec.Rank(dst[:n])
			next[row+m] = int32(y)
			next[y*types.NumMoves+types.InverseIndex(m)] = int32(x)
		}
	}

	return &Table{codec: codec, next: next, slots: slots}, nil
}

// BuildFor builds the piece table for kind and lifts it to codec.
func BuildFor(codec coord.Codec, kind cube.PieceKind) (*Table, error) {
	return Build(codec, BuildPiece(kind))
}

// Apply returns the coordinate reached from x by generator m.
func (t *Table) Apply(x, m int) int {
	return int(t.next[x*types.NumMoves+m])
}

// Row returns the 18 successors of x. The slice aliases the table and
// must not be modified.
func (t *Table) Row(x int) []int32 {
	return t.next[x*types.NumMoves : (x+1)*types.NumMoves]
}

// SlotMask returns the set of slots the pieces of x occupy, bit k for slot k.
func (t *Table) SlotMask(x int) uint32 { return t.slots[x] }

// Size returns the number of coordinates.
func (t *Table) Size() int { return t.codec.Size() }

// Codec returns the codec the table was built for.
func (t *Table) Codec() coord.Codec { return t.codec }
