// Package coord maps ordered selections of oriented pieces to dense integers.
//
// A placement is modulus*slot + orientation. A coordinate packs n placements
// of distinguishable pieces as
//
//	permutationIndex * modulus^n + orientationIndex
//
// where the orientation index is mixed radix (most significant digit first)
// and the permutation index is a falling-factorial rank: piece i contributes
// its slot, less the number of smaller slots already taken by pieces 0..i-1,
// in radix slots-i.
package coord

import "fmt"

// MaxPieces bounds the number of pieces a codec can track.
const MaxPieces = 12

// Codec ranks and unranks placements for a fixed (pieces, modulus, slots).
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	pieces  int
	modulus int
	slots   int

	oriSize int
	size    int
	// place[i] is the place value of permutation digit i.
	place [MaxPieces]int
}

// Predefined codecs.
var (
	// Cross tracks four edges with their flip.
	Cross = New(4, 2, 12)
	// Corner tracks a single corner with its twist.
	Corner = New(1, 3, 8)
	// Edge tracks a single edge with its flip.
	Edge = New(1, 2, 12)
)

// New creates a codec for n pieces drawn from the given number of slots,
// with orientations modulo modulus.
func New(pieces, modulus, slots int) Codec {
	if pieces < 1 || pieces > MaxPieces || pieces > slots || modulus < 1 {
		panic(fmt.Sprintf("coord: invalid codec (%d pieces, modulus %d, %d slots)", pieces, modulus, slots))
	}

	c := Codec{pieces: pieces, modulus: modulus, slots: slots, oriSize: 1}
	for i := 0; i < pieces; i++ {
		c.oriSize *= modulus
	}

	pv := 1
	for i := 0; i < pieces; i++ {
		c.place[i] = pv
		pv *= slots - i
	}
	c.size = pv * c.oriSize
	return c
}

// Pieces returns the number of tracked pieces.
func (c Codec) Pieces() int { return c.pieces }

// Modulus returns the orientation modulus.
func (c Codec) Modulus() int { return c.modulus }

// Slots returns the size of the slot universe.
func (c Codec) Slots() int { return c.slots }

// Size returns the number of coordinates, P(slots, pieces) * modulus^pieces.
func (c Codec) Size() int { return c.size }

// Rank returns the coordinate of the placements. A placement outside
// [0, modulus*slots) panics; distinct slots are the caller's responsibility,
// see Valid.
func (c Codec) Rank(placements []int) int {
	var slot [MaxPieces]int
	ori := 0
	for i := 0; i < c.pieces; i++ {
		p := placements[i]
		if p < 0 || p >= c.modulus*c.slots {
			panic(fmt.Sprintf("coord: placement %d out of range [0, %d)", p, c.modulus*c.slots))
		}
		ori = ori*c.modulus + p%c.modulus
		slot[i] = p / c.modulus
	}

	perm := 0
	for i := 0; i < c.pieces; i++ {
		smaller := 0
		for j := 0; j < i; j++ {
			if slot[j] < slot[i] {
				smaller++
			}
		}
		perm += (slot[i] - smaller) * c.place[i]
	}
	return perm*c.oriSize + ori
}

// Unrank writes the placements of coordinate x into dst, which must hold
// at least Pieces() values. x outside [0, Size()) is a programming error.
func (c Codec) Unrank(x int, dst []int) {
	if x < 0 || x >= c.size {
		panic(fmt.Sprintf("coord: coordinate %d out of range [0, %d)", x, c.size))
	}

	perm, ori := x/c.oriSize, x%c.oriSize

	// taken holds the slots chosen so far, ascending.
	var taken [MaxPieces]int
	for i := 0; i < c.pieces; i++ {
		radix := c.slots - i
		s := perm % radix
		perm /= radix

		k := 0
		for ; k < i && taken[k] <= s; k++ {
			s++
		}
		copy(taken[k+1:i+1], taken[k:i])
		taken[k] = s
		dst[i] = s
	}

	for i := c.pieces - 1; i >= 0; i-- {
		dst[i] = c.modulus*dst[i] + ori%c.modulus
		ori /= c.modulus
	}
}

// Valid reports whether the placements are in range with distinct slots.
func (c Codec) Valid(placements []int) bool {
	if len(placements) < c.pieces {
		return false
	}
	seen := make([]bool, c.slots)
	for i := 0; i < c.pieces; i++ {
		p := placements[i]
		if p < 0 || p >= c.modulus*c.slots {
			return false
		}
		s := p / c.modulus
		if seen[s] {
			return false
		}
		seen[s] = true
	}
	return true
}
