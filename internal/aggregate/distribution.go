package aggregate

import (
	"bufio"
	"fmt"
	"io"

	"github.com/SeamusWaldron/xcross/internal/coord"
)

// Distribution is the number of configurations at each distance. It is kept
// in cumulative form: atLeast[d] counts configurations at distance >= d.
type Distribution struct {
	atLeast [Levels + 1]int64
}

// FromAtLeast builds a distribution from cumulative counts.
func FromAtLeast(atLeast [Levels]int64) Distribution {
	var d Distribution
	copy(d.atLeast[:Levels], atLeast[:])
	return d
}

// FromExact builds a distribution from per-distance counts, index = distance.
func FromExact(counts []int64) (Distribution, error) {
	var d Distribution
	if len(counts) > Levels {
		return d, fmt.Errorf("%w: %d distances", ErrDepthRange, len(counts))
	}
	var sum int64
	for i := len(counts) - 1; i >= 0; i-- {
		sum += counts[i]
		d.atLeast[i] = sum
	}
	return d, nil
}

// Exact returns the number of configurations at exactly distance d.
func (d Distribution) Exact(dist int) int64 {
	if dist < 0 || dist >= Levels {
		return 0
	}
	return d.atLeast[dist] - d.atLeast[dist+1]
}

// AtLeast returns the number of configurations at distance >= d.
func (d Distribution) AtLeast(dist int) int64 {
	if dist <= 0 {
		return d.atLeast[0]
	}
	if dist >= Levels {
		return 0
	}
	return d.atLeast[dist]
}

// Total returns the number of configurations counted.
func (d Distribution) Total() int64 { return d.atLeast[0] }

// MaxDistance returns the largest distance with a nonzero count, or -1 for
// an empty distribution.
func (d Distribution) MaxDistance() int {
	for dist := Levels - 1; dist >= 0; dist-- {
		if d.Exact(dist) != 0 {
			return dist
		}
	}
	return -1
}

// Counts returns the exact counts for distances 0..MaxDistance.
func (d Distribution) Counts() []int64 {
	out := make([]int64, d.MaxDistance()+1)
	for i := range out {
		out[i] = d.Exact(i)
	}
	return out
}

// WriteTo prints one "d\tcount" line per nonzero distance in ascending
// order, then "total\tN".
func (d Distribution) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for dist := 0; dist < Levels; dist++ {
		c := d.Exact(dist)
		if c == 0 {
			continue
		}
		k, err := fmt.Fprintf(bw, "%d\t%d\n", dist, c)
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	k, err := fmt.Fprintf(bw, "total\t%d\n", d.Total())
	n += int64(k)
	if err != nil {
		return n, err
	}
	return n, bw.Flush()
}

// ConfigurationSpace is the number of configurations of the twelve tracked
// pieces: the cross, four corners among all eight corner slots, and four
// edges among the eight edge slots the cross leaves.
func ConfigurationSpace() int64 {
	return int64(coord.Cross.Size()) * pairPlacements(MaxFree, 4)
}

// SolvedCount is the size of the distance 0 class: the cross is solved and
// at least one of the four pairs is home, by inclusion-exclusion over the
// set of solved pairs.
func SolvedCount() int64 {
	var n int64
	sign := int64(1)
	for j := 1; j <= 4; j++ {
		n += sign * binomial(4, j) * pairPlacements(MaxFree-j, 4-j)
		sign = -sign
	}
	return n
}

// pairPlacements counts the ways to put k twisted corners and k flipped
// edges on n corner and n edge slots.
func pairPlacements(n, k int) int64 {
	corners, edges := int64(1), int64(1)
	for i := 0; i < k; i++ {
		corners *= int64(n-i) * 3
		edges *= int64(n-i) * 2
	}
	return corners * edges
}

func binomial(n, k int) int64 {
	r := int64(1)
	for i := 0; i < k; i++ {
		r = r * int64(n-i) / int64(i+1)
	}
	return r
}
