// Package prune builds exact distance tables over a product of three
// coordinate axes by layered breadth-first search.
package prune

import (
	"fmt"
	"sync/atomic"
)

// Unvisited marks an entry the search has not reached.
const Unvisited = 0xFF

// Feasible reports whether (a, b, c) describes a state that can exist.
// Entries outside it are never reached and stay Unvisited.
type Feasible func(a, b, c int) bool

// Table holds one distance byte per product coordinate
// (a*sizeB + b)*sizeC + c, packed four to a word so that an entry can be
// claimed with a compare-and-swap. After Generate returns the table is
// immutable and safe for concurrent reads.
type Table struct {
	words    []uint32
	n        int
	dims     [3]int
	start    int
	feasible Feasible

	diameter  int
	layers    []int64
	reachable int64
}

func newTable(dims [3]int) *Table {
	n := dims[0] * dims[1] * dims[2]
	words := make([]uint32, (n+3)/4)
	for i := range words {
		words[i] = ^uint32(0)
	}
	return &Table{words: words, n: n, dims: dims}
}

func lane(i int) uint {
	return uint(i&3) << 3
}

// load reads an entry while other workers may be claiming.
func (t *Table) load(i int) uint8 {
	return uint8(atomic.LoadUint32(&t.words[i>>2]) >> lane(i))
}

// claim sets entry i to d if it is still unvisited and reports whether this
// call made the change.
func (t *Table) claim(i int, d uint8) bool {
	addr := &t.words[i>>2]
	shift := lane(i)
	for {
		old := atomic.LoadUint32(addr)
		if uint8(old>>shift) != Unvisited {
			return false
		}
		next := old&^(0xFF<<shift) | uint32(d)<<shift
		if atomic.CompareAndSwapUint32(addr, old, next) {
			return true
		}
	}
}

// At returns the distance stored at product index i.
func (t *Table) At(i int) uint8 {
	return uint8(t.words[i>>2] >> lane(i))
}

// Index returns the product index of (a, b, c).
func (t *Table) Index(a, b, c int) int {
	return (a*t.dims[1]+b)*t.dims[2] + c
}

// decode is the inverse of Index.
func (t *Table) decode(i int) (a, b, c int) {
	dimB, dimC := t.dims[1], t.dims[2]
	c = i % dimC
	r := i / dimC
	return r / dimB, r % dimB, c
}

// Lookup returns the distance of (a, b, c).
func (t *Table) Lookup(a, b, c int) uint8 {
	return t.At(t.Index(a, b, c))
}

// Len returns the number of entries.
func (t *Table) Len() int { return t.n }

// Dims returns the sizes of the three axes.
func (t *Table) Dims() [3]int { return t.dims }

// Start returns the product index of the start entry.
func (t *Table) Start() int { return t.start }

// Diameter returns the largest distance in the table.
func (t *Table) Diameter() int { return t.diameter }

// LayerCounts returns the number of entries at each distance, starting with
// distance 0.
func (t *Table) LayerCounts() []int64 {
	out := make([]int64, len(t.layers))
	copy(out, t.layers)
	return out
}

// Reachable returns the number of feasible entries, which is also the sum
// of LayerCounts once Generate has succeeded.
func (t *Table) Reachable() int64 { return t.reachable }

// Verify checks that every feasible entry was reached and that every
// infeasible one was not. Without a feasibility predicate every entry is
// feasible.
func (t *Table) Verify() error {
	_, err := t.verify()
	return err
}

func (t *Table) verify() (int64, error) {
	var feasible, missing, stray int64
	firstMissing, firstStray := -1, -1

	i := 0
	for a := 0; a < t.dims[0]; a++ {
		for b := 0; b < t.dims[1]; b++ {
			for c := 0; c < t.dims[2]; c++ {
				ok := t.feasible == nil || t.feasible(a, b, c)
				reached := t.At(i) != Unvisited
				switch {
				case ok && !reached:
					if firstMissing < 0 {
						firstMissing = i
					}
					missing++
				case !ok && reached:
					if firstStray < 0 {
						firstStray = i
					}
					stray++
				}
				if ok {
					feasible++
				}
				i++
			}
		}
	}

	if stray > 0 {
		return feasible, fmt.Errorf("%w: %d entries, first at index %d", ErrInfeasibleReached, stray, firstStray)
	}
	if missing > 0 {
		return feasible, fmt.Errorf("%w: %d of %d feasible entries, first at index %d", ErrUnreached, missing, feasible, firstMissing)
	}
	return feasible, nil
}
