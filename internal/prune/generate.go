package prune

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/xcross/internal/movetable"
	"github.com/SeamusWaldron/xcross/pkg/types"
)

// Axes are the move tables of the three product axes.
type Axes [3]*movetable.Table

// Option configures Generate.
type Option func(*config)

type config struct {
	workers  int
	chunk    int
	onLayer  func(depth int, discovered int64)
	feasible Feasible
	moves    []int
}

func defaultConfig() *config {
	moves := make([]int, types.NumMoves)
	for i := range moves {
		moves[i] = i
	}
	return &config{
		workers: runtime.GOMAXPROCS(0),
		chunk:   1 << 16,
		moves:   moves,
	}
}

// WithWorkers sets the number of goroutines scanning each layer.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithChunkSize sets how many entries a worker claims at a time. It is
// rounded up to a multiple of four so no two workers scan the same word.
func WithChunkSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.chunk = (n + 3) &^ 3
		}
	}
}

// WithLayerHook registers a callback run after each layer with the depth
// just assigned and the number of entries that received it.
func WithLayerHook(fn func(depth int, discovered int64)) Option {
	return func(c *config) {
		c.onLayer = fn
	}
}

// WithFeasible limits the completeness check to the entries fn accepts.
// Every other entry must stay Unvisited.
func WithFeasible(fn Feasible) Option {
	return func(c *config) {
		c.feasible = fn
	}
}

// DisjointSlots returns a Feasible that accepts an entry when the pieces of
// axes i and j occupy different slots. Both axes must track the same kind
// of piece.
func DisjointSlots(axes Axes, i, j int) Feasible {
	x, y := axes[i], axes[j]
	return func(a, b, c int) bool {
		v := [3]int{a, b, c}
		return x.SlotMask(v[i])&y.SlotMask(v[j]) == 0
	}
}

// withMoves restricts the generators. Only tests use it, to provoke an
// incomplete search.
func withMoves(moves ...int) Option {
	return func(c *config) {
		c.moves = moves
	}
}

// Generate computes the distance from start to every entry of the product
// of the three axes. Each layer is a full parallel scan; entries equal to
// the current depth are expanded and their unvisited successors claimed
// with depth+1. The search stops when a scan claims nothing, and the table
// is then verified: every feasible entry reached, every other one not.
func Generate(ctx context.Context, axes Axes, start [3]int, opts ...Option) (*Table, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var dims [3]int
	for k, ax := range axes {
		dims[k] = ax.Size()
		if start[k] < 0 || start[k] >= dims[k] {
			return nil, fmt.Errorf("%w: axis %d value %d, size %d", ErrStart, k, start[k], dims[k])
		}
	}

	t := newTable(dims)
	t.feasible = cfg.feasible
	if t.feasible != nil && !t.feasible(start[0], start[1], start[2]) {
		return nil, fmt.Errorf("%w: (%d, %d, %d) is infeasible", ErrStart, start[0], start[1], start[2])
	}
	t.start = t.Index(start[0], start[1], start[2])
	t.claim(t.start, 0)
	t.layers = []int64{1}

	for depth := 0; ; depth++ {
		if depth+1 >= Unvisited {
			return nil, fmt.Errorf("%w: depth %d", ErrDepthOverflow, depth+1)
		}

		found, err := t.expand(ctx, axes, uint8(depth), cfg)
		if err != nil {
			return nil, err
		}
		if cfg.onLayer != nil {
			cfg.onLayer(depth+1, found)
		}
		if found == 0 {
			t.diameter = depth
			break
		}
		t.layers = append(t.layers, found)
	}

	reachable, err := t.verify()
	if err != nil {
		return nil, err
	}
	t.reachable = reachable
	return t, nil
}

// expand runs one layer. Workers take chunks from a shared cursor; the
// errgroup Wait is the barrier between layers.
func (t *Table) expand(ctx context.Context, axes Axes, depth uint8, cfg *config) (int64, error) {
	chunks := (t.n + cfg.chunk - 1) / cfg.chunk

	var cursor, total atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.workers; w++ {
		g.Go(func() error {
			var found int64
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				c := int(cursor.Add(1) - 1)
				if c >= chunks {
					break
				}
				lo := c * cfg.chunk
				hi := min(lo+cfg.chunk, t.n)
				found += t.expandRange(axes, depth, lo, hi, cfg.moves)
			}
			total.Add(found)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}

func (t *Table) expandRange(axes Axes, depth uint8, lo, hi int, moves []int) int64 {
	var found int64
	dimB, dimC := t.dims[1], t.dims[2]
	next := depth + 1

	for i := lo; i < hi; i += 4 {
		w := atomic.LoadUint32(&t.words[i>>2])
		for l := 0; l < 4 && i+l < hi; l++ {
			if uint8(w>>(uint(l)<<3)) != depth {
				continue
			}

			a, b, c := t.decode(i + l)
			rowA, rowB, rowC := axes[0].Row(a), axes[1].Row(b), axes[2].Row(c)
			for _, m := range moves {
				ni := (int(rowA[m])*dimB+int(rowB[m]))*dimC + int(rowC[m])
				if t.claim(ni, next) {
					found++
				}
			}
		}
	}
	return found
}
