// Package aggregate turns the two pair pruning tables into the exact
// distance distribution of cross + any one pair.
//
// For a fixed cross the four pairs move independently of each other in the
// tables, so the distance of a configuration is the minimum of four table
// lookups. Counting configurations whose minimum is at least k is a product
// of per-pair counts, summed over the ways to share the free slots. The free
// slots are split into two halves (BL/BR and FR/FL) and joined over disjoint
// 2-subsets.
package aggregate

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/xcross/internal/coord"
	"github.com/SeamusWaldron/xcross/internal/cube"
	"github.com/SeamusWaldron/xcross/internal/prune"
)

// Option configures an Aggregator.
type Option func(*config)

type config struct {
	workers    int
	block      int
	lo, hi     int
	onProgress func(done, total int)
}

// WithWorkers sets the number of goroutines.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBlockSize sets how many cross coordinates a worker claims at a time.
func WithBlockSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.block = n
		}
	}
}

// WithRange restricts the run to cross coordinates in [lo, hi).
func WithRange(lo, hi int) Option {
	return func(c *config) {
		c.lo, c.hi = lo, hi
	}
}

// WithProgress registers a callback run after each block with the number of
// cross coordinates done so far. It is called from worker goroutines.
func WithProgress(fn func(done, total int)) Option {
	return func(c *config) {
		c.onProgress = fn
	}
}

// Aggregator walks every cross coordinate and sums the per-cross joins.
type Aggregator struct {
	bl, br *prune.Table
	y2     []int32
	codec  coord.Codec
	levels int
	cfg    config
}

// New checks that the tables cover the cross x corner x edge space and hold
// distances the histograms can represent.
func New(bl, br *prune.Table, y2 []int32, opts ...Option) (*Aggregator, error) {
	codec := coord.Cross
	want := [3]int{codec.Size(), coord.Corner.Size(), coord.Edge.Size()}
	for _, tt := range []struct {
		name string
		t    *prune.Table
	}{{"BL", bl}, {"BR", br}} {
		name, t := tt.name, tt.t
		if t == nil {
			return nil, fmt.Errorf("%w: %s table is nil", ErrTableShape, name)
		}
		if t.Dims() != want {
			return nil, fmt.Errorf("%w: %s table dims %v, want %v", ErrTableShape, name, t.Dims(), want)
		}
		if t.Diameter() >= Levels {
			return nil, fmt.Errorf("%w: %s table diameter %d, limit %d", ErrDepthRange, name, t.Diameter(), Levels-1)
		}
	}
	if len(y2) != codec.Size() {
		return nil, fmt.Errorf("%w: symmetry map has %d entries, want %d", ErrTableShape, len(y2), codec.Size())
	}

	cfg := config{
		workers: runtime.GOMAXPROCS(0),
		block:   64,
		lo:      0,
		hi:      codec.Size(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.lo < 0 || cfg.hi > codec.Size() || cfg.lo >= cfg.hi {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrRange, cfg.lo, cfg.hi, codec.Size())
	}

	return &Aggregator{
		bl:     bl,
		br:     br,
		y2:     y2,
		codec:  codec,
		levels: max(bl.Diameter(), br.Diameter()) + 1,
		cfg:    cfg,
	}, nil
}

// scratch is the per-worker working set, reused for every cross.
type scratch struct {
	counts Counts
	halves halves
	total  [Levels]int64
	cross  [4]int
	edges  [MaxFree]int
}

// Run aggregates the configured cross range.
func (a *Aggregator) Run(ctx context.Context) (Distribution, error) {
	n := a.cfg.hi - a.cfg.lo
	blocks := (n + a.cfg.block - 1) / a.cfg.block
	j := newJoiner(MaxFree)

	var (
		cursor, done atomic.Int64
		mu           sync.Mutex
		total        [Levels]int64
	)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < a.cfg.workers; w++ {
		g.Go(func() error {
			s := new(scratch)
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				b := int(cursor.Add(1) - 1)
				if b >= blocks {
					break
				}
				lo := a.cfg.lo + b*a.cfg.block
				hi := min(lo+a.cfg.block, a.cfg.hi)
				for cr := lo; cr < hi; cr++ {
					a.cross(cr, j, s)
				}
				d := done.Add(int64(hi - lo))
				if a.cfg.onProgress != nil {
					a.cfg.onProgress(int(d), n)
				}
			}

			mu.Lock()
			for k := range total {
				total[k] += s.total[k]
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Distribution{}, err
	}
	return FromAtLeast(total), nil
}

// freeEdges lists, ascending, the edge slots not held by the cross.
func freeEdges(cross []int, mod int, dst *[MaxFree]int) {
	var used [cube.NumEdges]bool
	for _, p := range cross {
		used[p/mod] = true
	}
	n := 0
	for e := 0; e < cube.NumEdges; e++ {
		if !used[e] {
			dst[n] = e
			n++
		}
	}
}

// cross adds the join of one cross coordinate to s.total.
func (a *Aggregator) cross(cr int, j *joiner, s *scratch) {
	a.codec.Unrank(cr, s.cross[:])
	freeEdges(s.cross[:], a.codec.Modulus(), &s.edges)
	rot := int(a.y2[cr])

	s.counts = Counts{}
	for u := 0; u < MaxFree; u++ {
		c, cy := u, cube.Y2Corner[u]
		for v := 0; v < MaxFree; v++ {
			e := s.edges[v]
			ey := cube.Y2Edge[e]
			for co := 0; co < 3; co++ {
				for eo := 0; eo < 2; eo++ {
					s.counts[QuadBL][u][v][a.bl.Lookup(cr, 3*c+co, 2*e+eo)]++
					s.counts[QuadBR][u][v][a.br.Lookup(cr, 3*c+co, 2*e+eo)]++
					s.counts[QuadFR][u][v][a.bl.Lookup(rot, 3*cy+co, 2*ey+eo)]++
					s.counts[QuadFL][u][v][a.br.Lookup(rot, 3*cy+co, 2*ey+eo)]++
				}
			}
		}
	}
	s.counts.accumulate(MaxFree)
	j.join(&s.counts, &s.halves, a.levels, &s.total)
}
