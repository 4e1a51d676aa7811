// Package pipeline runs the full computation: move tables, the two pair
// pruning tables, the cross symmetry map and the aggregation.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/xcross/internal/aggregate"
	"github.com/SeamusWaldron/xcross/internal/coord"
	"github.com/SeamusWaldron/xcross/internal/cube"
	"github.com/SeamusWaldron/xcross/internal/movetable"
	"github.com/SeamusWaldron/xcross/internal/prune"
	"github.com/SeamusWaldron/xcross/internal/symmetry"
)

// SolvedCross is the cross coordinate of the four cross edges at home.
var SolvedCross = cube.SolvedCross

// Target is a pair whose table the run builds: its corner and edge start
// coordinates alongside the solved cross.
type Target struct {
	Stage  Stage
	Corner int
	Edge   int
}

// Targets are the two directly computed pairs. FR and FL are read from
// these tables through the y2 symmetry.
var Targets = [2]Target{
	newTarget(StageTableBL, cube.F2LSlots[0]),
	newTarget(StageTableBR, cube.F2LSlots[1]),
}

func newTarget(s Stage, slot cube.Slot) Target {
	solved := cube.New()
	return Target{
		Stage:  s,
		Corner: solved.Placement(cube.Corner, slot.Corner),
		Edge:   solved.Placement(cube.Edge, slot.Edge),
	}
}

// Runner executes the pipeline. A zero Runner is usable; NewRunner fills
// the defaults explicitly.
type Runner struct {
	Logger  *log.Logger
	Hooks   Hooks
	Workers int

	// CrossLo and CrossHi restrict aggregation to [CrossLo, CrossHi).
	// Both zero means every cross coordinate.
	CrossLo, CrossHi int
}

// NewRunner creates a runner. A nil logger uses log.Default, nil hooks are
// no-ops and workers <= 0 means GOMAXPROCS.
func NewRunner(logger *log.Logger, hooks Hooks, workers int) *Runner {
	r := &Runner{Logger: logger, Hooks: hooks, Workers: workers}
	r.setDefaults()
	return r
}

func (r *Runner) setDefaults() {
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	if r.Hooks == nil {
		r.Hooks = NoopHooks{}
	}
	if r.Workers <= 0 {
		r.Workers = runtime.GOMAXPROCS(0)
	}
}

// Stats holds timings and table facts from a run.
type Stats struct {
	MoveTableTime time.Duration
	TableBLTime   time.Duration
	TableBRTime   time.Duration
	SymmetryTime  time.Duration
	AggregateTime time.Duration
	TotalTime     time.Duration

	DiameterBL int
	DiameterBR int
	LayersBL   []int64
	LayersBR   []int64

	CrossCount int
}

// Result is the output of a run.
type Result struct {
	Distribution aggregate.Distribution
	Stats        Stats
	Started      time.Time
	Workers      int

	// CrossLo and CrossHi are the aggregated cross range [CrossLo, CrossHi).
	CrossLo, CrossHi int
}

// stage runs fn between the start and complete hooks and returns its
// duration.
func (r *Runner) stage(ctx context.Context, s Stage, fn func() error) (time.Duration, error) {
	r.Hooks.OnStageStart(ctx, s)
	start := time.Now()
	err := fn()
	d := time.Since(start)
	r.Hooks.OnStageComplete(ctx, s, d, err)
	if err != nil {
		return d, fmt.Errorf("%s: %w", s, err)
	}
	return d, nil
}

// Execute runs every stage in order.
func (r *Runner) Execute(ctx context.Context) (*Result, error) {
	r.setDefaults()
	result := &Result{Started: time.Now(), Workers: r.Workers}

	// Stage 1: move tables
	var axes prune.Axes
	d, err := r.stage(ctx, StageMoveTables, func() error {
		var err error
		if axes[0], err = movetable.BuildFor(coord.Cross, cube.Edge); err != nil {
			return err
		}
		if axes[1], err = movetable.BuildFor(coord.Corner, cube.Corner); err != nil {
			return err
		}
		axes[2], err = movetable.BuildFor(coord.Edge, cube.Edge)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.MoveTableTime = d
	r.Logger.Info("built move tables",
		"cross", axes[0].Size(),
		"corner", axes[1].Size(),
		"edge", axes[2].Size(),
		"duration", d)

	// Stage 2: pruning tables. The tracked edge can never share a slot with
	// a cross edge, so those entries are excluded from the completeness check.
	feasible := prune.DisjointSlots(axes, 0, 2)
	var tables [2]*prune.Table
	for i, tgt := range Targets {
		d, err := r.stage(ctx, tgt.Stage, func() error {
			var err error
			tables[i], err = prune.Generate(ctx, axes, [3]int{SolvedCross, tgt.Corner, tgt.Edge},
				prune.WithWorkers(r.Workers),
				prune.WithFeasible(feasible),
				prune.WithLayerHook(func(depth int, discovered int64) {
					r.Hooks.OnLayer(ctx, tgt.Stage, depth, discovered)
					r.Logger.Debug("layer done", "table", tgt.Stage, "depth", depth, "discovered", discovered)
				}))
			return err
		})
		if err != nil {
			return nil, err
		}
		t := tables[i]
		r.Logger.Info("generated pruning table",
			"table", tgt.Stage,
			"entries", t.Len(),
			"reachable", t.Reachable(),
			"diameter", t.Diameter(),
			"duration", d)

		if i == 0 {
			result.Stats.TableBLTime, result.Stats.DiameterBL, result.Stats.LayersBL = d, t.Diameter(), t.LayerCounts()
		} else {
			result.Stats.TableBRTime, result.Stats.DiameterBR, result.Stats.LayersBR = d, t.Diameter(), t.LayerCounts()
		}
	}

	// Stage 3: symmetry
	var y2 []int32
	d, err = r.stage(ctx, StageSymmetry, func() error {
		y2 = symmetry.CrossY2(coord.Cross)
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Stats.SymmetryTime = d
	r.Logger.Debug("computed cross symmetry", "entries", len(y2), "duration", d)

	// Stage 4: aggregation
	lo, hi := r.CrossLo, r.CrossHi
	if lo == 0 && hi == 0 {
		hi = coord.Cross.Size()
	}
	result.CrossLo, result.CrossHi = lo, hi
	result.Stats.CrossCount = hi - lo
	d, err = r.stage(ctx, StageAggregate, func() error {
		agg, err := aggregate.New(tables[0], tables[1], y2,
			aggregate.WithWorkers(r.Workers),
			aggregate.WithRange(lo, hi),
			aggregate.WithProgress(func(done, total int) {
				r.Hooks.OnProgress(ctx, done, total)
			}))
		if err != nil {
			return err
		}
		result.Distribution, err = agg.Run(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.AggregateTime = d
	result.Stats.TotalTime = time.Since(result.Started)

	rate := float64(hi-lo) / d.Seconds()
	r.Logger.Info("aggregated distribution",
		"crosses", hi-lo,
		"rate", fmt.Sprintf("%.0f/s", rate),
		"max_distance", result.Distribution.MaxDistance(),
		"total", result.Distribution.Total(),
		"duration", d)

	return result, nil
}
