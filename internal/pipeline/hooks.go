package pipeline

import (
	"context"
	"time"
)

// Stage names one step of the run.
type Stage string

// Stages in execution order.
const (
	StageMoveTables Stage = "movetables"
	StageTableBL    Stage = "prune_bl"
	StageTableBR    Stage = "prune_br"
	StageSymmetry   Stage = "symmetry"
	StageAggregate  Stage = "aggregate"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageMoveTables, StageTableBL, StageTableBR, StageSymmetry, StageAggregate}

// Hooks receives events from a run. Implementations must be safe for
// concurrent use: OnProgress is called from aggregation workers.
type Hooks interface {
	// Stage events
	OnStageStart(ctx context.Context, stage Stage)
	OnStageComplete(ctx context.Context, stage Stage, duration time.Duration, err error)

	// OnLayer reports a finished breadth-first layer of a pruning table.
	OnLayer(ctx context.Context, stage Stage, depth int, discovered int64)

	// OnProgress reports cross coordinates aggregated so far.
	OnProgress(ctx context.Context, done, total int)
}

// NoopHooks is a no-op implementation of Hooks.
type NoopHooks struct{}

func (NoopHooks) OnStageStart(context.Context, Stage)                           {}
func (NoopHooks) OnStageComplete(context.Context, Stage, time.Duration, error) {}
func (NoopHooks) OnLayer(context.Context, Stage, int, int64)                   {}
func (NoopHooks) OnProgress(context.Context, int, int)                         {}

// MultiHooks forwards every event to each of its hooks in order.
type MultiHooks []Hooks

func (m MultiHooks) OnStageStart(ctx context.Context, stage Stage) {
	for _, h := range m {
		h.OnStageStart(ctx, stage)
	}
}

func (m MultiHooks) OnStageComplete(ctx context.Context, stage Stage, d time.Duration, err error) {
	for _, h := range m {
		h.OnStageComplete(ctx, stage, d, err)
	}
}

func (m MultiHooks) OnLayer(ctx context.Context, stage Stage, depth int, discovered int64) {
	for _, h := range m {
		h.OnLayer(ctx, stage, depth, discovered)
	}
}

func (m MultiHooks) OnProgress(ctx context.Context, done, total int) {
	for _, h := range m {
		h.OnProgress(ctx, done, total)
	}
}
