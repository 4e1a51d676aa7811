package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/xcross/internal/aggregate"
	"github.com/SeamusWaldron/xcross/internal/coord"
	"github.com/SeamusWaldron/xcross/internal/cube"
)

type recordingHooks struct {
	mu        sync.Mutex
	started   []Stage
	completed []Stage
	errs      []error
	layers    map[Stage]int
	progress  int
}

func newRecordingHooks() *recordingHooks {
	return &recordingHooks{layers: make(map[Stage]int)}
}

func (h *recordingHooks) OnStageStart(_ context.Context, s Stage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = append(h.started, s)
}

func (h *recordingHooks) OnStageComplete(_ context.Context, s Stage, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = append(h.completed, s)
	h.errs = append(h.errs, err)
}

func (h *recordingHooks) OnLayer(_ context.Context, s Stage, _ int, _ int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layers[s]++
}

func (h *recordingHooks) OnProgress(_ context.Context, done, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.progress = max(h.progress, done)
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestSolvedCross(t *testing.T) {
	var want [4]int
	for k, e := range cube.CrossEdges {
		want[k] = 2 * e
	}
	if got := coord.Cross.Rank(want[:]); SolvedCross != got {
		t.Errorf("SolvedCross = %d, want %d", SolvedCross, got)
	}
	if SolvedCross != 187520 {
		t.Errorf("SolvedCross = %d, want 187520", SolvedCross)
	}
}

func TestTargets(t *testing.T) {
	want := [2][2]int{{12, 0}, {15, 2}}
	for i, tgt := range Targets {
		if tgt.Corner != want[i][0] || tgt.Edge != want[i][1] {
			t.Errorf("Targets[%d] = (%d, %d), want %v", i, tgt.Corner, tgt.Edge, want[i])
		}
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, 0)
	if r.Logger == nil {
		t.Error("Logger should default to log.Default()")
	}
	if _, ok := r.Hooks.(NoopHooks); !ok {
		t.Errorf("Hooks = %T, want NoopHooks", r.Hooks)
	}
	if r.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", r.Workers)
	}
}

func TestMultiHooks(t *testing.T) {
	a, b := newRecordingHooks(), newRecordingHooks()
	m := MultiHooks{a, b}
	ctx := context.Background()

	m.OnStageStart(ctx, StageSymmetry)
	m.OnLayer(ctx, StageTableBL, 1, 18)
	m.OnProgress(ctx, 5, 10)
	m.OnStageComplete(ctx, StageSymmetry, time.Second, nil)

	for _, h := range []*recordingHooks{a, b} {
		if len(h.started) != 1 || h.started[0] != StageSymmetry {
			t.Errorf("started = %v", h.started)
		}
		if len(h.completed) != 1 {
			t.Errorf("completed = %v", h.completed)
		}
		if h.layers[StageTableBL] != 1 {
			t.Errorf("layers = %v", h.layers)
		}
		if h.progress != 5 {
			t.Errorf("progress = %d, want 5", h.progress)
		}
	}
}

func TestExecuteCancelled(t *testing.T) {
	hooks := newRecordingHooks()
	r := NewRunner(quietLogger(), hooks, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Execute(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	// Move tables do not watch the context; the first table build does.
	if len(hooks.completed) != 2 || hooks.completed[1] != StageTableBL {
		t.Errorf("completed stages = %v", hooks.completed)
	}
	if hooks.errs[1] == nil {
		t.Error("failed stage reported a nil error")
	}
}

func TestExecuteSubRange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full pipeline in short mode")
	}

	hooks := newRecordingHooks()
	r := NewRunner(quietLogger(), hooks, 0)
	r.CrossLo, r.CrossHi = SolvedCross, SolvedCross+16

	res, err := r.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(hooks.started) != len(Stages) {
		t.Fatalf("started %v, want %v", hooks.started, Stages)
	}
	for i, s := range Stages {
		if hooks.started[i] != s || hooks.completed[i] != s {
			t.Errorf("stage %d: started %s, completed %s, want %s", i, hooks.started[i], hooks.completed[i], s)
		}
	}
	if hooks.layers[StageTableBL] != res.Stats.DiameterBL+1 {
		t.Errorf("BL layers reported %d, diameter %d", hooks.layers[StageTableBL], res.Stats.DiameterBL)
	}
	if hooks.progress != 16 {
		t.Errorf("progress = %d, want 16", hooks.progress)
	}

	// The tracked edge never sits in one of the four cross slots.
	reachable := int64(coord.Cross.Size() * coord.Corner.Size() * 16)
	for name, layers := range map[string][]int64{"BL": res.Stats.LayersBL, "BR": res.Stats.LayersBR} {
		var sum int64
		for _, n := range layers {
			sum += n
		}
		if sum != reachable {
			t.Errorf("%s layers sum to %d, want %d", name, sum, reachable)
		}
	}

	if res.CrossLo != SolvedCross || res.CrossHi != SolvedCross+16 {
		t.Errorf("range = [%d, %d), want [%d, %d)", res.CrossLo, res.CrossHi, SolvedCross, SolvedCross+16)
	}

	perCross := aggregate.ConfigurationSpace() / int64(coord.Cross.Size())
	if got := res.Distribution.Total(); got != 16*perCross {
		t.Errorf("Total() = %d, want %d", got, 16*perCross)
	}
	if got := res.Distribution.Exact(0); got != aggregate.SolvedCount() {
		t.Errorf("Exact(0) = %d, want %d", got, aggregate.SolvedCount())
	}
	if res.Stats.CrossCount != 16 {
		t.Errorf("CrossCount = %d, want 16", res.Stats.CrossCount)
	}
}
