package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/SeamusWaldron/xcross/internal/pipeline"
)

// metricsHooks records pipeline events in a private registry that is written
// out as a node_exporter textfile after the run.
type metricsHooks struct {
	reg *prometheus.Registry

	// stageDuration tracks wall time per stage
	stageDuration *prometheus.GaugeVec

	// stageErrors counts failed stages
	stageErrors *prometheus.CounterVec

	// layerEntries tracks entries discovered per breadth-first layer
	layerEntries *prometheus.GaugeVec

	// crossesDone tracks aggregation progress
	crossesDone prometheus.Gauge

	// distribution tracks the final count per distance
	distribution *prometheus.GaugeVec

	// configurations is the grand total
	configurations prometheus.Gauge
}

func newMetricsHooks() *metricsHooks {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &metricsHooks{
		reg: reg,
		stageDuration: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xcross_stage_duration_seconds",
			Help: "Wall time of each pipeline stage in seconds",
		}, []string{"stage"}),
		stageErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "xcross_stage_errors_total",
			Help: "Pipeline stages that returned an error",
		}, []string{"stage"}),
		layerEntries: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xcross_prune_layer_entries",
			Help: "Pruning table entries first reached at each depth",
		}, []string{"table", "depth"}),
		crossesDone: f.NewGauge(prometheus.GaugeOpts{
			Name: "xcross_aggregate_crosses_done",
			Help: "Cross coordinates aggregated so far",
		}),
		distribution: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xcross_distribution_count",
			Help: "Configurations at each optimal distance",
		}, []string{"distance"}),
		configurations: f.NewGauge(prometheus.GaugeOpts{
			Name: "xcross_configurations_total",
			Help: "Configurations counted over all distances",
		}),
	}
}

func (m *metricsHooks) OnStageStart(context.Context, pipeline.Stage) {}

func (m *metricsHooks) OnStageComplete(_ context.Context, s pipeline.Stage, d time.Duration, err error) {
	m.stageDuration.WithLabelValues(string(s)).Set(d.Seconds())
	if err != nil {
		m.stageErrors.WithLabelValues(string(s)).Inc()
	}
}

func (m *metricsHooks) OnLayer(_ context.Context, s pipeline.Stage, depth int, discovered int64) {
	m.layerEntries.WithLabelValues(string(s), strconv.Itoa(depth)).Set(float64(discovered))
}

func (m *metricsHooks) OnProgress(_ context.Context, done, _ int) {
	m.crossesDone.Set(float64(done))
}

// observeResult records the final distribution.
func (m *metricsHooks) observeResult(res *pipeline.Result) {
	m.crossesDone.Set(float64(res.Stats.CrossCount))
	for d, n := range res.Distribution.Counts() {
		if n == 0 {
			continue
		}
		m.distribution.WithLabelValues(strconv.Itoa(d)).Set(float64(n))
	}
	m.configurations.Set(float64(res.Distribution.Total()))
}

// write stores the registry in the textfile format at path.
func (m *metricsHooks) write(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
