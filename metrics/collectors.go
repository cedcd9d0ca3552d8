package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "graphline"

// Collectors bundles every metric the engine emits, registered against
// one Registerer at construction time rather than instrumenting main
// directly.
type Collectors struct {
	CheckpointDuration prometheus.Histogram
	LevelsTotal prometheus.Gauge
	IngestBehind prometheus.Histogram
	XMSSpills prometheus.Counter
}

// NewCollectors builds and registers a fresh Collectors set against reg.
// A nil reg registers against prometheus.DefaultRegisterer.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collectors{
		CheckpointDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "checkpoint",
			Name: "duration_seconds",
			Help: "Wall-clock duration of a checkpoint.Run invocation.",
			Buckets: prometheus.DefBuckets,
		}),
		LevelsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name: "levels_total",
			Help: "Number of published levels in the primary store.",
		}),
		IngestBehind: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name: "behind_seconds",
			Help: "How far behind its rate-limit schedule the ingester reported running.",
			Buckets: []float64{0, .001, .005, .01, .05, .1, .5, 1, 5},
		}),
		XMSSpills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "xms",
			Name: "spills_total",
			Help: "Total number of sorted runs spilled to disk by external merge sorts.",
		}),
	}

	reg.MustRegister(c.CheckpointDuration, c.LevelsTotal, c.IngestBehind, c.XMSSpills)
	return c
}
