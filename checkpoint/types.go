package checkpoint

import (
	"errors"
	"time"

	"github.com/katalvlaran/graphline/metrics"
	"github.com/katalvlaran/graphline/mlcsr"
	"github.com/katalvlaran/graphline/xms"
)

// ErrFatal wraps an out-of-memory or I/O failure during level
// construction. m is guaranteed unchanged: Run's only mutation point is
// the final atomic publish step.
var ErrFatal = errors.New("checkpoint: fatal failure during level construction")

// edgePair is the fixed-shape record fed through xms.Sorter when adjacency
// must be sorted. Exported fields so cbor can encode it without extra
// configuration.
type edgePair struct {
	Tail, Head uint32
}

// Options configures one Run invocation.
type Options struct {
	// SortAdjacency sorts each new level's adjacency by (tail, head) via
	// xms.Sorter, enabling binary search in csrlevel.Level.Find.
	SortAdjacency bool

	// Deduplicate drops later (tail, head) duplicates within this
	// checkpoint's new edges. The earliest occurrence survives.
	Deduplicate bool

	// WeightProperty, if non-empty, names a uint64 property column that
	// receives the duplicate count collapsed onto each surviving edge by
	// Deduplicate. Ignored unless Deduplicate is also set.
	WeightProperty string

	// RetentionLevels, if > 0, triggers m.KeepOnlyRecentVersions after a
	// successful publish.
	RetentionLevels int

	// OnPublish is invoked after a successful publish with the store's
	// current MaxNodes, letting callers refresh cached bookkeeping.
	OnPublish func(maxNodes mlcsr.NodeID)

	// SortWorkers/SortMemoryBudgetBytes/SortTempDirs configure the
	// xms.Sorter used when SortAdjacency is set; zero values fall back to
	// xms.NewConfig's defaults.
	SortWorkers int
	SortMemoryBudgetBytes int64
	SortTempDirs []string

	// Metrics, if set, receives a tick on XMSSpills each time the
	// adjacency sort used by SortAdjacency spills a run to disk.
	Metrics *metrics.Collectors
}

func (o Options) xmsConfig() xms.Config {
	var opts []xms.Option
	if o.SortWorkers > 0 {
		opts = append(opts, xms.WithWorkers(o.SortWorkers))
	}
	if o.SortMemoryBudgetBytes > 0 {
		opts = append(opts, xms.WithMemoryBudgetBytes(o.SortMemoryBudgetBytes))
	}
	if len(o.SortTempDirs) > 0 {
		opts = append(opts, xms.WithTempDirs(o.SortTempDirs...))
	}
	cfg := xms.NewConfig(opts...)
	if o.Metrics != nil {
		cfg.OnSpill = o.Metrics.XMSSpills.Inc
	}
	return cfg
}

// Stats summarizes one Run invocation.
type Stats struct {
	NewNodes int
	NewEdges int
	DroppedDupes int
	Duration time.Duration
	LevelIndex int
	Timestamp int64 // ctx.NowTimestamp at the time Run was called
}
