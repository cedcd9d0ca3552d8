package engine

import (
	"time"

	"github.com/katalvlaran/graphline/checkpoint"
	"github.com/katalvlaran/graphline/delta"
	"github.com/katalvlaran/graphline/driver"
	"github.com/katalvlaran/graphline/loader"
	"github.com/katalvlaran/graphline/metrics"
	"github.com/katalvlaran/graphline/mlcsr"
)

// Engine bundles the Store/Delta pair a driver.Driver mutates and reads,
// plus the validated Config both were built from.
type Engine struct {
	Cfg Config
	Store *mlcsr.Store
	Delta *delta.Delta
}

// New validates cfg and constructs a fresh Store/Delta pair. ReverseEdges
// wires a reverse twin Store; UndirectedDouble/UndirectedOrdered direction
// is applied by wrapping the caller's DataSource in NewDriver (see
// loader.DirectionSource), not here — New only shapes storage, not
// edge-insertion policy.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	store := mlcsr.New(mlcsr.NodeID(cfg.MaxNodes))
	if cfg.ReverseEdges {
		store.Reverse = mlcsr.New(mlcsr.NodeID(cfg.MaxNodes))
	}

	return &Engine{
		Cfg: cfg,
		Store: store,
		Delta: delta.New(),
	}, nil
}

// CheckpointOptions derives checkpoint.Options from Cfg, wiring m into
// metrics when provided.
func (e *Engine) CheckpointOptions(m *metrics.Collectors) checkpoint.Options {
	opt := checkpoint.Options{
		SortAdjacency: true,
		Deduplicate: e.Cfg.Deduplicate,
		RetentionLevels: e.Cfg.RetentionLevels,
		SortMemoryBudgetBytes: e.Cfg.xsBufferSize(),
		SortTempDirs: e.Cfg.TempDirs,
		Metrics: m,
		OnPublish: e.Store.SetMaxNodes,
	}
	if e.Cfg.Deduplicate && !e.Cfg.NoProperties {
		opt.WeightProperty = "weight"
	}
	return opt
}

// NewDriver builds a driver.Driver wired to this Engine's Store/Delta,
// reading ds and invoking onAdvance once per completed checkpoint. ds is
// wrapped in a loader.DirectionSource when Cfg.Direction calls for it.
func (e *Engine) NewDriver(ds DataSource, onAdvance func(mlcsr.Borrow), m *metrics.Collectors) *driver.Driver {
	ds = e.wrapDirection(ds)

	cfg := driver.Config{
		Mode: driver.ModeDeltaCheckpoint,
		BatchSize: driver.Uniform{Min: 1, Max: e.Cfg.MaxEdgesPerPull},
		AdvanceInterval: time.Duration(e.Cfg.AdvanceIntervalMillis) * time.Millisecond,
		DrainThreshold: e.Cfg.DrainThreshold,
		MaxAdvances: e.Cfg.MaxAdvances,
		OnAdvance: onAdvance,
		CheckpointOptions: e.CheckpointOptions(m),
		Metrics: m,
		Logger: e.Cfg.Logger,
	}
	return driver.New(e.Delta, e.Store, ds, cfg)
}

// wrapDirection applies Cfg.Direction to ds, wrapping it in a
// loader.DirectionSource when undirected handling is configured.
func (e *Engine) wrapDirection(ds DataSource) DataSource {
	switch e.Cfg.Direction {
	case UndirectedDouble:
		return loader.NewDirectionSource(ds, loader.DirectionDouble)
	case UndirectedOrdered:
		return loader.NewDirectionSource(ds, loader.DirectionOrdered)
	default:
		return ds
	}
}
