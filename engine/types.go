package engine

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/graphline/ingest"
)

// Context lives in package ingest to avoid an import cycle, and is
// re-exported here as an alias so callers that only import engine still
// see it under this package's name.
type Context = ingest.Context

// DataSource is re-exported here for the same reason as Context: the
// interface itself lives in package ingest, reachable from the bottom of
// the dependency graph instead of the top.
type DataSource = ingest.DataSource

// StatSource and RewindSource are DataSource's optional capabilities.
type StatSource = ingest.StatSource
type RewindSource = ingest.RewindSource

// ErrInvalidConfig wraps every validation failure New returns during
// configuration validation, before any work begins.
var ErrInvalidConfig = errors.New("engine: invalid config")

// Direction selects how an undirected input edge is represented
// internally.
type Direction int

const (
	// Directed stores exactly the edges the source provides.
	Directed Direction = iota
	// UndirectedDouble inserts both (u,v) and (v,u) for every input edge.
	UndirectedDouble
	// UndirectedOrdered stores one canonical direction per edge
	// (min(u,v) -> max(u,v)), relying on callers to query both ways.
	UndirectedOrdered
)

func (d Direction) String() string {
	switch d {
	case Directed:
		return "directed"
	case UndirectedDouble:
		return "undirected-double"
	case UndirectedOrdered:
		return "undirected-ordered"
	default:
		return "unknown"
	}
}

// Config aggregates every knob the engine's wiring needs, validated once
// via go-playground/validator before New does any work.
type Config struct {
	// MaxNodes sizes the initial vertex table.
	MaxNodes uint32 `validate:"required"`

	// Direction controls how undirected input is represented internally.
	Direction Direction `validate:"gte=0,lte=2"`

	// ReverseEdges maintains a second Store indexed by head instead of
	// tail (reverse twin).
	ReverseEdges bool

	// ReverseMaps is accepted but not read by New or NewDriver: no
	// mapping between out-edge and in-edge IDs is built, whatever its
	// value.
	ReverseMaps bool

	// Deduplicate enables checkpoint.Options.Deduplicate.
	Deduplicate bool

	// NoProperties disables the weight-accumulation property column even
	// when Deduplicate is set.
	NoProperties bool

	// XSBufferSize sizes xms.Config.MemoryBudgetBytes when non-zero;
	// zero derives it as a quarter of TotalMemoryBytes.
	XSBufferSize int64 `validate:"gte=0"`

	// TotalMemoryBytes is the overall memory budget XSBufferSize is
	// derived from when unset.
	TotalMemoryBytes int64 `validate:"gte=0"`

	// TempDirs round-robins xms spill files.
	TempDirs []string

	// MaxEdgesPerPull bounds one DataSource.Pull call.
	MaxEdgesPerPull int `validate:"required,gt=0"`

	// PartialLoadPart/PartialLoadNumParts shard a DataSource file across
	// parallel loaders, 1-indexed. Zero values mean "no sharding."
	PartialLoadPart int `validate:"gte=0"`
	PartialLoadNumParts int `validate:"gte=0"`

	// AdvanceIntervalMillis/DrainThreshold/MaxAdvances configure the
	// driver.Driver New builds.
	AdvanceIntervalMillis int64 `validate:"gte=0"`
	DrainThreshold int `validate:"gte=0"`
	MaxAdvances int `validate:"gte=0"`

	// RetentionLevels configures checkpoint.Options.RetentionLevels.
	RetentionLevels int `validate:"gte=0"`

	// Logger defaults to zerolog.Nop (the zero value) when unset.
	Logger zerolog.Logger
}
