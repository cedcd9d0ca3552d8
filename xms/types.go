package xms

import (
	"errors"
	"runtime"

	"github.com/rs/zerolog"
)

// Sentinel errors.
var (
	ErrIOFailure = errors.New("xms: io failure")
	ErrNotSorted = errors.New("xms: NextBlock called before Sort")
)

const (
	// defaultRecordSizeBytes is the per-record size assumption used to turn
	// a memory budget into a record-count buffer capacity when the caller
	// does not know its record's exact in-memory footprint.
	defaultRecordSizeBytes = 32
	minMemoryBudgetBytes = 1 << 20 // 1 MiB floor
	minBufferRecords = 256
)

// Config tunes a Sorter's in-memory buffer and spill behavior. The
// zero Config is usable; NewConfig fills in documented defaults.
type Config struct {
	// MemoryBudgetBytes bounds the in-memory buffer before a spill. Callers
	// typically derive this as a fraction of a larger memory budget rather
	// than probing OS-reported free memory.
	MemoryBudgetBytes int64

	// RecordSizeBytes estimates one record's footprint, used to convert
	// MemoryBudgetBytes into a buffer capacity in records.
	RecordSizeBytes int64

	// Workers bounds in-memory partition-sort parallelism. NewConfig
	// resolves 0 to runtime.GOMAXPROCS(0); a Config used without NewConfig
	// sorts on one goroutine when Workers < 2.
	Workers int

	// TempDirs are spill directories, used round-robin. Empty means
	// os.TempDir.
	TempDirs []string

	// Logger receives spill/merge diagnostics. Defaults to zerolog.Nop
	// so Sorter stays silent as a library unless a caller wires one in.
	Logger zerolog.Logger

	// OnSpill, if set, is invoked once per run spilled to disk. Wired to
	// metrics.Collectors.XMSSpills.Inc by callers that care; kept as a
	// bare callback here so xms has no dependency on the metrics package.
	OnSpill func()
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithMemoryBudgetBytes overrides the in-memory buffer size.
func WithMemoryBudgetBytes(n int64) Option {
	return func(c *Config) { c.MemoryBudgetBytes = n }
}

// WithRecordSizeBytes overrides the per-record size estimate.
func WithRecordSizeBytes(n int64) Option {
	return func(c *Config) { c.RecordSizeBytes = n }
}

// WithWorkers overrides in-memory sort parallelism.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// WithTempDirs overrides the spill directory rotation.
func WithTempDirs(dirs ...string) Option {
	return func(c *Config) { c.TempDirs = dirs }
}

// WithLogger overrides the diagnostics logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// NewConfig resolves opts against documented defaults.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		MemoryBudgetBytes: minMemoryBudgetBytes,
		RecordSizeBytes: defaultRecordSizeBytes,
		Workers: runtime.GOMAXPROCS(0),
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MemoryBudgetBytes < minMemoryBudgetBytes {
		cfg.MemoryBudgetBytes = minMemoryBudgetBytes
	}
	if cfg.RecordSizeBytes <= 0 {
		cfg.RecordSizeBytes = defaultRecordSizeBytes
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return cfg
}

func (c Config) bufferCapacity() int {
	size := c.RecordSizeBytes
	if size <= 0 {
		size = defaultRecordSizeBytes
	}
	n := int(c.MemoryBudgetBytes / size)
	if n < minBufferRecords {
		n = minBufferRecords
	}
	return n
}
