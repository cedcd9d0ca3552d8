package persist

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// PropertyWidth records which of mlcsr.Column's two mutually exclusive
// backing arrays a persisted property column uses.
type PropertyWidth int

const (
	PropertyWidthU32 PropertyWidth = iota
	PropertyWidthU64
)

// Manifest is the small CBOR-encoded sidecar describing one level: its
// index, max_nodes and edge count at write time, whether its adjacency is
// sorted, and the property-column schema, all of which
// a reader needs before it can safely reinterpret the mmap'd raw bytes
// as typed slices.
type Manifest struct {
	LevelIndex int
	MaxNodes uint32
	EdgeCount int64
	Sorted bool
	Properties map[string]PropertyWidth
}

func writeManifest(path string, m Manifest) error {
	data, err := cbor.Marshal(m)
	if err != nil {
		return fmt.Errorf("persist: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: write manifest %s: %w", path, err)
	}
	return nil
}

func readManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("persist: read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := cbor.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("persist: decode manifest %s: %w", path, err)
	}
	return m, nil
}
