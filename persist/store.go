package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/katalvlaran/graphline/csrlevel"
	"github.com/katalvlaran/graphline/mlcsr"
)

// Store persists Levels (and their property columns) as a directory of
// flat files named "<prefix>_<name>.<ext>", one manifest per
// level. It does not itself hold any mmap open between calls: WriteLevel
// maps, copies, and unmaps; ReadLevel maps for the caller and hands back a
// release function to unmap when the caller is done with the Level.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir, creating it if necessary.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persist: create dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) levelPrefix(idx int) string {
	return filepath.Join(s.dir, fmt.Sprintf("level_%05d", idx))
}

// WriteLevel mmap-writes level's VertexTable and EdgeTable plus any
// property columns to files under s.dir, and records a manifest
// describing them. Only an uncompressed Level may be persisted —
// WithCompression'd levels keep their packed form in memory only.
func (s *Store) WriteLevel(idx int, level *csrlevel.Level, props map[string]mlcsr.Column) error {
	prefix := s.levelPrefix(idx)

	if err := mmapWriteBytes(prefix+"_vertex.bin", beginRecordBytes(level.VertexTable)); err != nil {
		return err
	}
	if err := mmapWriteBytes(prefix+"_edge.bin", nodeIDBytes(level.EdgeTable)); err != nil {
		return err
	}

	widths := make(map[string]PropertyWidth, len(props))
	for name, col := range props {
		if col.U32 != nil {
			widths[name] = PropertyWidthU32
			if err := mmapWriteBytes(prefix+"_prop_"+name+".bin", u32Bytes(col.U32)); err != nil {
				return err
			}
			continue
		}
		widths[name] = PropertyWidthU64
		if err := mmapWriteBytes(prefix+"_prop_"+name+".bin", u64Bytes(col.U64)); err != nil {
			return err
		}
	}

	m := Manifest{
		LevelIndex: idx,
		MaxNodes: uint32(level.MaxNodes()),
		EdgeCount: int64(level.EdgeCount()),
		Sorted: level.Sorted,
		Properties: widths,
	}
	return writeManifest(prefix+"_manifest.cbor", m)
}

// ReadLevel mmap-reads level idx back from disk, reinterpreting the raw
// bytes as typed slices with zero copy. The returned release func must be
// called exactly once when the caller is done reading through the Level.
func (s *Store) ReadLevel(idx int) (*csrlevel.Level, Manifest, func() error, error) {
	prefix := s.levelPrefix(idx)

	m, err := readManifest(prefix + "_manifest.cbor")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Manifest{}, nil, fmt.Errorf("%w: level %d: %v", ErrManifestMismatch, idx, err)
		}
		return nil, Manifest{}, nil, err
	}

	vertexData, vertexRelease, err := mmapReadFile(prefix + "_vertex.bin")
	if err != nil {
		return nil, Manifest{}, nil, err
	}
	edgeData, edgeRelease, err := mmapReadFile(prefix + "_edge.bin")
	if err != nil {
		_ = vertexRelease()
		return nil, Manifest{}, nil, err
	}

	level := &csrlevel.Level{
		VertexTable: bytesToBeginRecords(vertexData),
		EdgeTable: bytesToNodeIDs(edgeData),
		Sorted: m.Sorted,
	}

	release := func() error {
		if err := vertexRelease(); err != nil {
			return err
		}
		return edgeRelease()
	}
	return level, m, release, nil
}

// ReadProperty mmap-reads a persisted property column back for level idx.
func (s *Store) ReadProperty(idx int, name string, width PropertyWidth) (mlcsr.Column, func() error, error) {
	prefix := s.levelPrefix(idx)
	data, release, err := mmapReadFile(prefix + "_prop_" + name + ".bin")
	if err != nil {
		return mlcsr.Column{}, nil, err
	}
	if width == PropertyWidthU32 {
		return mlcsr.Column{U32: bytesToU32(data)}, release, nil
	}
	return mlcsr.Column{U64: bytesToU64(data)}, release, nil
}

func mmapWriteBytes(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("persist: create %s: %w", path, err)
	}
	defer f.Close()

	if len(data) == 0 {
		return nil
	}
	if err := f.Truncate(int64(len(data))); err != nil {
		return fmt.Errorf("persist: truncate %s: %w", path, err)
	}
	mapped, err := mmapFile(f, int64(len(data)), true)
	if err != nil {
		return err
	}
	defer munmapFile(mapped)

	copy(mapped, data)
	return nil
}

func mmapReadFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("persist: open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("persist: stat %s: %w", path, err)
	}
	if stat.Size() == 0 {
		return nil, func() error { return nil }, nil
	}

	data, err := mmapFile(f, stat.Size(), false)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return munmapFile(data) }, nil
}

// --- raw <-> typed reinterpretation, zero copy in both directions ---

func beginRecordBytes(vt []csrlevel.BeginRecord) []byte {
	if len(vt) == 0 {
		return nil
	}
	const size = int(unsafe.Sizeof(csrlevel.BeginRecord{}))
	return unsafe.Slice((*byte)(unsafe.Pointer(&vt[0])), len(vt)*size)
}

func bytesToBeginRecords(b []byte) []csrlevel.BeginRecord {
	if len(b) == 0 {
		return nil
	}
	const size = int(unsafe.Sizeof(csrlevel.BeginRecord{}))
	return unsafe.Slice((*csrlevel.BeginRecord)(unsafe.Pointer(&b[0])), len(b)/size)
}

func nodeIDBytes(et []csrlevel.NodeID) []byte {
	if len(et) == 0 {
		return nil
	}
	const size = int(unsafe.Sizeof(csrlevel.NodeID(0)))
	return unsafe.Slice((*byte)(unsafe.Pointer(&et[0])), len(et)*size)
}

func bytesToNodeIDs(b []byte) []csrlevel.NodeID {
	if len(b) == 0 {
		return nil
	}
	const size = int(unsafe.Sizeof(csrlevel.NodeID(0)))
	return unsafe.Slice((*csrlevel.NodeID)(unsafe.Pointer(&b[0])), len(b)/size)
}

func u32Bytes(v []uint32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}

func bytesToU32(b []byte) []uint32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(b)/4)
}

func u64Bytes(v []uint64) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*8)
}

func bytesToU64(b []byte) []uint64 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&b[0])), len(b)/8)
}
