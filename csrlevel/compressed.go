package csrlevel

import "github.com/ronanh/intcomp"

// compressedBlock holds one vertex's adjacency, delta-encoded and then
// packed with intcomp's integer codec. Level.WithCompression trades
// Neighbors/Iter CPU time for a smaller resident EdgeTable — worthwhile
// for levels whose adjacency is long-lived under keep_only_recent_versions
// retention.
type compressedBlock struct {
	packed []uint32 // intcomp-packed delta stream
	n int // number of logical neighbors this block decodes to
	first NodeID // first neighbor, stored plain (delta base)
}

// WithCompression delta-encodes and packs every vertex's adjacency in
// place of a flat EdgeTable. Only meaningful on a *Level already sorted
// per-vertex by target (delta-encoding an unsorted run produces no size
// win and, worse, negative deltas that the codec cannot represent).
func (l *Level) WithCompression() error {
	if !l.Sorted {
		return ErrOutOfOrder
	}
	blocks := make([]compressedBlock, l.MaxNodes())
	for v := NodeID(0); v < l.MaxNodes(); v++ {
		start, end := l.VertexTable[v].Start, l.VertexTable[v+1].Start
		run := l.EdgeTable[start:end]
		blocks[v] = compressBlock(run)
	}
	l.blocks = blocks
	l.compressed = true
	l.EdgeTable = nil // logical offsets live on in VertexTable; raw table is freed

	return nil
}

func compressBlock(run []NodeID) compressedBlock {
	if len(run) == 0 {
		return compressedBlock{}
	}
	deltas := make([]uint32, len(run)-1)
	for i := 1; i < len(run); i++ {
		deltas[i-1] = uint32(run[i] - run[i-1])
	}
	packed := intcomp.CompressUint32(deltas, nil)

	return compressedBlock{packed: packed, n: len(run), first: run[0]}
}

// decodeBlock reconstructs vertex v's adjacency into scratch (grown if
// needed) and returns the filled prefix.
func (l *Level) decodeBlock(v NodeID, scratch []NodeID) []NodeID {
	b := l.blocks[v]
	if b.n == 0 {
		return scratch[:0]
	}
	if cap(scratch) < b.n {
		scratch = make([]NodeID, b.n)
	}
	scratch = scratch[:b.n]
	scratch[0] = b.first

	deltas := intcomp.UncompressUint32(b.packed, nil)
	cur := b.first
	for i, d := range deltas {
		cur += NodeID(d)
		scratch[i+1] = cur
	}

	return scratch
}
