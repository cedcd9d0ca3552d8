package delta

import "github.com/katalvlaran/graphline/mlcsr"

// allocate reserves the next pendingEdge slot, growing the chunk list if
// the current chunk is full, and returns its handle. Freed only wholesale
// by Reset — never per-edge.
func (d *Delta) allocate(rec pendingEdge) EdgeHandle {
	d.arenaMu.Lock()
	defer d.arenaMu.Unlock()

	if len(d.chunks) == 0 || len(d.chunks[len(d.chunks)-1]) == chunkSize {
		d.chunks = append(d.chunks, make([]pendingEdge, 0, chunkSize))
	}
	chunkIdx := len(d.chunks) - 1
	d.chunks[chunkIdx] = append(d.chunks[chunkIdx], rec)
	offset := len(d.chunks[chunkIdx]) - 1

	return newHandle(chunkIdx, offset)
}

func (d *Delta) get(h EdgeHandle) *pendingEdge {
	d.arenaMu.Lock()
	defer d.arenaMu.Unlock()
	c, o := h.chunk(), h.offset()
	if c < 0 || c >= len(d.chunks) || o < 0 || o >= len(d.chunks[c]) {
		return nil
	}
	return &d.chunks[c][o]
}

// Reset discards the entire arena and node-record set, called by
// checkpoint immediately after a successful freeze.
func (d *Delta) Reset() {
	d.arenaMu.Lock()
	d.chunks = nil
	d.arenaMu.Unlock()

	d.nodesMu.Lock()
	d.nodes = make(map[NodeID]*nodeRecord)
	d.nodesMu.Unlock()

	d.deletionMu.Lock()
	d.lowerDeletions = make(map[mlcsr.EdgeID]int64)
	d.deletionMu.Unlock()

	d.touchedMu.Lock()
	d.touched.ClearAll()
	d.touchedMu.Unlock()
}
