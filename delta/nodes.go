package delta

// ensureNode returns v's nodeRecord, creating it (state Allocated) on
// first touch. Callers must not hold d.nodesMu when calling this.
func (d *Delta) ensureNode(v NodeID) *nodeRecord {
	d.nodesMu.RLock()
	rec, ok := d.nodes[v]
	d.nodesMu.RUnlock()
	if ok {
		d.markTouched(v)
		return rec
	}

	d.nodesMu.Lock()
	rec, ok = d.nodes[v]
	if !ok {
		rec = &nodeRecord{state: StateAllocated}
		d.nodes[v] = rec
	}
	d.nodesMu.Unlock()

	d.markTouched(v)
	return rec
}

func (d *Delta) markTouched(v NodeID) {
	d.touchedMu.Lock()
	d.touched.Set(uint(v)) // bitset.Set auto-grows the backing storage
	d.touchedMu.Unlock()
}

// TouchedNodes returns every vertex ID touched since the last Reset, in
// ascending order. Checkpoint uses this instead of a full [0, maxNodes)
// scan.
func (d *Delta) TouchedNodes() []NodeID {
	d.touchedMu.Lock()
	defer d.touchedMu.Unlock()

	out := make([]NodeID, 0, d.touched.Count())
	for i, ok := d.touched.NextSet(0); ok; i, ok = d.touched.NextSet(i + 1) {
		out = append(out, NodeID(i))
	}
	return out
}

// lockPairAscending locks a and b's node records in ascending NodeID
// order to avoid deadlock, and returns an unlock function.
func lockPairAscending(a, b *nodeRecord, aID, bID NodeID) func() {
	if aID == bID {
		a.mu.Lock()
		return a.mu.Unlock
	}
	first, second := a, b
	if bID < aID {
		first, second = b, a
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
