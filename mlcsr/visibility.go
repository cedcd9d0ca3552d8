package mlcsr

// maxVisibleLevel returns e's current watermark and whether an explicit
// entry exists. Absence means "unconstrained" (see Publish's doc comment):
// callers should treat a missing entry as visible at any queryLevel ≥
// e.Level.
func (s *Store) maxVisibleLevel(e EdgeID) (level int, ok bool) {
	s.maxVisMu.Lock()
	defer s.maxVisMu.Unlock()
	level, ok = s.maxVis[e]
	return level, ok
}

// visibleAt reports whether e is visible to a query pinned at queryLevel.
func (s *Store) visibleAt(e EdgeID, queryLevel int) bool {
	if e.Level > queryLevel {
		return false
	}
	wm, ok := s.maxVisibleLevel(e)
	if !ok {
		return true
	}
	return wm >= queryLevel
}

// UpdateMaxVisibleLevelLowerOnly lowers e's visibility watermark to
// newLevel, converging concurrent callers to the minimum requested value.
// No-op (returns false) if e is already visible at ≤ newLevel.
// Idempotent: calling this twice with the same or a higher newLevel after
// the first lowering changes nothing further.
func (s *Store) UpdateMaxVisibleLevelLowerOnly(e EdgeID, newLevel int) bool {
	s.maxVisMu.Lock()
	defer s.maxVisMu.Unlock()

	cur, ok := s.maxVis[e]
	if !ok {
		s.maxVis[e] = newLevel
		return true
	}
	if newLevel < cur {
		s.maxVis[e] = newLevel
		return true
	}
	return false
}

// VisibilityOf exposes the current watermark for tests and diagnostics; ok
// is false when the edge has never been logically deleted (unconstrained
// visibility).
func (s *Store) VisibilityOf(e EdgeID) (level int, ok bool) {
	return s.maxVisibleLevel(e)
}
