package mlcsr

import "github.com/katalvlaran/graphline/csrlevel"

// Publish atomically appends a newly-built level to the stack. The append
// happens under levelsMu, which gives the store-release / load-acquire
// ordering required between a new level's publication and any reader
// observing the incremented NumLevels.
//
// Publish never needs to pre-populate MaxVisibleLevel for the edges the
// new level just promoted: absence of an edge from the map means
// "unconstrained", i.e. visible at every level ≥ its own, including every
// level published later. Only an explicit deletion inserts an entry
// (UpdateMaxVisibleLevelLowerOnly) — an edge's default visibility tracks
// the current newest level without needing to be rewritten each time a
// new level is published.
func (s *Store) Publish(level *csrlevel.Level) (levelIndex int) {
	s.levelsMu.Lock()
	levelIndex = len(s.levels)
	s.levels = append(s.levels, level)
	s.levelsMu.Unlock()

	s.borrowMu.Lock()
	s.borrows = append(s.borrows, nil)
	s.borrowMu.Unlock()

	return levelIndex
}

// levelAt returns the level at idx under a read lock, or nil if idx is out
// of range.
func (s *Store) levelAt(idx int) *csrlevel.Level {
	s.levelsMu.RLock()
	defer s.levelsMu.RUnlock()
	if idx < 0 || idx >= len(s.levels) {
		return nil
	}
	return s.levels[idx]
}

// snapshotLevels returns the current level slice header under a read
// lock. Publish only appends, so the returned slice never grows under
// the caller, but KeepOnlyRecentVersions overwrites retired entries with
// nil in place: callers ranging over it must skip nil entries.
func (s *Store) snapshotLevels() []*csrlevel.Level {
	s.levelsMu.RLock()
	defer s.levelsMu.RUnlock()
	return s.levels
}
