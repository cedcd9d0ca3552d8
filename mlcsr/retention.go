package mlcsr

// KeepOnlyRecentVersions releases the Store's reference to level arrays
// older than the n most recent. "Release" means the Store drops its
// *csrlevel.Level pointer for that index and replaces it with nil once no
// outstanding Borrow still pins it — freeing actual memory waits on the
// garbage collector once nothing holds a reference, i.e. actual memory
// release waits until no outstanding read borrow covers that level.
//
// A level still pinned by a live Borrow is left alone; KeepOnlyRecentVersions
// is safe to call repeatedly (e.g. once per checkpoint) and will pick up
// levels that become releasable once their last borrow is returned, on a
// later call.
func (s *Store) KeepOnlyRecentVersions(n int) {
	s.levelsMu.Lock()
	defer s.levelsMu.Unlock()

	cutoff := len(s.levels) - n
	for i := 0; i < cutoff; i++ {
		if s.levels[i] == nil {
			continue
		}
		if s.outstanding(i) {
			continue
		}
		s.levels[i] = nil
	}
}
