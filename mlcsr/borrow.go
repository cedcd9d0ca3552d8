package mlcsr

import "github.com/katalvlaran/graphline/csrlevel"

// Borrow pins a single level index so that analytics reading through it
// never observes a level published after the borrow was acquired. A
// zero-value Borrow pins level 0 and is not meant to be constructed
// directly; use Store.BorrowAt.
type Borrow struct {
	Level int
}

// BorrowAt pins level for the caller and returns a release function the
// caller must invoke exactly once when done. While any Borrow on a level
// is outstanding, KeepOnlyRecentVersions leaves that level in place: it
// drops neither the Store's reference to it nor its backing arrays.
func (s *Store) BorrowAt(level int) (Borrow, func(), error) {
	s.borrowMu.Lock()
	defer s.borrowMu.Unlock()

	if level < 0 || level >= len(s.borrows) {
		return Borrow{}, nil, ErrLevelOutOfRange
	}
	if s.borrows[level] == nil {
		s.borrows[level] = newRefBitset()
	}
	slot := s.borrows[level].nextFree()
	s.borrows[level].set(slot)

	release := func() {
		s.borrowMu.Lock()
		defer s.borrowMu.Unlock()
		if level < len(s.borrows) && s.borrows[level] != nil {
			s.borrows[level].clear(slot)
		}
	}

	return Borrow{Level: level}, release, nil
}

// LevelForRead returns the level a Borrow pinned — never any level
// published after the borrow, even if the store has since grown further.
func (s *Store) LevelForRead(b Borrow) *csrlevel.Level {
	return s.levelAt(b.Level)
}

// outstanding reports whether level still has any live borrow.
func (s *Store) outstanding(level int) bool {
	s.borrowMu.Lock()
	defer s.borrowMu.Unlock()
	if level < 0 || level >= len(s.borrows) || s.borrows[level] == nil {
		return false
	}
	return s.borrows[level].any()
}
