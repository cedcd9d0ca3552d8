package mlcsr

// PropertyColumn returns the per-level Column slice for name; ok is false
// if it was never declared via DeclareProperty.
func (s *Store) PropertyColumn(name string) ([]Column, bool) {
	s.propsMu.Lock()
	defer s.propsMu.Unlock()
	cols, ok := s.properties[name]
	return cols, ok
}

// DeclareProperty registers a property column family; it is a no-op if
// name is already declared. Writers append one Column per level as levels
// are built (checkpoint's copy-on-write step); immutable lower-level
// Columns are never mutated in place.
func (s *Store) DeclareProperty(name string) {
	s.propsMu.Lock()
	defer s.propsMu.Unlock()
	if _, ok := s.properties[name]; !ok {
		s.properties[name] = nil
	}
}

// AppendPropertyLevel attaches col as the newest level's Column for name,
// called once per checkpoint for every declared property: writes occur
// only during level construction or on copy-on-write edit of the current
// topmost writable shadow, never on immutable lower levels.
func (s *Store) AppendPropertyLevel(name string, col Column) {
	s.propsMu.Lock()
	defer s.propsMu.Unlock()
	s.properties[name] = append(s.properties[name], col)
}

// PropertyAt32 reads the value at edge e's (level, index) from column name.
// ok is false if the property is undeclared, e's level has no column yet,
// or e.Index is out of range for that column.
func (s *Store) PropertyAt32(name string, e EdgeID) (uint32, bool) {
	cols, ok := s.PropertyColumn(name)
	if !ok || e.Level < 0 || e.Level >= len(cols) {
		return 0, false
	}
	col := cols[e.Level]
	if col.U32 == nil || e.Index >= len(col.U32) {
		return 0, false
	}
	return col.U32[e.Index], true
}

// PropertyAt64 is PropertyAt32's 64-bit counterpart.
func (s *Store) PropertyAt64(name string, e EdgeID) (uint64, bool) {
	cols, ok := s.PropertyColumn(name)
	if !ok || e.Level < 0 || e.Level >= len(cols) {
		return 0, false
	}
	col := cols[e.Level]
	if col.U64 == nil || e.Index >= len(col.U64) {
		return 0, false
	}
	return col.U64[e.Index], true
}
