package feature

// entry is a stored rule together with the key it was registered under.
type entry struct {
	key  Key
	rule Rule
}

// store maps keys to rules and remembers first-insertion order, which is the
// order listeners see rules replayed in. It is not safe for concurrent use;
// Engine guards it.
type store struct {
	index   map[Key]int
	entries []entry
}

func newStore() *store {
	return &store{index: make(map[Key]int)}
}

// set stores rule at key. Overwriting keeps the key's original position.
func (s *store) set(key Key, rule Rule) {
	if i, ok := s.index[key]; ok {
		s.entries[i].rule = rule
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, entry{key: key, rule: rule})
}

func (s *store) get(key Key) (Rule, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return s.entries[i].rule, true
}

// snapshot returns a copy of the entries in store order.
func (s *store) snapshot() []entry {
	out := make([]entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *store) len() int {
	return len(s.entries)
}
