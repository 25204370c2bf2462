package highlight

import "sort"

// Store maps verse identifiers to their single active color. It lives for
// one session and is only touched from the UI update loop.
type Store struct {
	colors map[string]Color
}

func NewStore() *Store {
	return &Store{colors: make(map[string]Color)}
}

// Get returns the color stored for id.
func (s *Store) Get(id string) (Color, bool) {
	c, ok := s.colors[id]
	return c, ok
}

// ToggleSet removes the entry when id already carries c, otherwise sets
// id to c. Empty identifiers are ignored.
func (s *Store) ToggleSet(id string, c Color) {
	if id == "" || c == None {
		return
	}
	if cur, ok := s.colors[id]; ok && cur == c {
		delete(s.colors, id)
		return
	}
	s.colors[id] = c
}

func (s *Store) Len() int {
	return len(s.colors)
}

// Entry is a single stored highlight.
type Entry struct {
	ID    string
	Color Color
}

// Entries returns a snapshot sorted by identifier.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.colors))
	for id, c := range s.colors {
		out = append(out, Entry{ID: id, Color: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
