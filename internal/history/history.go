package history

import "strings"

// History is the list of recent queries. Each query appears once, in the
// order it was first submitted.
type History struct {
	items []string
	seen  map[string]struct{}
}

func New() *History {
	return &History{seen: make(map[string]struct{})}
}

// Add records q and reports whether it was new. Blank queries are skipped.
func (h *History) Add(q string) bool {
	if strings.TrimSpace(q) == "" {
		return false
	}
	if _, ok := h.seen[q]; ok {
		return false
	}
	h.seen[q] = struct{}{}
	h.items = append(h.items, q)
	return true
}

// Items returns a copy of the recorded queries.
func (h *History) Items() []string {
	out := make([]string, len(h.items))
	copy(out, h.items)
	return out
}

func (h *History) Len() int { return len(h.items) }

func (h *History) Clear() {
	h.items = nil
	h.seen = make(map[string]struct{})
}
