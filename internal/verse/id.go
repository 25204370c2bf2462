package verse

import (
	"regexp"
	"strconv"
)

// ID names a single verse, e.g. "v43003016" (book 43, chapter 3, verse 16).
// Identifiers come from the passage markup and are compared verbatim.
type ID string

var idPattern = regexp.MustCompile(`^v\d{8}$`)

// ParseID validates the rel attribute of a verse anchor. A malformed value
// yields the empty ID, which marks the unit as inert.
func ParseID(rel string) ID {
	if !idPattern.MatchString(rel) {
		return ""
	}
	return ID(rel)
}

// Inert reports whether the identifier is missing.
func (id ID) Inert() bool { return id == "" }

func (id ID) Book() int    { return id.field(1, 3) }
func (id ID) Chapter() int { return id.field(3, 6) }
func (id ID) Verse() int   { return id.field(6, 9) }

func (id ID) field(from, to int) int {
	if len(id) != 9 {
		return 0
	}
	n, err := strconv.Atoi(string(id[from:to]))
	if err != nil {
		return 0
	}
	return n
}
