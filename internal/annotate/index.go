package annotate

import (
	"strings"
	"unicode/utf8"
)

// Index maps a revision identifier to its age rank, the zero-based line it
// sits on in the revision list. Lower ranks are older.
type Index struct {
	ranks map[string]int
}

// NewIndex builds an index from the lines of a revision list. Lines that are
// not valid UTF-8 are left out but still take up their position.
func NewIndex(lines []string) *Index {
	idx := &Index{ranks: make(map[string]int, len(lines))}
	for rank, line := range lines {
		if !utf8.ValidString(line) {
			continue
		}
		idx.Add(line, rank)
	}
	return idx
}

// LoadIndex reads a revision list from disk
func LoadIndex(path string) (*Index, error) {
	lines, err := readFileLines(path)
	if err != nil {
		return nil, err
	}
	return NewIndex(lines), nil
}

// Add records rank for revision, replacing any earlier rank.
func (i *Index) Add(revision string, rank int) {
	if i.ranks == nil {
		i.ranks = make(map[string]int)
	}
	i.ranks[revision] = rank
}

// Len returns the number of distinct revisions
func (i *Index) Len() int {
	return len(i.ranks)
}

// Rank resolves a revision to its age rank. Unknown revisions are treated as
// the newest one, rank Len()-1, or 0 when the index is empty; ok is false in
// that case.
func (i *Index) Rank(revision string) (rank int, ok bool) {
	if r, found := i.ranks[revision]; found {
		return r, true
	}
	if i.Len() == 0 {
		return 0, false
	}
	return i.Len() - 1, false
}

// Record is one parsed blame line
type Record struct {
	ChangeNumber string
	Hash         string
}

// ParseRecord splits a blame line at its last space. A line without spaces
// is all hash.
func ParseRecord(line string) Record {
	at := strings.LastIndexByte(line, ' ')
	if at < 0 {
		return Record{Hash: line}
	}
	return Record{ChangeNumber: line[:at], Hash: line[at+1:]}
}

// Badge is the label printed in front of the line number: "change:hash", or
// just the hash when there is no change number.
func (r Record) Badge() string {
	if r.ChangeNumber == "" {
		return r.Hash
	}
	return r.ChangeNumber + ":" + r.Hash
}
