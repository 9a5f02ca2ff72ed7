package annotate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexRank(t *testing.T) {
	idx := NewIndex([]string{"r1", "r2", "r3"})

	require.Equal(t, 3, idx.Len())
	for want, rev := range []string{"r1", "r2", "r3"} {
		rank, ok := idx.Rank(rev)
		assert.True(t, ok)
		assert.Equal(t, want, rank)
	}

	rank, ok := idx.Rank("unknown")
	assert.False(t, ok)
	assert.Equal(t, 2, rank)
}

func TestIndexDuplicateLastWins(t *testing.T) {
	idx := NewIndex([]string{"a", "b", "a", "c"})

	assert.Equal(t, 3, idx.Len())
	rank, ok := idx.Rank("a")
	assert.True(t, ok)
	assert.Equal(t, 2, rank)

	rank, _ = idx.Rank("c")
	assert.Equal(t, 3, rank)

	rank, ok = idx.Rank("zzz")
	assert.False(t, ok)
	assert.Equal(t, 2, rank)
}

func TestIndexEmpty(t *testing.T) {
	idx := NewIndex(nil)

	assert.Equal(t, 0, idx.Len())
	rank, ok := idx.Rank("anything")
	assert.False(t, ok)
	assert.Equal(t, 0, rank)

	var zero Index
	zero.Add("r1", 4)
	rank, ok = zero.Rank("r1")
	assert.True(t, ok)
	assert.Equal(t, 4, rank)
}

func TestIndexSkipsInvalidText(t *testing.T) {
	idx := NewIndex([]string{"r1", "\xff\xfe", "r3"})

	assert.Equal(t, 2, idx.Len())
	rank, ok := idx.Rank("r3")
	assert.True(t, ok)
	assert.Equal(t, 2, rank, "invalid lines still take up their position")
}

func TestLoadIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "revs.txt")
	require.NoError(t, os.WriteFile(path, []byte("aaa\r\nbbb\nccc"), 0o644))

	idx, err := LoadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	rank, ok := idx.Rank("aaa")
	assert.True(t, ok, "carriage returns are stripped")
	assert.Equal(t, 0, rank)

	rank, ok = idx.Rank("ccc")
	assert.True(t, ok, "last line without newline is kept")
	assert.Equal(t, 2, rank)
}

func TestLoadIndexMissingFile(t *testing.T) {
	_, err := LoadIndex(filepath.Join(t.TempDir(), "nope.txt"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOpen)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		change string
		hash   string
		badge  string
	}{
		{"change and hash", "100 r1", "100", "r1", "100:r1"},
		{"multi word change", "fix login bug 9f2c1e", "fix login bug", "9f2c1e", "fix login bug:9f2c1e"},
		{"no space", "9f2c1e", "", "9f2c1e", "9f2c1e"},
		{"leading space", " 9f2c1e", "", "9f2c1e", "9f2c1e"},
		{"trailing space", "100 ", "100", "", "100:"},
		{"empty", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParseRecord(tt.line)
			assert.Equal(t, tt.change, r.ChangeNumber)
			assert.Equal(t, tt.hash, r.Hash)
			assert.Equal(t, tt.badge, r.Badge())
		})
	}
}
