package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinMax(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(3, Min(3, 7))
	assert.Equal(uint8(2), Min(uint8(9), uint8(2)))
	assert.Equal(7, Max(3, 7))
	assert.Equal(-1, Max(-1, -4))
}

func TestFilterOut(t *testing.T) {
	assert.Equal(t, []int{3, 0, 2}, FilterOut([]int{-1, 3, 0, -1, 2}, -1))
	assert.Nil(t, FilterOut([]int{-1}, -1))
}

func TestGetSortedKeys(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, GetSortedKeys(m))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, GetKeys(m))
}

func TestGatherAllMidiPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mid", "b.midi", "c.txt", "sub/d.mid"} {
		require.NoError(t, WriteBinary(filepath.Join(dir, name), []byte{0}))
	}

	paths, err := GatherAllMidiPaths(dir, 0)
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	paths, err = GatherAllMidiPaths(dir, 2)
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	single := filepath.Join(dir, "a.mid")
	paths, err = GatherAllMidiPaths(single, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{single}, paths)

	_, err = GatherAllMidiPaths(filepath.Join(dir, "missing"), 0)
	assert.True(t, os.IsNotExist(err))
}
