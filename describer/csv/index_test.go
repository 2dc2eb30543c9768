package csv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex(t *testing.T) {
	in := "a,b\n1,2\n33,44\n\"x\ny\",z\n"
	header, ix, err := BuildIndex(NewReader(strings.NewReader(in), Dialect{}))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, header)
	assert.Equal(t, int64(3), ix.Rows())
	require.Len(t, ix.Positions, 4)

	// The sentinel marks the end of the data.
	assert.Equal(t, int64(len(in)), ix.Positions[3])

	// Every recorded offset, reparsed from that point, yields the same
	// row a sequential read does.
	seq := readAll(t, NewReader(strings.NewReader(in), Dialect{}))
	for i := 0; i < 3; i++ {
		off := ix.Positions[i]
		r := NewReaderAt(strings.NewReader(in[off:]), Dialect{}, off)
		rec, err := r.Read()
		require.NoError(t, err)
		assert.Equal(t, seq[i+1], rec, "row %d", i)
	}
}

func TestBuildIndexHeaderOnly(t *testing.T) {
	header, ix, err := BuildIndex(NewReader(strings.NewReader("a,b\n"), Dialect{}))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, header)
	assert.Equal(t, int64(0), ix.Rows())
	assert.Len(t, ix.Positions, 1)
}

func TestBuildIndexEmptyInput(t *testing.T) {
	_, _, err := BuildIndex(NewReader(strings.NewReader(""), Dialect{}))
	assert.ErrorIs(t, err, ErrMissingHeader)

	var serr *ScanError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, OpIndexBuild, serr.Op)
}

func TestBuildIndexFieldCount(t *testing.T) {
	_, _, err := BuildIndex(NewReader(strings.NewReader("a,b\n1,2\n1,2,3\n"), Dialect{}))
	assert.ErrorIs(t, err, ErrFieldCount)

	var serr *ScanError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, int64(2), serr.Row)
}

func TestBuildIndexBOM(t *testing.T) {
	in := "\xef\xbb\xbfa,b\n1,2\n"
	_, ix, err := BuildIndex(NewReader(strings.NewReader(in), Dialect{}))
	require.NoError(t, err)

	require.Equal(t, int64(1), ix.Rows())
	assert.Equal(t, int64(7), ix.Positions[0])
}
