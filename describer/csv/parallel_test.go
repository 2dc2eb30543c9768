package csv

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chop-dbhi/csv-describe/describer"
)

func TestScanParallelMatchesSequential(t *testing.T) {
	path := writeTemp(t, sampleCSV)

	seq, err := NewScanner().Scan(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	// Every worker count from one through more workers than rows must
	// reach the same conclusions as the sequential pass.
	for workers := 1; workers <= 6; workers++ {
		s := NewScanner()
		s.Workers = workers

		res, err := s.ScanFile(path)
		require.NoError(t, err, "workers=%d", workers)

		assert.Equal(t, seq.RowCount, res.RowCount, "workers=%d", workers)
		require.Len(t, res.Fields, len(seq.Fields))
		for i := range seq.Fields {
			assert.Equal(t, seq.Fields[i].Type, res.Fields[i].Type, "workers=%d field=%s", workers, seq.Fields[i].Name)
			assert.Equal(t, seq.Fields[i].Format, res.Fields[i].Format, "workers=%d field=%s", workers, seq.Fields[i].Name)
		}
	}
}

func TestScanParallelLargerFile(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("id,val,label\n")
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&sb, "%d,%d.5,row-%d\n", i+1, i, i)
	}
	path := writeTemp(t, sb.String())

	s := NewScanner()
	s.Workers = 4
	s.Options = describer.Options{Stats: true}

	res, err := s.ScanFile(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), res.RowCount)
	assert.Equal(t, "integer", res.Fields[0].Type)
	assert.Equal(t, "number", res.Fields[1].Type)
	assert.Equal(t, "string", res.Fields[2].Type)

	stats := res.Fields[0].Stats
	require.NotNil(t, stats)
	assert.Equal(t, int64(1000), stats.Count)
	require.NotNil(t, stats.Sum)
	assert.Equal(t, 500500.0, *stats.Sum)
	assert.Equal(t, 1.0, *stats.MinNumber)
	assert.Equal(t, 1000.0, *stats.MaxNumber)

	// Parallel statistics run in mergeable mode: no quantiles, no exact
	// frequency ranking.
	assert.Nil(t, stats.Median)
	assert.Nil(t, stats.ExactUnique)
}

func TestScanParallelQuotedNewlines(t *testing.T) {
	in := "a,b\n\"x\ny\",1\n\"p\nq\",2\nplain,3\n"
	path := writeTemp(t, in)

	for workers := 1; workers <= 4; workers++ {
		s := NewScanner()
		s.Workers = workers

		res, err := s.ScanFile(path)
		require.NoError(t, err, "workers=%d", workers)
		assert.Equal(t, int64(3), res.RowCount, "workers=%d", workers)
		assert.Equal(t, "integer", res.Fields[1].Type, "workers=%d", workers)
	}
}

func TestScanParallelHeaderOnly(t *testing.T) {
	path := writeTemp(t, "a,b\n")

	s := NewScanner()
	s.Workers = 3

	res, err := s.ScanFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.RowCount)
	require.Len(t, res.Fields, 2)
}

func TestScanParallelFieldCount(t *testing.T) {
	path := writeTemp(t, "a,b\n1,2\n1,2,3\n")

	s := NewScanner()
	s.Workers = 2

	_, err := s.ScanFile(path)
	assert.ErrorIs(t, err, ErrFieldCount)

	var serr *ScanError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, OpIndexBuild, serr.Op)
}

func TestScanParallelMissingFile(t *testing.T) {
	s := NewScanner()
	s.Workers = 2

	_, err := s.ScanFile("/nonexistent/data.csv")
	assert.Error(t, err)
}
