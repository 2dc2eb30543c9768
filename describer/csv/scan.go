package csv

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/chop-dbhi/csv-describe/describer"
)

// Operation names carried by ScanError.
const (
	OpIndexBuild     = "index build"
	OpChunkScan      = "chunk scan"
	OpSequentialScan = "sequential scan"
)

// ScanError identifies which operation of a scan failed and, where known,
// the data row it failed on (1-based).
type ScanError struct {
	Op  string
	Row int64
	Err error
}

func (e *ScanError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: row %d: %v", e.Op, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// Field is the resolved descriptor for one column.
type Field struct {
	Name   string           `json:"name"`
	Type   string           `json:"type"`
	Format string           `json:"format"`
	Stats  *describer.Stats `json:"stats,omitempty"`
}

// Result is the outcome of scanning one file.
type Result struct {
	RowCount int64   `json:"row_count"`
	Fields   []Field `json:"fields"`
}

// Scanner scans CSV input with one describer per column. The zero value
// scans sequentially with the default dialect and no statistics.
type Scanner struct {
	Dialect Dialect
	Options describer.Options

	// Workers selects the parallel path for ScanFile when positive.
	Workers int

	Logger zerolog.Logger
}

// NewScanner returns a Scanner with defaults and a disabled logger.
func NewScanner() *Scanner {
	return &Scanner{Logger: zerolog.Nop()}
}

// Scan reads all records from in sequentially, in file order, and resolves
// one field descriptor per column. Statistics, when enabled, are in full
// mode unless mergeable statistics were requested explicitly.
func (s *Scanner) Scan(in io.Reader) (*Result, error) {
	r := NewReader(in, s.Dialect)

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			err = ErrMissingHeader
		}
		return nil, &ScanError{Op: OpSequentialScan, Err: err}
	}

	describers := newDescribers(len(header), s.Options)

	var rows int64
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ScanError{Op: OpSequentialScan, Row: rows + 1, Err: err}
		}
		if len(rec) != len(header) {
			return nil, &ScanError{Op: OpSequentialScan, Row: rows + 1, Err: ErrFieldCount}
		}

		for i, cell := range rec {
			describers[i].Process(cell)
		}
		rows++
	}

	s.Logger.Debug().Int64("rows", rows).Int("columns", len(header)).Msg("sequential scan done")

	return buildResult(header, describers, rows, s.Options), nil
}

// ScanFile scans the file at path: in parallel over row ranges when
// Workers is positive, sequentially otherwise. The parallel path needs a
// plain seekable file.
func (s *Scanner) ScanFile(path string) (*Result, error) {
	if s.Workers > 0 {
		return s.scanParallel(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return s.Scan(f)
}

func newDescribers(n int, opts describer.Options) []*describer.Describer {
	out := make([]*describer.Describer, n)
	for i := range out {
		out[i] = describer.New(opts)
	}
	return out
}

func buildResult(header []string, describers []*describer.Describer, rows int64, opts describer.Options) *Result {
	fields := make([]Field, len(header))

	for i, d := range describers {
		t, format := d.GuessType()

		fields[i] = Field{
			Name:   header[i],
			Type:   t.String(),
			Format: format,
		}

		if opts.Stats || opts.MergeableStats {
			fields[i].Stats = d.Stats()
		}
	}

	return &Result{RowCount: rows, Fields: fields}
}
