package csv

import (
	"io"
	"os"

	"github.com/sourcegraph/conc/pool"

	"github.com/chop-dbhi/csv-describe/describer"
)

// scanParallel partitions the file into contiguous row ranges using a
// pre-built row index, scans each range on its own worker with its own
// file handle and describer set, and folds the partial describers together
// as they arrive. Merge is commutative and associative, so arrival order
// does not matter. Any worker error is fatal to the whole scan.
//
// Statistics are forced into mergeable mode: quantiles and exact frequency
// ranking do not compose across partitions.
func (s *Scanner) scanParallel(path string) (*Result, error) {
	opts := s.Options
	if opts.Stats {
		opts.MergeableStats = true
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	header, index, err := BuildIndex(NewReader(f, s.Dialect))
	f.Close()
	if err != nil {
		return nil, err
	}

	rows := index.Rows()

	s.Logger.Debug().
		Int64("rows", rows).
		Int("columns", len(header)).
		Int("workers", s.Workers).
		Msg("index built")

	if rows == 0 {
		return buildResult(header, newDescribers(len(header), opts), 0, opts), nil
	}

	chunk := rows / int64(s.Workers)
	if chunk < 1 {
		chunk = 1
	}

	// One message per chunk, so the channel never blocks a worker.
	chunks := int((rows + chunk - 1) / chunk)
	results := make(chan []*describer.Describer, chunks)

	p := pool.New().WithErrors().WithMaxGoroutines(s.Workers)

	for start := int64(0); start < rows; start += chunk {
		start := start
		n := chunk
		if start+n > rows {
			n = rows - start
		}
		offset := index.Positions[start]

		p.Go(func() error {
			ds, err := s.scanChunk(path, offset, n, len(header), opts)
			if err != nil {
				return err
			}
			results <- ds
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	close(results)

	var acc []*describer.Describer
	for ds := range results {
		if acc == nil {
			acc = ds
			continue
		}
		for i := range acc {
			if err := acc[i].Merge(ds[i]); err != nil {
				return nil, &ScanError{Op: OpChunkScan, Err: err}
			}
		}
	}

	// The index already counted the rows exactly; summing per-chunk
	// counts here would invite boundary drift.
	return buildResult(header, acc, rows, opts), nil
}

func (s *Scanner) scanChunk(path string, offset, rows int64, columns int, opts describer.Options) ([]*describer.Describer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ScanError{Op: OpChunkScan, Err: err}
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, &ScanError{Op: OpChunkScan, Err: err}
	}

	r := NewReaderAt(f, s.Dialect, offset)
	describers := newDescribers(columns, opts)

	for i := int64(0); i < rows; i++ {
		rec, err := r.Read()
		if err != nil {
			return nil, &ScanError{Op: OpChunkScan, Row: i + 1, Err: err}
		}
		if len(rec) != columns {
			return nil, &ScanError{Op: OpChunkScan, Row: i + 1, Err: ErrFieldCount}
		}

		for j, cell := range rec {
			describers[j].Process(cell)
		}
	}

	return describers, nil
}
