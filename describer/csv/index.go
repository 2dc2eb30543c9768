package csv

import "io"

// Index is a random-access row index: the byte offset of every data row in
// file order, plus a final sentinel offset marking the end of the data. It
// is built with the same dialect that will be used for scanning, otherwise
// the recorded offsets would not land on row boundaries.
type Index struct {
	Positions []int64
}

// Rows returns the number of data rows covered by the index.
func (ix *Index) Rows() int64 {
	if len(ix.Positions) == 0 {
		return 0
	}
	return int64(len(ix.Positions)) - 1
}

// BuildIndex consumes r, which must be positioned at the header row, and
// records the starting offset of every subsequent row. The header fields
// are returned alongside the index.
func BuildIndex(r *Reader) ([]string, *Index, error) {
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			err = ErrMissingHeader
		}
		return nil, nil, &ScanError{Op: OpIndexBuild, Err: err}
	}

	ix := &Index{}

	for {
		start := r.InputOffset()

		rec, err := r.Read()
		if err == io.EOF {
			ix.Positions = append(ix.Positions, r.InputOffset())
			return header, ix, nil
		}
		if err != nil {
			return nil, nil, &ScanError{Op: OpIndexBuild, Row: int64(len(ix.Positions)) + 1, Err: err}
		}
		if len(rec) != len(header) {
			return nil, nil, &ScanError{Op: OpIndexBuild, Row: int64(len(ix.Positions)) + 1, Err: ErrFieldCount}
		}

		ix.Positions = append(ix.Positions, start)
	}
}
