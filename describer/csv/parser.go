// Package csv drives describers over CSV input: a dialect-aware record
// reader that tracks byte offsets, a random-access row index, and the
// sequential and parallel scanners built on them.
package csv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

var (
	ErrBareQuote         = errors.New("bare quote in field")
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
	ErrFieldCount        = errors.New("wrong number of fields")
	ErrMissingHeader     = errors.New("missing header row")
)

var bom = []byte{0xef, 0xbb, 0xbf}

// Dialect holds the resolved CSV dialect. The zero value means comma
// delimited with double-quote quoting.
type Dialect struct {
	Delimiter byte
	Quote     byte
}

func (d Dialect) withDefaults() Dialect {
	if d.Delimiter == 0 {
		d.Delimiter = ','
	}
	if d.Quote == 0 {
		d.Quote = '"'
	}
	return d
}

// Reader reads CSV records one at a time, tracking the byte offset of the
// underlying stream so row positions can be recorded and seeked to later.
// Quoted fields may contain delimiters, quotes (doubled) and newlines.
// Blank lines are skipped.
type Reader struct {
	br      *bufio.Reader
	dialect Dialect

	offset int64
	line   int64
	start  bool // stream begins at offset zero of a file (BOM possible)

	field []byte
}

// NewReader returns a Reader positioned at the start of a stream. A UTF-8
// byte order mark, if present, is skipped.
func NewReader(rd io.Reader, d Dialect) *Reader {
	r := NewReaderAt(rd, d, 0)
	r.start = true
	return r
}

// NewReaderAt returns a Reader for a stream already positioned at byte
// offset base of the source file, so that InputOffset reports absolute
// file offsets.
func NewReaderAt(rd io.Reader, d Dialect, base int64) *Reader {
	return &Reader{
		br:      bufio.NewReader(rd),
		dialect: d.withDefaults(),
		offset:  base,
	}
}

// InputOffset returns the byte offset of the next unread byte.
func (r *Reader) InputOffset() int64 {
	return r.offset
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int64 {
	return r.line
}

func (r *Reader) readByte() (byte, error) {
	b, err := r.br.ReadByte()
	if err == nil {
		r.offset++
	}
	return b, err
}

func (r *Reader) peekByte() (byte, bool) {
	p, err := r.br.Peek(1)
	if err != nil {
		return 0, false
	}
	return p[0], true
}

func (r *Reader) discardByte() {
	if _, err := r.br.ReadByte(); err == nil {
		r.offset++
	}
}

func (r *Reader) parseErr(err error) error {
	return fmt.Errorf("line %d: %w", r.line+1, err)
}

// Read returns the next record. It returns io.EOF when no records remain.
func (r *Reader) Read() ([]string, error) {
	if r.start {
		r.start = false
		if p, err := r.br.Peek(len(bom)); err == nil && p[0] == bom[0] && p[1] == bom[1] && p[2] == bom[2] {
			for range bom {
				r.discardByte()
			}
		}
	}

	var (
		rec        []string
		inQuotes   bool
		afterQuote bool
		started    bool
	)

	field := r.field[:0]

	endField := func() {
		rec = append(rec, string(field))
		field = field[:0]
		afterQuote = false
	}

	for {
		b, err := r.readByte()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			if inQuotes {
				return nil, r.parseErr(ErrUnterminatedQuote)
			}
			if !started && len(rec) == 0 && len(field) == 0 {
				return nil, io.EOF
			}
			endField()
			r.field = field
			return rec, nil
		}

		if inQuotes {
			if b == r.dialect.Quote {
				if nb, ok := r.peekByte(); ok && nb == r.dialect.Quote {
					r.discardByte()
					field = append(field, b)
					continue
				}
				inQuotes = false
				afterQuote = true
				continue
			}
			if b == '\n' {
				r.line++
			}
			field = append(field, b)
			continue
		}

		switch b {
		case r.dialect.Delimiter:
			started = true
			endField()

		case '\n', '\r':
			// Swallow the LF of a CRLF pair; a lone CR also ends
			// the record.
			if b == '\r' {
				if nb, ok := r.peekByte(); ok && nb == '\n' {
					r.discardByte()
				}
			}
			r.line++
			if !started && len(rec) == 0 && len(field) == 0 {
				continue // blank line
			}
			endField()
			r.field = field
			return rec, nil

		case r.dialect.Quote:
			if len(field) != 0 || afterQuote {
				return nil, r.parseErr(ErrBareQuote)
			}
			started = true
			inQuotes = true

		default:
			if afterQuote {
				return nil, r.parseErr(ErrBareQuote)
			}
			started = true
			field = append(field, b)
		}
	}
}
