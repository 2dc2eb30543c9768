// Package reader opens CSV input streams, transparently decompressing
// gzip, bzip2 and zstd by extension or explicit type. Compressed streams
// and stdin are not seekable, so they can only feed the sequential scan
// path.
package reader

import (
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Decompress wraps r with a decoder for the given compression type. An
// empty type returns r unchanged.
func Decompress(t string, r io.Reader) (io.Reader, error) {
	switch t {
	case "":
		return r, nil

	case "gzip", "gz":
		return gzip.NewReader(r)

	case "bzip2", "bz2":
		return bzip2.NewReader(r), nil

	case "zstd", "zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	}

	return nil, fmt.Errorf("compression type not supported: %s", t)
}

// DetectCompression inspects the file extension for a known compression
// type. It returns an empty string for plain files.
func DetectCompression(name string) string {
	switch filepath.Ext(name) {
	case ".gzip", ".gz":
		return "gzip"
	case ".bzip2", ".bz2":
		return "bzip2"
	case ".zstd", ".zst":
		return "zstd"
	}

	return ""
}

// Reader encapsulates an input stream with optional decompression.
type Reader struct {
	Name        string
	Compression string

	reader io.Reader
	file   *os.File
}

// Read implements the io.Reader interface.
func (r *Reader) Read(buf []byte) (int, error) {
	return r.reader.Read(buf)
}

// Close implements the io.Closer interface.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Open a reader by name with optional compression. An empty compression
// type is detected from the extension; an empty name reads from stdin.
func Open(name, compression string) (*Reader, error) {
	if compression == "" {
		compression = DetectCompression(name)
	}

	r := &Reader{
		Name:        name,
		Compression: compression,
	}

	if name == "" {
		r.reader = os.Stdin
	} else {
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		r.file = file
		r.reader = file
	}

	dec, err := Decompress(compression, r.reader)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.reader = dec

	return r, nil
}
