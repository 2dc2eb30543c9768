package reader

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCompression(t *testing.T) {
	tests := map[string]string{
		"data.csv":     "",
		"data.csv.gz":  "gzip",
		"data.gzip":    "gzip",
		"data.csv.bz2": "bzip2",
		"data.csv.zst": "zstd",
		"data.zstd":    "zstd",
		"data":         "",
	}

	for name, want := range tests {
		assert.Equal(t, want, DetectCompression(name), name)
	}
}

func TestDecompressUnsupported(t *testing.T) {
	_, err := Decompress("lz4", bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestOpenPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0644))

	r, err := Open(path, "")
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "", r.Compression)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv.gz")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("a,b\n1,2\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	r, err := Open(path, "")
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "gzip", r.Compression)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestOpenZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv.zst")

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write([]byte("a,b\n1,2\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	r, err := Open(path, "")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestOpenExplicitCompression(t *testing.T) {
	// Extension says nothing, the caller knows better.
	path := filepath.Join(t.TempDir(), "data.bin")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("a,b\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	r, err := Open(path, "gzip")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.csv"), "")
	assert.Error(t, err)
}
