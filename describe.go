// Package csvdescribe infers per-column types, formats and statistics for
// CSV files and assembles the results into tabular-data-resource records.
// The inference engine itself lives in the describer package; the CSV
// drivers, including the parallel scanner, live in describer/csv.
package csvdescribe

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/chop-dbhi/csv-describe/describer/csv"
	"github.com/chop-dbhi/csv-describe/reader"
)

// ErrFileNotExist is returned when an input file cannot be found.
var ErrFileNotExist = errors.New("file does not exist")

// Resource describes one CSV file: its row count, resolved field
// descriptors and dialect.
type Resource struct {
	Profile  string      `json:"profile"`
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	RowCount int64       `json:"row_count"`
	Schema   Schema      `json:"schema"`
	Dialect  DialectInfo `json:"dialect"`
}

type Schema struct {
	Fields []csv.Field `json:"fields"`
}

type DialectInfo struct {
	Delimiter string `json:"delimiter"`
	QuoteChar string `json:"quoteChar"`
}

// Datapackage bundles the resources of one describe run.
type Datapackage struct {
	Profile   string      `json:"profile"`
	Resources []*Resource `json:"resources"`
}

var sniffCandidates = []byte{',', '\t', '|', ';', ':'}

// SniffDelimiter guesses the delimiter by scanning the first ten lines of
// the stream for the first occurrence of a known delimiter byte. It
// defaults to a comma.
func SniffDelimiter(in *reader.Reader) (byte, error) {
	sc := bufio.NewScanner(in)

	var head strings.Builder
	for i := 0; i < 10 && sc.Scan(); i++ {
		head.WriteString(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}

	for _, b := range []byte(head.String()) {
		for _, cand := range sniffCandidates {
			if b == cand {
				return b, nil
			}
		}
	}

	return ',', nil
}

// DescribeFile scans one CSV file and returns its resource record.
func DescribeFile(name string, opts *Options) (*Resource, error) {
	opts = opts.withDefaults()

	if _, err := os.Stat(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotExist, name)
		}
		return nil, err
	}

	delimiter := opts.Delimiter
	if delimiter == 0 {
		in, err := reader.Open(name, opts.Compression)
		if err != nil {
			return nil, err
		}
		delimiter, err = SniffDelimiter(in)
		in.Close()
		if err != nil {
			return nil, err
		}
	}

	quote := opts.Quote
	if quote == 0 {
		quote = '"'
	}

	scanner := csv.Scanner{
		Dialect: csv.Dialect{Delimiter: delimiter, Quote: quote},
		Options: opts.describerOptions(),
		Workers: opts.Workers,
		Logger:  opts.Logger,
	}

	compression := opts.Compression
	if compression == "" {
		compression = reader.DetectCompression(name)
	}

	var (
		result *csv.Result
		err    error
	)

	// The parallel path seeks, so it needs the plain file on disk.
	if opts.Workers > 0 && compression == "" {
		result, err = scanner.ScanFile(name)
	} else {
		var in *reader.Reader
		in, err = reader.Open(name, opts.Compression)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		result, err = scanner.Scan(in)
	}
	if err != nil {
		return nil, err
	}

	opts.Logger.Info().Str("path", name).Int64("rows", result.RowCount).Msg("described file")

	_, base := path.Split(name)

	return &Resource{
		Profile:  "tabular-data-resource",
		Name:     strings.Split(base, ".")[0],
		Path:     name,
		RowCount: result.RowCount,
		Schema:   Schema{Fields: result.Fields},
		Dialect: DialectInfo{
			Delimiter: string(delimiter),
			QuoteChar: string(quote),
		},
	}, nil
}

// DescribeFiles scans several CSV files, up to four at a time (one at a
// time when per-file parallelism is on), and bundles the resources into a
// datapackage in input order.
func DescribeFiles(names []string, opts *Options) (*Datapackage, error) {
	opts = opts.withDefaults()

	limit := 4
	if opts.Workers > 0 {
		limit = 1
	}

	resources := make([]*Resource, len(names))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			r, err := DescribeFile(name, opts)
			if err != nil {
				return err
			}
			resources[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Datapackage{
		Profile:   "tabular-data-package",
		Resources: resources,
	}, nil
}
