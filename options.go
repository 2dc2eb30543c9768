package csvdescribe

import (
	"github.com/rs/zerolog"

	"github.com/chop-dbhi/csv-describe/describer"
)

// Options configure a describe request.
type Options struct {
	// CSV dialect. A zero delimiter is sniffed from the file; a zero
	// quote means double quote.
	Delimiter byte
	Quote     byte

	// Stats enables full statistics; MergeableStats restricts them to
	// the mergeable subset. Parallel execution implies mergeable stats.
	Stats          bool
	MergeableStats bool

	// ForceString skips type inference entirely.
	ForceString bool

	// Workers selects parallel scanning when positive. Parallel scans
	// need plain, uncompressed files.
	Workers int

	// Compression type of the input ("gzip", "bzip2", "zstd"). Detected
	// from the extension when empty.
	Compression string

	// Logger for progress events. The zero logger is disabled.
	Logger zerolog.Logger
}

func (o *Options) withDefaults() *Options {
	var out Options
	if o != nil {
		out = *o
	}
	return &out
}

func (o *Options) describerOptions() describer.Options {
	return describer.Options{
		Stats:          o.Stats,
		MergeableStats: o.MergeableStats || (o.Workers > 0 && o.Stats),
		ForceString:    o.ForceString,
	}
}
