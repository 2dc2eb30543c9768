// Package describer infers the most specific (type, format) pair for a
// column of text values and accumulates descriptive statistics over them.
//
// A Describer starts with the full candidate catalog and eliminates
// candidates as values stream through it; the set only ever shrinks. Two
// describers built with the same mergeable options can be combined with
// Merge, which intersects their candidate sets and folds their statistics,
// so independently scanned partitions of a file reach the same type
// conclusion as a single sequential pass.
package describer

import (
	"errors"

	"github.com/RoaringBitmap/roaring/v2"
)

// Default caps for the statistics model. Tuned empirically; changing them
// changes the output shape for existing files.
const (
	DefaultMaxDistinct     = 200
	DefaultMaxValueLength  = 100
	DefaultMaxNumberLength = 17
)

// ErrMergeOptions is returned by Merge when the two describers were not
// built with identical, mergeable options.
var ErrMergeOptions = errors.New("describers are not mergeable")

// Options configure a Describer. The zero value disables statistics and
// applies the default caps.
type Options struct {
	// Stats enables the statistics model.
	Stats bool

	// MergeableStats restricts the statistics model to the subset that is
	// composable under Merge: no quantiles, no exact frequency ranking.
	MergeableStats bool

	// ForceString skips inference entirely; every value resolves to string.
	ForceString bool

	// Caps for the statistics model. Zero means the default.
	MaxDistinct     int
	MaxValueLength  int
	MaxNumberLength int
}

func (o Options) withDefaults() Options {
	if o.MaxDistinct == 0 {
		o.MaxDistinct = DefaultMaxDistinct
	}
	if o.MaxValueLength == 0 {
		o.MaxValueLength = DefaultMaxValueLength
	}
	if o.MaxNumberLength == 0 {
		o.MaxNumberLength = DefaultMaxNumberLength
	}
	return o
}

// Describer holds the in-progress knowledge about a single column. It is
// not safe for concurrent use; each goroutine owns its describers and joins
// them afterwards with Merge.
type Describer struct {
	opts Options

	count      int64
	emptyCount int64

	candidates *roaring.Bitmap
	toDelete   []uint32

	stats *fieldStats
}

// New creates a Describer with the full candidate catalog, or an empty one
// if ForceString is set.
func New(opts Options) *Describer {
	opts = opts.withDefaults()

	d := &Describer{
		opts:       opts,
		candidates: roaring.New(),
	}

	if !opts.ForceString {
		d.candidates.AddRange(0, uint64(len(catalog)))
	}

	if opts.Stats || opts.MergeableStats {
		d.stats = newFieldStats(opts)
	}

	return d
}

// Count returns the number of non-empty values processed.
func (d *Describer) Count() int64 { return d.count }

// CandidateCount returns the number of surviving candidates.
func (d *Describer) CandidateCount() uint64 { return d.candidates.GetCardinality() }

// EmptyCount returns the number of empty values processed.
func (d *Describer) EmptyCount() int64 { return d.emptyCount }

// Process feeds one cell value to the describer. Empty values are counted
// separately and eliminate nothing.
func (d *Describer) Process(value string) {
	if value == "" {
		d.emptyCount++
		return
	}

	d.count++

	if d.stats != nil {
		d.stats.observe(value)
	}

	num, isNum := parseNumber(value, d.opts.MaxNumberLength)
	if d.stats != nil {
		if isNum {
			d.stats.observeNumber(num)
		} else {
			// The column is no longer purely numeric, so any
			// accumulated quantile state is meaningless.
			d.stats.clearQuantiles()
		}
	}

	ascii := isASCII(value)

	it := d.candidates.Iterator()
	for it.HasNext() {
		i := it.Next()
		c := &catalog[i]

		var ok bool
		switch c.Type {
		case BooleanType:
			ok = checkBoolean(value)
		case IntegerType:
			ok = checkInteger(value)
		case NumberType:
			ok = isNum
		case ArrayType:
			ok = checkJSONArray(value)
		case ObjectType:
			ok = checkJSONObject(value)
		default:
			ok = ascii && checkTemporal(c, value)
		}

		if !ok {
			d.toDelete = append(d.toDelete, i)
		}
	}

	// Removals are deferred so that removing a candidate cannot skip the
	// checks for candidates after it.
	for _, i := range d.toDelete {
		d.candidates.Remove(i)
	}
	d.toDelete = d.toDelete[:0]
}

// GuessType resolves the surviving candidates to a single (type, format)
// conclusion. It never mutates state and may be called at any point of the
// stream.
//
// A sole surviving timezone-aware candidate is reported as plain datetime.
// That reading is surprising but long-established output behavior, so it is
// preserved here deliberately.
func (d *Describer) GuessType() (ValueType, string) {
	if d.candidates.Contains(candBoolean) {
		return BooleanType, "boolean"
	}

	if d.candidates.Contains(candInteger) {
		return IntegerType, "integer"
	}

	if d.candidates.Contains(candNumber) {
		return NumberType, "number"
	}

	if d.candidates.GetCardinality() == 1 {
		c := &catalog[d.candidates.Minimum()]

		switch c.Type {
		case DateTimeTZType, DateTimeType:
			return DateTimeType, c.Format
		case DateType:
			return DateType, c.Format
		case TimeType:
			return TimeType, c.Format
		case ObjectType:
			return ObjectType, "object"
		case ArrayType:
			return ArrayType, "array"
		}
	}

	return StringType, "string"
}

// Merge folds other into d. Both describers must describe the same column
// and be built with identical options; statistics, when enabled, must be in
// mergeable mode. other must not be used afterwards.
//
// Merge intersects the candidate sets: a candidate is plausible for the
// whole file only if every partition kept it. Intersection is associative
// and commutative, so partial results may arrive in any order.
func (d *Describer) Merge(other *Describer) error {
	if other == nil || d.opts != other.opts {
		return ErrMergeOptions
	}

	if (d.opts.Stats || d.opts.MergeableStats) && !d.opts.MergeableStats {
		return ErrMergeOptions
	}

	d.count += other.count
	d.emptyCount += other.emptyCount
	d.candidates.And(other.candidates)

	if d.stats != nil {
		if err := d.stats.merge(other.stats); err != nil {
			return err
		}
	}

	return nil
}

// Stats renders the statistics record, or nil if statistics were not
// requested. The numeric aggregates are included only when the resolved
// type is numeric.
func (d *Describer) Stats() *Stats {
	if d.stats == nil {
		return nil
	}

	t, _ := d.GuessType()
	numeric := t == IntegerType || t == NumberType

	return d.stats.render(d.count, d.emptyCount, numeric)
}
