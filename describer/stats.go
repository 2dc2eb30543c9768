package describer

import (
	"math"
	"sort"

	"github.com/axiomhq/hyperloglog"
	"github.com/influxdata/tdigest"
)

// ValueCount is one entry of the most-frequent-values ranking.
type ValueCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Stats is the rendered statistics record for one column. Which fields are
// populated depends on the statistics mode: mergeable mode omits everything
// that cannot be composed across partitions (quantiles, variance, exact
// frequency ranking).
type Stats struct {
	MinLen     int64  `json:"min_len"`
	MaxLen     int64  `json:"max_len"`
	MinStr     string `json:"min_str"`
	MaxStr     string `json:"max_str"`
	Count      int64  `json:"count"`
	EmptyCount int64  `json:"empty_count"`

	EstimateUnique uint64       `json:"estimate_unique"`
	ExactUnique    *int64       `json:"exact_unique,omitempty"`
	Top20          []ValueCount `json:"top_20,omitempty"`

	Sum       *float64 `json:"sum,omitempty"`
	Mean      *float64 `json:"mean,omitempty"`
	Variance  *float64 `json:"variance,omitempty"`
	Stddev    *float64 `json:"stddev,omitempty"`
	MinNumber *float64 `json:"min_number,omitempty"`
	MaxNumber *float64 `json:"max_number,omitempty"`

	Median        *float64  `json:"median,omitempty"`
	LowerQuartile *float64  `json:"lower_quartile,omitempty"`
	UpperQuartile *float64  `json:"upper_quartile,omitempty"`
	Deciles       []float64 `json:"deciles,omitempty"`
	Centiles      []float64 `json:"centiles,omitempty"`
}

// fieldStats accumulates the raw statistics state for one column.
type fieldStats struct {
	mergeable   bool
	maxDistinct int
	maxValueLen int

	lenSeen bool
	minLen  int64
	maxLen  int64

	strSeen bool
	minStr  string
	maxStr  string

	unique *hyperloglog.Sketch

	freq         map[string]int64
	freqDisabled bool

	numCount int64
	sum      float64
	numSeen  bool
	minNum   float64
	maxNum   float64

	// Online mean/variance accumulator (Welford). Full mode only.
	mean float64
	m2   float64

	digest *tdigest.TDigest
}

func newFieldStats(opts Options) *fieldStats {
	s := &fieldStats{
		mergeable:   opts.MergeableStats,
		maxDistinct: opts.MaxDistinct,
		maxValueLen: opts.MaxValueLength,
		unique:      hyperloglog.New14(),
		freq:        make(map[string]int64),
	}

	if !s.mergeable {
		s.digest = tdigest.New()
	}

	return s
}

func (s *fieldStats) observe(value string) {
	n := int64(len(value))
	if !s.lenSeen || n < s.minLen {
		s.minLen = n
	}
	if !s.lenSeen || n > s.maxLen {
		s.maxLen = n
	}
	s.lenSeen = true

	// Byte-wise lexicographic extremes.
	if !s.strSeen || value < s.minStr {
		s.minStr = value
	}
	if !s.strSeen || value > s.maxStr {
		s.maxStr = value
	}
	s.strSeen = true

	s.unique.Insert([]byte(value))

	if s.freqDisabled {
		return
	}

	// Long values and high-cardinality columns would grow the table
	// without bound, so tracking shuts off permanently once either cap
	// is crossed.
	if len(value) > s.maxValueLen {
		s.disableFreq()
		return
	}

	s.freq[value]++
	if len(s.freq) > s.maxDistinct {
		s.disableFreq()
	}
}

func (s *fieldStats) disableFreq() {
	s.freqDisabled = true
	s.freq = nil
}

func (s *fieldStats) observeNumber(v float64) {
	s.numCount++
	s.sum += v

	if !s.numSeen || v < s.minNum {
		s.minNum = v
	}
	if !s.numSeen || v > s.maxNum {
		s.maxNum = v
	}
	s.numSeen = true

	if s.mergeable {
		return
	}

	delta := v - s.mean
	s.mean += delta / float64(s.numCount)
	s.m2 += delta * (v - s.mean)

	s.digest.Add(v, 1)
}

func (s *fieldStats) clearQuantiles() {
	if s.digest != nil {
		s.digest = tdigest.New()
	}
}

func (s *fieldStats) merge(other *fieldStats) error {
	if other == nil || !s.mergeable || !other.mergeable {
		return ErrMergeOptions
	}

	if other.lenSeen {
		if !s.lenSeen || other.minLen < s.minLen {
			s.minLen = other.minLen
		}
		if !s.lenSeen || other.maxLen > s.maxLen {
			s.maxLen = other.maxLen
		}
		s.lenSeen = true
	}

	// The union of the two extremes still bounds the combined extremes.
	if other.strSeen {
		if !s.strSeen || other.minStr < s.minStr {
			s.minStr = other.minStr
		}
		if !s.strSeen || other.maxStr > s.maxStr {
			s.maxStr = other.maxStr
		}
		s.strSeen = true
	}

	if err := s.unique.Merge(other.unique); err != nil {
		return err
	}

	if other.freqDisabled {
		s.disableFreq()
	} else if !s.freqDisabled {
		for v, n := range other.freq {
			s.freq[v] += n
		}
		if len(s.freq) > s.maxDistinct {
			s.disableFreq()
		}
	}

	s.sum += other.sum
	s.numCount += other.numCount

	if other.numSeen {
		if !s.numSeen || other.minNum < s.minNum {
			s.minNum = other.minNum
		}
		if !s.numSeen || other.maxNum > s.maxNum {
			s.maxNum = other.maxNum
		}
		s.numSeen = true
	}

	return nil
}

func (s *fieldStats) render(count, emptyCount int64, numeric bool) *Stats {
	out := &Stats{
		MinLen:         s.minLen,
		MaxLen:         s.maxLen,
		MinStr:         s.minStr,
		MaxStr:         s.maxStr,
		Count:          count,
		EmptyCount:     emptyCount,
		EstimateUnique: s.unique.Estimate(),
	}

	if !s.mergeable && !s.freqDisabled {
		n := int64(len(s.freq))
		out.ExactUnique = &n
		out.Top20 = s.topValues(20)
	}

	if s.numSeen {
		out.MinNumber = f64(s.minNum)
		out.MaxNumber = f64(s.maxNum)
	}

	if numeric && s.numCount > 0 {
		out.Sum = f64(s.sum)
		out.Mean = f64(s.sum / float64(s.numCount))

		if !s.mergeable {
			variance := s.m2 / float64(s.numCount)
			out.Variance = f64(variance)
			out.Stddev = f64(math.Sqrt(variance))

			out.Median = f64(s.digest.Quantile(0.5))
			out.LowerQuartile = f64(s.digest.Quantile(0.25))
			out.UpperQuartile = f64(s.digest.Quantile(0.75))
			out.Deciles = s.quantiles(10)
			out.Centiles = s.quantiles(100)
		}
	}

	return out
}

// quantiles returns the n-1 interior n-quantiles of the numeric stream.
func (s *fieldStats) quantiles(n int) []float64 {
	out := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		out = append(out, s.digest.Quantile(float64(i)/float64(n)))
	}
	return out
}

func (s *fieldStats) topValues(n int) []ValueCount {
	all := make([]ValueCount, 0, len(s.freq))
	for v, c := range s.freq {
		all = append(all, ValueCount{Value: v, Count: c})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Value < all[j].Value
	})

	if len(all) > n {
		all = all[:n]
	}
	return all
}

func f64(v float64) *float64 {
	return &v
}
