package describer

import "strings"

// Formats for the two fixed timezone-aware candidates. All other temporal
// candidates use their Go reference-time layout as the format spec.
const (
	FormatRFC2822 = "rfc2822"
	FormatRFC3339 = "rfc3339"
)

// Candidate is a (type, format) hypothesis not yet disproven for a column.
type Candidate struct {
	Type   ValueType
	Format string

	// layout is the reference-time layout used for parsing. It equals
	// Format except for the rfc2822/rfc3339 tags, which parse against
	// the standards rather than a single layout.
	layout string

	// fraction marks layouts that carry fractional seconds. time.Parse
	// tolerates a fraction after the seconds whether or not the layout
	// declares one, so without this flag a value with a fraction would
	// satisfy both the plain and the fraction variants of a layout and
	// the column could never resolve to a single candidate.
	fraction bool
}

// Positions of the non-temporal candidates in the catalog.
const (
	candBoolean = iota
	candInteger
	candNumber
	candArray
	candObject
)

var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 3:04:05 PM",
	"2006-01-02 3:04 PM",
	"2006 Jan 02 15:04:05",
	"January 02 2006 15:04:05",
	"January 02 2006 3:04:05 PM",
	"January 02 2006 3:04 PM",
	"2006 Jan 02 at 3:04 PM",
	"02 January 2006 15:04:05",
	"02 January 2006 15:04",
	"02 January 2006 15:04:05.999999999",
	"02 January 2006 3:04:05 PM",
	"02 January 2006 3:04 PM",
	"January 02 2006 15:04",
	"01/02/06 15:04:05",
	"01/02/06 15:04",
	"01/02/06 15:04:05.999999999",
	"01/02/06 3:04:05 PM",
	"01/02/06 3:04 PM",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006 15:04:05.999999999",
	"01/02/2006 3:04:05 PM",
	"01/02/2006 3:04 PM",
	"02/01/06 15:04:05",
	"02/01/06 15:04",
	"02/01/06 15:04:05.999999999",
	"02/01/06 3:04:05 PM",
	"02/01/06 3:04 PM",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05.999999999",
	"02/01/2006 3:04:05 PM",
	"02/01/2006 3:04 PM",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02 15:04:05.999999999",
	"2006/01/02 3:04:05 PM",
	"2006/01/02 3:04 PM",
	"060102 15:04:05",
}

// Offset spellings are separate candidates since a layout can only parse
// one of them. A column that mixes "+09:00" and "+0900" resolves to string.
var datetimeTZLayouts = []string{
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-0700",
	"2006-01-02 15:04:05.999999999 -07:00",
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05.999999999 MST",
	"2006-01-02 15:04-07:00",
	"2006-01-02 15:04-0700",
	"2006-01-02 15:04 -07:00",
	"2006-01-02 15:04 -0700",
	"2006-01-02 15:04 MST",
	"2006/01/02 15:04:05 -07:00",
	"2006/01/02 15:04:05 -0700",
	"2006/01/02 15:04:05 MST",
	"01/02/2006 15:04:05 -07:00",
	"01/02/2006 15:04:05 -0700",
	"01/02/2006 15:04:05 MST",
	"02/01/2006 15:04:05 -07:00",
	"02/01/2006 15:04:05 -0700",
	"02/01/2006 15:04:05 MST",
	"02 January 2006 15:04:05 -07:00",
	"02 January 2006 15:04:05 -0700",
	"02 January 2006 15:04:05 MST",
	"January 02 2006 15:04:05 -07:00",
	"January 02 2006 15:04:05 -0700",
	"January 02 2006 15:04:05 MST",
	"January 02 2006 15:04 -07:00",
	"January 02 2006 15:04 MST",
	"January 02 2006 3:04:05 PM -07:00",
	"January 02 2006 3:04:05 PM MST",
	"January 02 2006 3:04 PM -07:00",
	"January 02 2006 3:04 PM MST",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-Jan-02",
	"January 02 06",
	"January 02 2006",
	"02 January 06",
	"02 January 2006",
	"01/02/06",
	"01/02/2006",
	"02/01/06",
	"02/01/2006",
	"2006/01/02",
	"01.02.2006",
	"2006.01.02",
}

var timeLayouts = []string{
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
}

var catalog = buildCatalog()

func buildCatalog() []Candidate {
	out := []Candidate{
		{Type: BooleanType, Format: "boolean"},
		{Type: IntegerType, Format: "integer"},
		{Type: NumberType, Format: "number"},
		{Type: ArrayType, Format: "array"},
		{Type: ObjectType, Format: "object"},
		{Type: DateTimeTZType, Format: FormatRFC2822},
		{Type: DateTimeTZType, Format: FormatRFC3339},
	}

	for _, layout := range datetimeLayouts {
		out = append(out, temporal(DateTimeType, layout))
	}

	for _, layout := range datetimeTZLayouts {
		out = append(out, temporal(DateTimeTZType, layout))
	}

	for _, layout := range dateLayouts {
		out = append(out, temporal(DateType, layout))
	}

	for _, layout := range timeLayouts {
		out = append(out, temporal(TimeType, layout))
	}

	return out
}

func temporal(t ValueType, layout string) Candidate {
	return Candidate{
		Type:     t,
		Format:   layout,
		layout:   layout,
		fraction: strings.Contains(layout, ".9"),
	}
}

// Catalog returns the full ordered list of candidates the engine can
// conclude. The order is fixed and identical for every describer; callers
// must not modify the returned slice.
func Catalog() []Candidate {
	return catalog
}
