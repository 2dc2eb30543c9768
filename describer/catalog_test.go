package describer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFixed(t *testing.T) {
	a := Catalog()
	b := Catalog()

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
}

func TestCatalogScalarPositions(t *testing.T) {
	c := Catalog()

	assert.Equal(t, BooleanType, c[candBoolean].Type)
	assert.Equal(t, IntegerType, c[candInteger].Type)
	assert.Equal(t, NumberType, c[candNumber].Type)
	assert.Equal(t, ArrayType, c[candArray].Type)
	assert.Equal(t, ObjectType, c[candObject].Type)
}

func TestCatalogFamilySizes(t *testing.T) {
	counts := map[ValueType]int{}
	for _, c := range Catalog() {
		counts[c.Type]++
	}

	assert.Equal(t, 1, counts[BooleanType])
	assert.Equal(t, 1, counts[IntegerType])
	assert.Equal(t, 1, counts[NumberType])
	assert.Equal(t, 1, counts[ArrayType])
	assert.Equal(t, 1, counts[ObjectType])
	assert.Equal(t, len(datetimeLayouts), counts[DateTimeType])
	// rfc2822 and rfc3339 are candidates on top of the layout list.
	assert.Equal(t, len(datetimeTZLayouts)+2, counts[DateTimeTZType])
	assert.Equal(t, len(dateLayouts), counts[DateType])
	assert.Equal(t, len(timeLayouts), counts[TimeType])
}

// Two spellings of the same instant must never satisfy the same candidate,
// and one spelling must never satisfy two candidates of the same family,
// otherwise a temporal column could not resolve to a single survivor.
func TestCatalogTemporalDisjoint(t *testing.T) {
	values := []string{
		"2014-11-28 21:00:09",
		"2014-11-28 21:00:09.264",
		"2014-11-28 21:00",
		"2014-11-28 21:00:09+09:00",
		"2014-11-28 21:00:09+0900",
		"2014-11-28 21:00:09 +09:00",
		"2014-11-28 21:00:09 CET",
		"2014-11-28",
		"28 November 2014",
		"21:00",
	}

	for _, v := range values {
		matches := 0
		for i := range catalog {
			c := &catalog[i]
			if c.layout == "" && c.Format != FormatRFC2822 && c.Format != FormatRFC3339 {
				continue
			}
			if checkTemporal(c, v) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "value %q", v)
	}
}
