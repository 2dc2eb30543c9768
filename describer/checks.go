package describer

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

var booleanValues = map[string]struct{}{
	"true":  {},
	"false": {},
	"t":     {},
	"f":     {},
	"True":  {},
	"False": {},
	"TRUE":  {},
	"FALSE": {},
}

// rfc2822 permits an optional leading day-of-week and either a numeric
// offset or an obsolete zone name.
var rfc2822Layouts = []string{
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"02 Jan 2006 15:04:05 MST",
}

func checkBoolean(s string) bool {
	_, ok := booleanValues[s]
	return ok
}

// hasLeadingZero reports whether a value starts with a redundant zero.
// This is often an indicator that the value is not a number but a
// zero-padded identifier.
func hasLeadingZero(s string) bool {
	return len(s) > 1 && s[0] == '0'
}

func checkInteger(s string) bool {
	if hasLeadingZero(s) {
		return false
	}

	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// parseNumber parses s as a 64-bit float, rejecting leading zeros that are
// not immediately followed by a decimal point and values longer than maxLen
// characters. Long decimal strings silently lose precision in a float64, so
// they stay textual.
func parseNumber(s string, maxLen int) (float64, bool) {
	if len(s) > maxLen {
		return 0, false
	}

	if hasLeadingZero(s) && s[1] != '.' {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

func checkJSONArray(s string) bool {
	t := strings.TrimSpace(s)
	return strings.HasPrefix(t, "[") && json.Valid([]byte(t))
}

func checkJSONObject(s string) bool {
	t := strings.TrimSpace(s)
	return strings.HasPrefix(t, "{") && json.Valid([]byte(t))
}

func checkTemporal(c *Candidate, s string) bool {
	switch c.Format {
	case FormatRFC2822:
		for _, layout := range rfc2822Layouts {
			if _, err := time.Parse(layout, s); err == nil {
				return true
			}
		}
		return false

	case FormatRFC3339:
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	}

	// time.Parse accepts fractional seconds whether or not the layout has
	// them, which would let one value satisfy both spellings of a layout.
	// Dates are exempt: their dots are literal separators.
	if c.Type != DateType && c.fraction != strings.Contains(s, ".") {
		return false
	}

	_, err := time.Parse(c.layout, s)
	return err == nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
