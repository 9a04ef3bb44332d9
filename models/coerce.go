package models

import (
	"math"
	"strconv"
	"strings"
)

// The curation sheet is edited by hand in a French locale, so numbers show
// up as "43,6" and integers occasionally as "800.0". Anything that cannot
// be coerced counts as absent, never as zero.

// OptionalFloat parses a decimal with either separator. Blank, unparseable
// or non-finite input yields nil: "nan" in a coordinate cell is a data
// hole, and NaN would poison the JSON encoder downstream.
func OptionalFloat(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// OptionalInt parses an integer, accepting decimal notation and truncating it.
// Blank or unparseable input yields nil.
func OptionalInt(s string) *int {
	f := OptionalFloat(s)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
