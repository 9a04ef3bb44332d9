package services

import (
	"strings"

	"apartment-map/models"
)

// Filter splits listings into the rows that satisfy every active
// criterion and the rows that cannot be placed on the map. Both results
// keep the input order and the input slice is never mutated.
//
// A listing without usable coordinates goes to the unlocated list no
// matter what the criteria say: a failed geocode should keep a candidate
// in sight, not silently hide it. Located listings must pass every
// active criterion to stay visible; the ones that fail are dropped from
// both results.
func Filter(listings []models.Listing, c models.Criteria) (visible, unlocated []models.Listing) {
	for _, l := range listings {
		if !l.Located() {
			unlocated = append(unlocated, l)
			continue
		}
		if matches(l, c) {
			visible = append(visible, l)
		}
	}
	return visible, unlocated
}

func matches(l models.Listing, c models.Criteria) bool {
	// Absent rent passes any bound: an unknown price is not a reason to
	// hide a listing.
	if c.MaxRent != nil && l.Rent != nil && *l.Rent > *c.MaxRent {
		return false
	}
	if !fieldMatches(c.PropertyType, l.Type) {
		return false
	}
	if !fieldMatches(c.Parking, l.Parking) {
		return false
	}
	return true
}

// fieldMatches applies one text criterion: empty matches everything,
// anything else requires a case-insensitive exact match. A listing with
// the field absent therefore fails every non-empty criterion.
func fieldMatches(want, have string) bool {
	if want == "" {
		return true
	}
	return strings.EqualFold(want, have)
}
