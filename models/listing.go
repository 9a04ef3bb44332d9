package models

import "math"

// Listing is one apartment record. Every field is optional and independent;
// the JSON tags follow the column names of the curated CSV, so a listing
// round-trips unchanged between the CSV, the exported JSON and the map page.
type Listing struct {
	Rent      *int     `json:"loyer"`
	Address   string   `json:"adresse"`
	Kitchen   string   `json:"cuisine_equipee"`
	Type      string   `json:"type"`
	Parking   string   `json:"parking"`
	Bedrooms  *int     `json:"chambres"`
	SurfaceM2 *float64 `json:"surface_m2"`
	URL       string   `json:"url"`
	Label     string   `json:"label"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Located reports whether the listing carries a usable coordinate pair.
// A listing with either coordinate missing or non-finite must never reach
// the map-marker path; it belongs in the unlocated list instead.
func (l Listing) Located() bool {
	return finite(l.Latitude) && finite(l.Longitude)
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// Criteria holds the filter controls. Zero values mean "no constraint":
// a nil MaxRent leaves rent unbounded, empty strings disable the
// type/parking matches.
type Criteria struct {
	MaxRent      *int
	PropertyType string
	Parking      string
}
