package geocode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a geographic coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Viewbox is the search rectangle handed to Nominatim, expressed as
// "left,top,right,bottom" in degrees (lon_min, lat_max, lon_max, lat_min).
type Viewbox struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// ParseViewbox parses the "left,top,right,bottom" form.
func ParseViewbox(s string) (Viewbox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Viewbox{}, fmt.Errorf("geocode: viewbox %q: want 4 comma-separated values", s)
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Viewbox{}, fmt.Errorf("geocode: viewbox %q: %w", s, err)
		}
		vals[i] = v
	}

	return Viewbox{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, nil
}

// Center returns the midpoint of the box, used for the distance sanity check.
func (v Viewbox) Center() Point {
	return Point{
		Lat: (v.Top + v.Bottom) / 2,
		Lon: (v.Left + v.Right) / 2,
	}
}

// String renders the box back into the query-parameter form.
func (v Viewbox) String() string {
	return strings.Join([]string{
		strconv.FormatFloat(v.Left, 'f', -1, 64),
		strconv.FormatFloat(v.Top, 'f', -1, 64),
		strconv.FormatFloat(v.Right, 'f', -1, 64),
		strconv.FormatFloat(v.Bottom, 'f', -1, 64),
	}, ",")
}

// haversineKm returns the great-circle distance between two points.
func haversineKm(a, b Point) float64 {
	const earthRadiusKm = 6371.0

	p1 := a.Lat * math.Pi / 180
	p2 := b.Lat * math.Pi / 180
	dphi := (b.Lat - a.Lat) * math.Pi / 180
	dlambda := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dphi/2)*math.Sin(dphi/2) +
		math.Cos(p1)*math.Cos(p2)*math.Sin(dlambda/2)*math.Sin(dlambda/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
