package services

import (
	"context"
	"strings"

	"apartment-map/geocode"
	"apartment-map/models"
	"apartment-map/utils"
)

// Geocoder resolves a free-text query to a point, reporting false when
// nothing acceptable matched.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (geocode.Point, bool)
}

// Enricher fills in missing coordinates on a collection of listings.
type Enricher struct {
	geocoder Geocoder
	cityHint string
	logger   *utils.Logger
}

// EnrichStats summarizes one enrichment pass.
type EnrichStats struct {
	Located    int // already carried usable coordinates
	Resolved   int // geocoded during this pass
	Unresolved int // had a query but nothing acceptable matched
	Skipped    int // no address and no label to build a query from
}

// NewEnricher creates an Enricher anchored to the given city.
func NewEnricher(geocoder Geocoder, cityHint string, logger *utils.Logger) *Enricher {
	return &Enricher{geocoder: geocoder, cityHint: cityHint, logger: logger}
}

// Enrich returns a copy of listings with coordinates filled in wherever a
// lookup succeeded. Rows that already carry usable coordinates are left
// untouched; rows with nothing to query are passed through unchanged.
func (e *Enricher) Enrich(ctx context.Context, listings []models.Listing) ([]models.Listing, EnrichStats) {
	out := make([]models.Listing, len(listings))
	var stats EnrichStats
	for i, l := range listings {
		out[i] = e.enrichOne(ctx, i+1, l, &stats)
	}
	e.logger.Info("[enrich] %d rows: %d already located, %d resolved, %d unresolved, %d skipped",
		len(out), stats.Located, stats.Resolved, stats.Unresolved, stats.Skipped)
	return out, stats
}

func (e *Enricher) enrichOne(ctx context.Context, row int, l models.Listing, stats *EnrichStats) models.Listing {
	if l.Located() {
		stats.Located++
		return l
	}

	query := GeocodeQuery(l, e.cityHint)
	if query == "" {
		stats.Skipped++
		e.logger.Debug("[enrich] Row %d: no address or label, skipping", row)
		return l
	}

	pt, ok := e.geocoder.Geocode(ctx, query)
	if !ok {
		// The street address may be unknown to the geocoder while the
		// neighbourhood still resolves. Only retry when the first query
		// was not already a neighbourhood lookup.
		if lab := strings.TrimSpace(l.Label); lab != "" && !strings.Contains(strings.ToLower(query), "quartier") {
			pt, ok = e.geocoder.Geocode(ctx, quarterQuery(lab, e.cityHint))
		}
	}
	if !ok {
		stats.Unresolved++
		e.logger.Warn("[enrich] Row %d: no match for %q", row, query)
		return l
	}

	lat, lon := pt.Lat, pt.Lon
	l.Latitude = &lat
	l.Longitude = &lon
	stats.Resolved++
	return l
}

// GeocodeQuery returns the lookup text for a listing: the street address
// when present, otherwise the neighbourhood label anchored to the
// configured city. Empty when the listing offers neither.
func GeocodeQuery(l models.Listing, cityHint string) string {
	if addr := strings.TrimSpace(l.Address); addr != "" {
		return addr
	}
	if lab := strings.TrimSpace(l.Label); lab != "" {
		return quarterQuery(lab, cityHint)
	}
	return ""
}

func quarterQuery(label, cityHint string) string {
	return "Quartier " + label + ", " + cityHint
}
