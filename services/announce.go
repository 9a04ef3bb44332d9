package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"apartment-map/models"
	"apartment-map/utils"
)

var (
	// priceRe captures amounts like "980 €" or "1 200 €" (plain, thin and
	// non-breaking spaces all appear in the wild).
	priceRe = regexp.MustCompile(`(\d[\d\s\x{00a0}\x{202f}]{2,})\s*€`)
	// surfaceRe captures "62 m²" and "62,5 m²"
	surfaceRe  = regexp.MustCompile(`(\d+[.,]?\d*)\s*m²`)
	bedroomsRe = regexp.MustCompile(`(\d+)\s*chambre`)
	roomsRe    = regexp.MustCompile(`(\d+)\s*pi[eè]ce`)
)

var (
	kitchenPositives = []*regexp.Regexp{
		regexp.MustCompile(`\bcuisine\s+(am[eé]nag[eé]e\s+et\s+)?[eé]quip[eé]e\b`),
		regexp.MustCompile(`\bcuisine\s+semi[-\s]*[eé]quip[eé]e\b`),
		regexp.MustCompile(`\bkitchenette\s+[eé]quip[eé]e\b`),
	}
	// "cuisine aménagée" alone is a weak signal: storage and worktop, not
	// appliances. Counted as yes only when nothing explicit decided.
	kitchenWeak      = regexp.MustCompile(`\bcuisine\s+am[eé]nag[eé]e\b`)
	kitchenNegatives = []*regexp.Regexp{
		regexp.MustCompile(`\bcuisine\s+non\s+[eé]quip[eé]e\b`),
		regexp.MustCompile(`\bsans\s+cuisine\b`),
		regexp.MustCompile(`\bpas\s+de\s+cuisine\b`),
		regexp.MustCompile(`\bcuisine\s+vide\b`),
	}

	parkingPositives = []*regexp.Regexp{
		regexp.MustCompile(`\b(place\s+de\s+)?parking\b`),
		regexp.MustCompile(`\bstationnement\b`),
		regexp.MustCompile(`\bgarage\b`),
		regexp.MustCompile(`\bbox\b`),
		regexp.MustCompile(`\bparking\s+priv[eé]`),
		regexp.MustCompile(`\bresidence\s+avec\s+parking\b`),
	}
	parkingNegatives = []*regexp.Regexp{
		regexp.MustCompile(`\bpas\s+de\s+parking\b`),
		regexp.MustCompile(`\bsans\s+parking\b`),
		regexp.MustCompile(`\bstationnement\s+dans\s+la\s+rue\b`),
		regexp.MustCompile(`\bstationnement\s+payant\b`),
	}
)

// Extraction is the set of listing fields recovered from one announce
// page. Pointer fields are nil and string fields empty when the page gave
// no usable signal, leaving the caller to fill the gaps.
type Extraction struct {
	Rent      *int
	Address   string
	Kitchen   string
	Type      string
	Parking   string
	Bedrooms  *int
	Rooms     *int
	SurfaceM2 *float64
}

// Listing assembles a storable listing from the extraction plus the
// caller-provided URL and label. Coordinates start empty; the geocoding
// pass fills them in.
func (x Extraction) Listing(url, label string) models.Listing {
	return models.Listing{
		Rent:      x.Rent,
		Address:   x.Address,
		Kitchen:   x.Kitchen,
		Type:      x.Type,
		Parking:   x.Parking,
		Bedrooms:  x.Bedrooms,
		SurfaceM2: x.SurfaceM2,
		URL:       url,
		Label:     label,
	}
}

// Extractor derives listing fields from fetched announce pages.
type Extractor struct {
	logger *utils.Logger
}

// NewExtractor creates an Extractor with the given logger.
func NewExtractor(logger *utils.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract reads the page's structured data first and falls back to text
// heuristics when no usable block exists. The equipped-kitchen and
// parking detections always run on the rendered text, backed by the
// structured amenity list when one is present.
func (e *Extractor) Extract(page *models.AnnouncePage) Extraction {
	text := strings.ToLower(page.Text)

	var x Extraction
	var amenities []string

	if data, ok := parseJSONLD(page.JSONLD); ok {
		e.logger.Debug("[extract] Using structured data block from %s", page.URL)
		x.Rent = data.Rent
		x.SurfaceM2 = data.Surface
		x.Address = data.Address
		x.Bedrooms = data.Bedrooms
		x.Rooms = data.Rooms
		amenities = data.Amenities
	} else {
		e.logger.Debug("[extract] No structured data on %s, scanning text", page.URL)
		fb := scanText(text)
		x.Rent = fb.Rent
		x.SurfaceM2 = fb.Surface
		x.Bedrooms = fb.Bedrooms
		x.Rooms = fb.Rooms
	}

	// Structured data often reports rooms without bedrooms; in the French
	// convention the living room accounts for the difference.
	if x.Bedrooms == nil && x.Rooms != nil && *x.Rooms >= 1 {
		b := *x.Rooms - 1
		x.Bedrooms = &b
	}

	x.Kitchen = detectKitchen(text, amenities)
	x.Parking = detectParking(text, amenities)
	x.Type = TypeFromBedrooms(x.Bedrooms)

	return x
}

// TypeFromBedrooms maps a bedroom count to the French T-scale, where a
// studio (zero bedrooms) counts as a T1.
func TypeFromBedrooms(bedrooms *int) string {
	if bedrooms == nil {
		return ""
	}
	n := *bedrooms + 1
	if n < 1 {
		n = 1
	}
	return fmt.Sprintf("T%d", n)
}

// structuredData is what one usable JSON-LD block yields.
type structuredData struct {
	Rent      *int
	Surface   *float64
	Address   string
	Bedrooms  *int
	Rooms     *int
	Amenities []string
}

// parseJSONLD scans the structured-data blocks for the first object that
// carries any offer field. Blocks that fail to parse are skipped; a block
// may hold a single object or an array of objects.
func parseJSONLD(blocks []string) (structuredData, bool) {
	for _, block := range blocks {
		var raw any
		if err := json.Unmarshal([]byte(block), &raw); err != nil {
			continue
		}
		objs, ok := raw.([]any)
		if !ok {
			objs = []any{raw}
		}
		for _, entry := range objs {
			obj, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			data := structuredData{
				Rent:      offerPrice(obj["offers"]),
				Surface:   floorSurface(obj["floorSize"]),
				Address:   postalAddress(obj["address"]),
				Bedrooms:  intField(obj, "numberOfBedrooms", "bedrooms"),
				Rooms:     intField(obj, "numberOfRooms", "rooms"),
				Amenities: amenityNames(obj["amenityFeature"]),
			}
			if data.Rent != nil || data.Surface != nil || data.Address != "" ||
				data.Bedrooms != nil || data.Rooms != nil || len(data.Amenities) > 0 {
				return data, true
			}
		}
	}
	return structuredData{}, false
}

// offerPrice reads offers.price, where offers may be a single object or a
// list with the interesting one first.
func offerPrice(v any) *int {
	var offer map[string]any
	switch t := v.(type) {
	case map[string]any:
		offer = t
	case []any:
		if len(t) > 0 {
			offer, _ = t[0].(map[string]any)
		}
	}
	if offer == nil {
		return nil
	}

	switch t := offer["price"].(type) {
	case float64:
		n := int(t)
		if float64(n) == t {
			return &n
		}
	case string:
		return parseSpacedInt(t)
	}
	return nil
}

func floorSurface(v any) *float64 {
	fs, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	switch t := fs["value"].(type) {
	case float64:
		val := t
		return &val
	case string:
		return models.OptionalFloat(t)
	}
	return nil
}

func postalAddress(v any) string {
	addr, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	var parts []string
	for _, key := range []string{"streetAddress", "postalCode", "addressLocality"} {
		if s, ok := addr[key].(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return normaliseText(strings.Join(parts, ", "))
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

// intField reads the first of keys holding a usable whole number. A bare
// zero is kept: zero bedrooms is a studio, not missing data.
func intField(obj map[string]any, keys ...string) *int {
	for _, key := range keys {
		v, present := obj[key]
		if !present || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			n := int(t)
			return &n
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				continue
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil
			}
			return &n
		default:
			return nil
		}
	}
	return nil
}

func amenityNames(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var names []string
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := obj["name"].(string); ok {
			names = append(names, strings.ToLower(name))
		}
	}
	return names
}

// textScan is what the regex heuristics recover from rendered page text.
// The street address is deliberately never guessed from free text.
type textScan struct {
	Rent     *int
	Surface  *float64
	Bedrooms *int
	Rooms    *int
}

func scanText(text string) textScan {
	var fb textScan
	if m := priceRe.FindStringSubmatch(text); m != nil {
		fb.Rent = parseSpacedInt(m[1])
	}
	if m := surfaceRe.FindStringSubmatch(text); m != nil {
		fb.Surface = models.OptionalFloat(m[1])
	}
	if m := bedroomsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			fb.Bedrooms = &n
		}
	}
	if m := roomsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			fb.Rooms = &n
		}
	}
	return fb
}

func parseSpacedInt(s string) *int {
	s = strings.NewReplacer(" ", "", " ", "", " ", "").Replace(s)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// detectKitchen decides oui/non for an equipped kitchen. Negative wording
// wins over positive so "cuisine non équipée" never reads as equipped.
func detectKitchen(text string, amenities []string) string {
	if matchAny(text, kitchenNegatives) {
		return "non"
	}
	if matchAny(text, kitchenPositives) {
		return "oui"
	}
	if kitchenWeak.MatchString(text) {
		return "oui"
	}
	for _, a := range amenities {
		if strings.Contains(a, "cuisine") && (strings.Contains(a, "équip") || strings.Contains(a, "equip")) {
			return "oui"
		}
	}
	return ""
}

// detectParking decides oui/non for off-street parking, negative wording
// first: "pas de parking" mentions parking without offering any.
func detectParking(text string, amenities []string) string {
	if matchAny(text, parkingNegatives) {
		return "non"
	}
	if matchAny(text, parkingPositives) {
		return "oui"
	}
	for _, a := range amenities {
		if strings.Contains(a, "parking") || strings.Contains(a, "garage") || strings.Contains(a, "box") {
			return "oui"
		}
	}
	return ""
}

func matchAny(text string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
