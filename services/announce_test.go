package services

import (
	"testing"

	"apartment-map/models"
)

func TestExtractFromStructuredData(t *testing.T) {
	page := &models.AnnouncePage{
		URL: "https://www.seloger.com/annonces/123.htm",
		JSONLD: []string{
			`{"@type": "BreadcrumbList"}`,
			`{
			  "@type": "Apartment",
			  "offers": {"price": "1 250", "priceCurrency": "EUR"},
			  "floorSize": {"value": "62,5", "unitCode": "MTK"},
			  "address": {"streetAddress": "12 Rue de la Loge", "postalCode": "34000", "addressLocality": "Montpellier"},
			  "numberOfBedrooms": 2,
			  "amenityFeature": [{"name": "Cuisine équipée"}, {"name": "Parking"}]
			}`,
		},
		Text: "Bel appartement lumineux au coeur de Montpellier.",
	}

	x := NewExtractor(testLogger()).Extract(page)

	if x.Rent == nil || *x.Rent != 1250 {
		t.Errorf("Rent = %v; want 1250", x.Rent)
	}
	if x.SurfaceM2 == nil || *x.SurfaceM2 != 62.5 {
		t.Errorf("SurfaceM2 = %v; want 62.5", x.SurfaceM2)
	}
	if want := "12 Rue de la Loge, 34000, Montpellier"; x.Address != want {
		t.Errorf("Address = %q; want %q", x.Address, want)
	}
	if x.Bedrooms == nil || *x.Bedrooms != 2 {
		t.Errorf("Bedrooms = %v; want 2", x.Bedrooms)
	}
	if x.Type != "T3" {
		t.Errorf("Type = %q; want T3", x.Type)
	}
	if x.Kitchen != "oui" {
		t.Errorf("Kitchen = %q; want oui (from amenity list)", x.Kitchen)
	}
	if x.Parking != "oui" {
		t.Errorf("Parking = %q; want oui (from amenity list)", x.Parking)
	}
}

func TestExtractOffersAsList(t *testing.T) {
	page := &models.AnnouncePage{
		JSONLD: []string{`{"offers": [{"price": 980}]}`},
	}

	x := NewExtractor(testLogger()).Extract(page)
	if x.Rent == nil || *x.Rent != 980 {
		t.Errorf("Rent = %v; want 980", x.Rent)
	}
}

func TestExtractTextFallback(t *testing.T) {
	page := &models.AnnouncePage{
		Text: "Appartement 3 pièces dont 2 chambres, 62,5 m², loyer 1 180 € charges comprises. " +
			"Cuisine équipée. Pas de parking.",
	}

	x := NewExtractor(testLogger()).Extract(page)

	if x.Rent == nil || *x.Rent != 1180 {
		t.Errorf("Rent = %v; want 1180", x.Rent)
	}
	if x.SurfaceM2 == nil || *x.SurfaceM2 != 62.5 {
		t.Errorf("SurfaceM2 = %v; want 62.5", x.SurfaceM2)
	}
	if x.Bedrooms == nil || *x.Bedrooms != 2 {
		t.Errorf("Bedrooms = %v; want 2", x.Bedrooms)
	}
	if x.Rooms == nil || *x.Rooms != 3 {
		t.Errorf("Rooms = %v; want 3", x.Rooms)
	}
	if x.Type != "T3" {
		t.Errorf("Type = %q; want T3", x.Type)
	}
	if x.Kitchen != "oui" {
		t.Errorf("Kitchen = %q; want oui", x.Kitchen)
	}
	if x.Parking != "non" {
		t.Errorf("Parking = %q; want non (negative wording wins)", x.Parking)
	}
	if x.Address != "" {
		t.Errorf("Address = %q; free text must not produce an address", x.Address)
	}
}

func TestExtractBedroomsFromRooms(t *testing.T) {
	page := &models.AnnouncePage{
		JSONLD: []string{`{"numberOfRooms": 2, "offers": {"price": 700}}`},
	}

	x := NewExtractor(testLogger()).Extract(page)
	if x.Bedrooms == nil || *x.Bedrooms != 1 {
		t.Fatalf("Bedrooms = %v; want 1 (rooms minus living room)", x.Bedrooms)
	}
	if x.Type != "T2" {
		t.Errorf("Type = %q; want T2", x.Type)
	}
}

func TestExtractStudio(t *testing.T) {
	page := &models.AnnouncePage{
		JSONLD: []string{`{"numberOfBedrooms": 0, "offers": {"price": 520}}`},
	}

	x := NewExtractor(testLogger()).Extract(page)
	if x.Bedrooms == nil || *x.Bedrooms != 0 {
		t.Fatalf("Bedrooms = %v; want 0", x.Bedrooms)
	}
	if x.Type != "T1" {
		t.Errorf("Type = %q; want T1 (a studio)", x.Type)
	}
}

func TestDetectKitchen(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"cuisine équipée récente", "oui"},
		{"cuisine aménagée et équipée", "oui"},
		{"cuisine semi-équipée", "oui"},
		{"kitchenette équipée", "oui"},
		{"cuisine aménagée", "oui"},
		{"cuisine non équipée", "non"},
		{"appartement sans cuisine", "non"},
		{"pas de cuisine", "non"},
		{"cuisine vide à prévoir", "non"},
		{"belle vue dégagée", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := detectKitchen(tt.text, nil)
		if got != tt.want {
			t.Errorf("detectKitchen(%q) = %q; want %q", tt.text, got, tt.want)
		}
	}
}

func TestDetectParking(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"place de parking en sous-sol", "oui"},
		{"parking privé", "oui"},
		{"garage fermé", "oui"},
		{"box en option", "oui"},
		{"stationnement facile", "oui"},
		{"pas de parking", "non"},
		{"sans parking", "non"},
		{"stationnement dans la rue", "non"},
		{"stationnement payant à proximité", "non"},
		{"proche tramway", ""},
	}

	for _, tt := range tests {
		got := detectParking(tt.text, nil)
		if got != tt.want {
			t.Errorf("detectParking(%q) = %q; want %q", tt.text, got, tt.want)
		}
	}
}

func TestDetectFromAmenitiesOnly(t *testing.T) {
	if got := detectKitchen("", []string{"cuisine équipée"}); got != "oui" {
		t.Errorf("kitchen from amenities = %q; want oui", got)
	}
	if got := detectParking("", []string{"garage double"}); got != "oui" {
		t.Errorf("parking from amenities = %q; want oui", got)
	}
	// Explicit text wording outranks the amenity list.
	if got := detectParking("pas de parking", []string{"parking"}); got != "non" {
		t.Errorf("parking = %q; want non", got)
	}
}

func TestTypeFromBedrooms(t *testing.T) {
	tests := []struct {
		bedrooms *int
		want     string
	}{
		{nil, ""},
		{iptr(0), "T1"},
		{iptr(1), "T2"},
		{iptr(3), "T4"},
	}
	for _, tt := range tests {
		if got := TypeFromBedrooms(tt.bedrooms); got != tt.want {
			t.Errorf("TypeFromBedrooms(%v) = %q; want %q", tt.bedrooms, got, tt.want)
		}
	}
}

func TestParseSpacedInt(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"980", iptr(980)},
		{"1 200", iptr(1200)},
		{"1 250", iptr(1250)},
		{"1 100", iptr(1100)},
		{"980 ", iptr(980)},
		{"douze", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := parseSpacedInt(tt.raw)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("parseSpacedInt(%q) = %d; want nil", tt.raw, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("parseSpacedInt(%q) = %v; want %d", tt.raw, got, *tt.want)
		}
	}
}

func TestExtractionListing(t *testing.T) {
	x := Extraction{Rent: iptr(840), Address: "2 Rue Jules Ferry", Type: "T2"}
	l := x.Listing("https://example.test/annonce/1", "Gare")

	if l.URL != "https://example.test/annonce/1" || l.Label != "Gare" {
		t.Errorf("URL/Label not carried over: %q %q", l.URL, l.Label)
	}
	if l.Rent == nil || *l.Rent != 840 || l.Address != "2 Rue Jules Ferry" {
		t.Errorf("fields not carried over: %v %q", l.Rent, l.Address)
	}
	if l.Latitude != nil || l.Longitude != nil {
		t.Errorf("new listings must start without coordinates")
	}
}
