package commands

import (
	"strings"
	"testing"

	"apartment-map/services"
)

func TestApplyFieldFlagsOverridesExtraction(t *testing.T) {
	cmd := AddCmd()
	for flag, value := range map[string]string{
		"loyer":   "950",
		"adresse": "8 Rue de Verdun",
		"surface": "48.5",
		"cuisine": "OUI",
		"parking": "Non",
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("set --%s: %v", flag, err)
		}
	}

	rent := 1200
	x := services.Extraction{Rent: &rent, Address: "page address", Kitchen: "non"}
	applyFieldFlags(cmd, &x)

	if x.Rent == nil || *x.Rent != 950 {
		t.Errorf("Rent = %v; want 950", x.Rent)
	}
	if x.Address != "8 Rue de Verdun" {
		t.Errorf("Address = %q; want the flag value", x.Address)
	}
	if x.SurfaceM2 == nil || *x.SurfaceM2 != 48.5 {
		t.Errorf("SurfaceM2 = %v; want 48.5", x.SurfaceM2)
	}
	if x.Kitchen != "oui" || x.Parking != "non" {
		t.Errorf("Kitchen, Parking = %q, %q; want lower-cased oui, non", x.Kitchen, x.Parking)
	}
}

func TestApplyFieldFlagsRederivesType(t *testing.T) {
	cmd := AddCmd()
	if err := cmd.Flags().Set("chambres", "2"); err != nil {
		t.Fatal(err)
	}

	x := services.Extraction{Type: "T2"}
	applyFieldFlags(cmd, &x)

	if x.Bedrooms == nil || *x.Bedrooms != 2 {
		t.Fatalf("Bedrooms = %v; want 2", x.Bedrooms)
	}
	if x.Type != "T3" {
		t.Errorf("Type = %q; want T3 after the bedroom override", x.Type)
	}
}

func TestApplyFieldFlagsExplicitTypeWins(t *testing.T) {
	cmd := AddCmd()
	if err := cmd.Flags().Set("chambres", "2"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("type", "t4"); err != nil {
		t.Fatal(err)
	}

	var x services.Extraction
	applyFieldFlags(cmd, &x)

	if x.Type != "T4" {
		t.Errorf("Type = %q; want the upper-cased flag value T4", x.Type)
	}
}

func TestMissingFieldsNamesEveryGap(t *testing.T) {
	got := missingFields(services.Extraction{})
	want := []string{"rent", "address", "surface", "bedrooms", "kitchen", "parking"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("missingFields(empty) = %v; want %v", got, want)
	}

	rent := 800
	bedrooms := 1
	surface := 30.0
	full := services.Extraction{
		Rent:      &rent,
		Address:   "1 Rue X",
		Bedrooms:  &bedrooms,
		SurfaceM2: &surface,
		Kitchen:   "oui",
		Parking:   "non",
	}
	if got := missingFields(full); len(got) != 0 {
		t.Errorf("missingFields(full) = %v; want none", got)
	}
}
