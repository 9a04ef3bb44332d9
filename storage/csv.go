package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"apartment-map/models"
)

// Header is the fixed column order of the curated sheet. Readers match
// columns by name, not position, so a reordered file still loads; this
// order is what every export produces.
var Header = []string{
	"loyer", "adresse", "cuisine_equipee", "type", "parking",
	"chambres", "surface_m2", "url", "label", "latitude", "longitude",
}

// WriteCSV serializes listings in the fixed column order. encoding/csv
// applies RFC 4180 quoting, so addresses containing commas or quotes
// survive a round trip.
func WriteCSV(w io.Writer, listings []models.Listing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, l := range listings {
		if err := cw.Write(row(l)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the full collection to path, truncating any previous
// contents. Intermediate directories are created automatically.
func WriteCSVFile(path string, listings []models.Listing) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	if err := WriteCSV(f, listings); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// AppendCSVFile adds one listing at the end of the sheet at path. A
// missing or empty file gets the header row first, so appending to a
// fresh path yields a well-formed sheet.
func AppendCSVFile(path string, l models.Listing) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("csv: open file %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: stat file %q: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(Header); err != nil {
			_ = f.Close()
			return fmt.Errorf("csv: write header: %w", err)
		}
	}
	if err := cw.Write(row(l)); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: write row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses a curated sheet back into listings. Header names are
// matched case-insensitively after trimming, a leading UTF-8 BOM (as left
// by spreadsheet exports) is tolerated, and unnamed columns are skipped.
// Numeric cells accept French decimal commas; blank or unparseable cells
// load as absent values rather than errors.
func ReadCSV(r io.Reader) ([]models.Listing, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	index := make(map[string]int)
	for i, name := range records[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		index[name] = i
	}

	listings := make([]models.Listing, 0, len(records)-1)
	for _, rec := range records[1:] {
		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		listings = append(listings, models.Listing{
			Rent:      models.OptionalInt(cell("loyer")),
			Address:   strings.TrimSpace(cell("adresse")),
			Kitchen:   strings.TrimSpace(cell("cuisine_equipee")),
			Type:      strings.TrimSpace(cell("type")),
			Parking:   strings.TrimSpace(cell("parking")),
			Bedrooms:  models.OptionalInt(cell("chambres")),
			SurfaceM2: models.OptionalFloat(cell("surface_m2")),
			URL:       strings.TrimSpace(cell("url")),
			Label:     strings.TrimSpace(cell("label")),
			Latitude:  models.OptionalFloat(cell("latitude")),
			Longitude: models.OptionalFloat(cell("longitude")),
		})
	}
	return listings, nil
}

// LoadCSVFile reads the sheet at path. A missing file is not an error: it
// loads as an empty collection, the same as a fresh sheet.
func LoadCSVFile(path string) ([]models.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("csv: open file %q: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

func row(l models.Listing) []string {
	return []string{
		formatInt(l.Rent),
		l.Address,
		l.Kitchen,
		l.Type,
		l.Parking,
		formatInt(l.Bedrooms),
		formatFloat(l.SurfaceM2),
		l.URL,
		l.Label,
		formatFloat(l.Latitude),
		formatFloat(l.Longitude),
	}
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
