package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"apartment-map/models"
)

// WriteJSON serializes the collection as a pretty-printed JSON array.
// HTML escaping is disabled so announce URLs stay readable in the file.
func WriteJSON(w io.Writer, listings []models.Listing) error {
	if listings == nil {
		listings = []models.Listing{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(listings); err != nil {
		return fmt.Errorf("json: encode listings: %w", err)
	}
	return nil
}

// WriteJSONFile writes the full collection to path, truncating any
// previous contents. Intermediate directories are created automatically.
func WriteJSONFile(path string, listings []models.Listing) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("json: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("json: create file %q: %w", path, err)
	}
	if err := WriteJSON(f, listings); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON decodes a listing array. Malformed input and non-array
// payloads degrade to an empty collection: the caller always gets a
// usable (possibly empty) set, never an error.
func ReadJSON(r io.Reader) []models.Listing {
	var listings []models.Listing
	if err := json.NewDecoder(r).Decode(&listings); err != nil {
		return nil
	}
	return listings
}

// LoadJSONFile reads listings from path with the same degrade behavior
// as ReadJSON. A missing file loads as an empty collection.
func LoadJSONFile(path string) []models.Listing {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	return ReadJSON(f)
}

// FetchJSON retrieves a listing array over HTTP. A cache-busting query
// parameter is appended so intermediaries never serve a stale copy.
// Every failure mode (bad URL, network error, non-200 status, malformed
// body) degrades to an empty collection.
func FetchJSON(ctx context.Context, client *http.Client, rawURL string) []models.Listing {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	q := u.Query()
	q.Set("v", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}
	return ReadJSON(resp.Body)
}
