package geocode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.json")

	c := LoadCache(path)
	c.Put("rue foch|3.75,43.72,4.05,43.53|fr", &Point{Lat: 43.61, Lon: 3.87})
	c.Put("introuvable|3.75,43.72,4.05,43.53|fr", nil)
	require.NoError(t, c.Save())

	reloaded := LoadCache(path)
	assert.Equal(t, 2, reloaded.Len())

	p, ok := reloaded.Get("rue foch|3.75,43.72,4.05,43.53|fr")
	require.True(t, ok)
	require.NotNil(t, p)
	assert.InDelta(t, 43.61, p.Lat, 1e-9)
	assert.InDelta(t, 3.87, p.Lon, 1e-9)

	miss, ok := reloaded.Get("introuvable|3.75,43.72,4.05,43.53|fr")
	assert.True(t, ok, "cached miss should survive a reload")
	assert.Nil(t, miss)
}

func TestCacheUnknownKey(t *testing.T) {
	c := LoadCache(filepath.Join(t.TempDir(), "cache.json"))
	_, ok := c.Get("never asked")
	assert.False(t, ok)
}

func TestCacheCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0644))

	c := LoadCache(path)
	assert.Equal(t, 0, c.Len())
}

func TestCacheSaveWithoutChangesIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := LoadCache(path)
	require.NoError(t, c.Save())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "an untouched cache should not create a file")
}

func TestParseViewbox(t *testing.T) {
	vb, err := ParseViewbox("3.75,43.72,4.05,43.53")
	require.NoError(t, err)
	assert.Equal(t, Viewbox{Left: 3.75, Top: 43.72, Right: 4.05, Bottom: 43.53}, vb)

	center := vb.Center()
	assert.InDelta(t, 43.625, center.Lat, 1e-9)
	assert.InDelta(t, 3.9, center.Lon, 1e-9)

	assert.Equal(t, "3.75,43.72,4.05,43.53", vb.String())

	for _, bad := range []string{"", "1,2,3", "a,b,c,d", "1,2,3,4,5"} {
		if _, err := ParseViewbox(bad); err == nil {
			t.Errorf("ParseViewbox(%q): expected error", bad)
		}
	}
}

func TestHaversine(t *testing.T) {
	montpellier := Point{Lat: 43.6108, Lon: 3.8767}
	paris := Point{Lat: 48.8566, Lon: 2.3522}

	d := haversineKm(montpellier, paris)
	assert.InDelta(t, 596, d, 15, "Montpellier-Paris is roughly 600 km")

	assert.InDelta(t, 0, haversineKm(montpellier, montpellier), 1e-9)
}
