package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartment-map/models"
)

func TestStoreReplaceAppendSnapshot(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Snapshot())

	loaded := []models.Listing{{Label: "Centre"}, {Label: "Gare"}}
	s.ReplaceAll(loaded)
	require.Equal(t, 2, s.Len())

	s.Append(models.Listing{Label: "Port Marianne"})
	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "Port Marianne", snap[2].Label, "append keeps insertion order")

	s.ReplaceAll(nil)
	assert.Equal(t, 0, s.Len())
}

func TestStoreSnapshotIsIsolated(t *testing.T) {
	s := NewStore()
	src := []models.Listing{{Label: "Centre"}}
	s.ReplaceAll(src)

	// Mutating the source slice after loading must not reach the store.
	src[0].Label = "changed"
	assert.Equal(t, "Centre", s.Snapshot()[0].Label)

	// Mutating a snapshot must not reach the store either.
	snap := s.Snapshot()
	snap[0].Label = "changed"
	assert.Equal(t, "Centre", s.Snapshot()[0].Label)
}
