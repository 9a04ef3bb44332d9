package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartment-map/models"
)

func TestLinkedFileStartsUnlinked(t *testing.T) {
	lf := NewLinkedFile()
	assert.False(t, lf.Linked())
	assert.Empty(t, lf.Path())

	err := lf.Write([]models.Listing{{Address: "Rue A"}})
	require.ErrorIs(t, err, ErrNotLinked)
}

func TestLinkedFileAcquireAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apartments.csv")
	lf := NewLinkedFile()

	require.NoError(t, lf.Acquire(path))
	assert.True(t, lf.Linked())
	assert.Equal(t, path, lf.Path())

	require.NoError(t, lf.Write([]models.Listing{
		{Address: "Rue A"},
		{Address: "Rue B"},
	}))

	// A later write replaces the whole file, not just appended rows.
	require.NoError(t, lf.Write([]models.Listing{{Address: "Rue C"}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Rue C")
	assert.NotContains(t, string(raw), "Rue A")
	assert.Equal(t, 2, strings.Count(string(raw), "\n"), "header plus one row")
}

func TestLinkedFileAcquireDeniedKeepsState(t *testing.T) {
	lf := NewLinkedFile()
	err := lf.Acquire(filepath.Join(t.TempDir(), "missing-dir", "apartments.csv"))
	require.Error(t, err)
	assert.False(t, lf.Linked())
}

func TestLinkedFileFailedWriteKeepsLink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sheet")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "apartments.csv")

	lf := NewLinkedFile()
	require.NoError(t, lf.Acquire(path))

	// Pull the directory out from under the link so the next write fails.
	require.NoError(t, os.RemoveAll(dir))

	err := lf.Write([]models.Listing{{Address: "Rue A"}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotLinked)
	assert.True(t, lf.Linked(), "a failed write must not unlink")
	assert.Equal(t, path, lf.Path())
}
