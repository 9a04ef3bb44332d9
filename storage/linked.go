package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"apartment-map/models"
)

// ErrNotLinked is returned when a save is requested before any file has
// been linked. Callers should fall back to a plain export.
var ErrNotLinked = errors.New("storage: no linked file (export instead)")

// LinkedFile is the optional capability to overwrite one local sheet in
// place. It starts unlinked; a successful Acquire links it to a path and
// there is no transition back, a failed write in particular leaves the
// link intact. Acquiring again simply retargets the link.
type LinkedFile struct {
	mu   sync.Mutex
	path string
}

// NewLinkedFile creates the capability in its unlinked state.
func NewLinkedFile() *LinkedFile {
	return &LinkedFile{}
}

// Linked reports whether a file has been linked.
func (lf *LinkedFile) Linked() bool {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	return lf.path != ""
}

// Path returns the linked path, or "" when unlinked.
func (lf *LinkedFile) Path() string {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	return lf.path
}

// Acquire links the capability to path after proving the path is
// writable. An unwritable path counts as a denied grant: the error is
// returned and the previous state is kept.
func (lf *LinkedFile) Acquire(path string) error {
	if path == "" {
		return errors.New("storage: empty link path")
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("storage: link %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage: link %q: %w", path, err)
	}

	lf.mu.Lock()
	defer lf.mu.Unlock()
	lf.path = path
	return nil
}

// Write replaces the linked file's entire contents with the CSV
// serialization of listings. When unlinked it returns ErrNotLinked
// without touching the filesystem.
func (lf *LinkedFile) Write(listings []models.Listing) error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.path == "" {
		return ErrNotLinked
	}
	f, err := os.Create(lf.path)
	if err != nil {
		return fmt.Errorf("storage: write %q: %w", lf.path, err)
	}
	if err := WriteCSV(f, listings); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
