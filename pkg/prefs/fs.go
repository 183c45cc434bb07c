package prefs

import (
	"io/fs"
	"os"

	"github.com/joshuapare/prefkit/internal/atomicfile"
)

// FileSystem abstracts the file access done by Store. Tests substitute an
// implementation that counts or fails writes.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces path with data without leaving a partial file.
	WriteFile(path string, data []byte, perm fs.FileMode) error
	// Remove deletes path.
	Remove(path string) error
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes through a synced temporary file renamed over path.
func (OSFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return atomicfile.Write(path, data, perm)
}

// Remove deletes path.
func (OSFS) Remove(path string) error {
	return os.Remove(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}
