// Package atomicfile replaces files without ever exposing a partial write.
//
// Data goes to a temporary file in the target directory, is flushed to
// stable storage, and is then renamed over the target. A failure at any
// step removes the temporary file and leaves the previous target intact.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

const tempPattern = ".tmp-*"

// Write atomically replaces path with data. perm is applied to newly
// created files; an existing file keeps its mode.
func Write(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+tempPattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err = f.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err = fdatasync(f); err != nil {
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	// The rename itself is durable only once the directory is synced.
	// Not every platform supports that, so failures are ignored.
	syncDir(dir)
	return nil
}
