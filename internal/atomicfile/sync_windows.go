//go:build windows

package atomicfile

import (
	"os"

	"golang.org/x/sys/windows"
)

// fdatasync flushes file data and metadata using FlushFileBuffers.
func fdatasync(f *os.File) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}

// syncDir is a no-op: directories cannot be opened for flushing on Windows.
func syncDir(string) {}
