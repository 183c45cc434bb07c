//go:build darwin

package atomicfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync flushes file data to the physical disk.
//
// macOS fsync only reaches the drive cache, so F_FULLFSYNC is tried first
// and plain fsync is the fallback for filesystems that reject it.
func fdatasync(f *os.File) error {
	if _, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0); err == nil {
		return nil
	}
	return unix.Fsync(int(f.Fd()))
}

func syncDir(dir string) {
	fd, err := unix.Open(dir, unix.O_RDONLY, 0)
	if err != nil {
		return
	}
	unix.Fsync(fd)
	unix.Close(fd)
}
