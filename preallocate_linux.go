//go:build linux

package zengin

import (
	"os"

	"golang.org/x/sys/unix"
)

// preallocate reserves size bytes for file so that a full disk fails the
// snapshot write up front instead of part way through.
func preallocate(file *os.File, size int64) error {
	if err := unix.Fallocate(int(file.Fd()), 0, 0, size); err != nil {
		// Some filesystems (NFS, tmpfs on old kernels) refuse fallocate.
		return unix.Ftruncate(int(file.Fd()), size)
	}
	return nil
}
