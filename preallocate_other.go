//go:build !linux && !darwin

package zengin

import "os"

// preallocate sets the file size. It may not reserve disk blocks.
func preallocate(file *os.File, size int64) error {
	return file.Truncate(size)
}
