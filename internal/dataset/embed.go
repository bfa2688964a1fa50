package dataset

import (
	"embed"
	"io/fs"
)

// bundled is a snapshot of the zengin-code data directory compiled into the
// binary.
//
//go:embed data
var bundled embed.FS

// Bundled returns the embedded dataset rooted at its data directory.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		// fs.Sub only fails for an invalid directory name.
		panic("dataset: embedded data directory: " + err.Error())
	}
	return sub
}
