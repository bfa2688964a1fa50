// Package errors defines all exported error sentinels for the zengin library.
//
// This is the single source of truth for error values. Both the top-level
// zengin package and the internal dataset loader import from here,
// ensuring errors.Is checks work across package boundaries.
package errors

import "errors"

// Dataset errors
var (
	ErrDatasetNotFound  = errors.New("zengin: dataset file not found")
	ErrMalformedDataset = errors.New("zengin: malformed dataset")
	ErrDuplicateCode    = errors.New("zengin: duplicate code in dataset")
	ErrInvalidCode      = errors.New("zengin: code is not a zero-padded numeric string of the expected width")
)

// Query errors
var (
	ErrInvalidPattern = errors.New("zengin: invalid search pattern")
	ErrUnknownBank    = errors.New("zengin: unknown bank code")
	ErrUnknownField   = errors.New("zengin: unknown search field")
)

// Snapshot errors
var (
	ErrInvalidMagic      = errors.New("zengin: invalid snapshot magic number")
	ErrInvalidVersion    = errors.New("zengin: unsupported snapshot version")
	ErrTruncatedFile     = errors.New("zengin: snapshot file is truncated")
	ErrChecksumFailed    = errors.New("zengin: snapshot checksum verification failed")
	ErrCorruptedSnapshot = errors.New("zengin: snapshot data is corrupted")
)
