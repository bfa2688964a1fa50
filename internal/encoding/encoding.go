// Package encoding provides the length-prefixed primitives used by snapshot
// records.
//
// Integers are unsigned varints (encoding/binary Uvarint). Strings are a
// varint byte length followed by the raw UTF-8 bytes.
package encoding

import (
	"encoding/binary"
	"errors"
	"unicode/utf8"
)

var (
	// ErrShortBuffer is returned when a value runs past the end of the input.
	ErrShortBuffer = errors.New("encoding: value extends past end of buffer")

	// ErrOverflow is returned for a varint longer than 64 bits.
	ErrOverflow = errors.New("encoding: varint overflows uint64")

	// ErrInvalidUTF8 is returned for a string that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("encoding: string is not valid UTF-8")
)

// AppendUvarint appends v to buf.
func AppendUvarint(buf []byte, v uint64) []byte {
	return binary.AppendUvarint(buf, v)
}

// AppendString appends the length-prefixed form of s to buf.
func AppendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// Reader decodes values from a byte slice in order. The first error sticks:
// later reads return zero values and Err reports it.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader returns a Reader over buf. buf is not copied, but strings
// returned by ReadString are.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// ReadUvarint reads one unsigned varint.
func (r *Reader) ReadUvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf[r.off:])
	switch {
	case n == 0:
		r.err = ErrShortBuffer
		return 0
	case n < 0:
		r.err = ErrOverflow
		return 0
	}
	r.off += n
	return v
}

// ReadString reads one length-prefixed string.
func (r *Reader) ReadString() string {
	n := r.ReadUvarint()
	if r.err != nil {
		return ""
	}
	if n > uint64(len(r.buf)-r.off) {
		r.err = ErrShortBuffer
		return ""
	}
	b := r.buf[r.off : r.off+int(n)]
	if !utf8.Valid(b) {
		r.err = ErrInvalidUTF8
		return ""
	}
	r.off += int(n)
	// string(b) copies, so the result outlives buf.
	return string(b)
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}
