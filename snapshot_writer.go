package zengin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/tamirms/zengin/internal/encoding"
)

// File layout: [Header 64B][Bank records][Footer 32B]
//
// Bank record:   code name kana hira roma (strings) | branch count (uvarint) | branch records
// Branch record: code name kana hira roma (strings)
//
// Strings are uvarint-length-prefixed UTF-8. HalfKana is derived on load and
// not stored.

// appendBankRecord appends the record for b and all its branches to buf.
func appendBankRecord(buf []byte, b *Bank) []byte {
	buf = appendEntry(buf, b.Code, &b.Names)
	var branches []Branch
	if b.branches != nil {
		branches = b.branches.list
	}
	buf = encoding.AppendUvarint(buf, uint64(len(branches)))
	for i := range branches {
		buf = appendEntry(buf, branches[i].Code, &branches[i].Names)
	}
	return buf
}

func appendEntry(buf []byte, code string, n *Names) []byte {
	buf = encoding.AppendString(buf, code)
	buf = encoding.AppendString(buf, n.Name)
	buf = encoding.AppendString(buf, n.Kana)
	buf = encoding.AppendString(buf, n.Hira)
	buf = encoding.AppendString(buf, n.Roma)
	return buf
}

// encodeSnapshot returns the complete snapshot image of r.
func encodeSnapshot(r *registry) []byte {
	buf := make([]byte, headerSize, headerSize+64*(len(r.banks)+r.numBranches)+footerSize)
	for i := range r.banks {
		buf = appendBankRecord(buf, &r.banks[i])
	}

	hdr := header{
		Magic:       magic,
		Version:     version,
		NumBanks:    uint32(len(r.banks)),
		NumBranches: uint32(r.numBranches),
		Fingerprint: r.fingerprint,
		BodySize:    uint64(len(buf) - headerSize),
	}
	hdr.encodeTo(buf[:headerSize])

	ft := footer{Checksum: xxhash.Sum64(buf)}
	var ftBuf [footerSize]byte
	ft.encodeTo(ftBuf[:])
	return append(buf, ftBuf[:]...)
}

// WriteSnapshot writes the loaded dataset to w in snapshot form.
// The result can be reopened with OpenSnapshot or OpenSnapshotBytes.
func (z *Zengin) WriteSnapshot(w io.Writer) error {
	if _, err := w.Write(encodeSnapshot(z.reg)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// WriteSnapshotFile writes the snapshot to path, replacing any existing file.
// The data is written to a temporary file in the same directory and renamed
// into place, so readers never observe a partial snapshot.
func (z *Zengin) WriteSnapshotFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	tmpName := tmp.Name()

	data := encodeSnapshot(z.reg)
	if err := preallocate(tmp, int64(len(data))); err != nil {
		primaryErr := fmt.Errorf("preallocate snapshot file: %w", err)
		return errors.Join(primaryErr, tmp.Close(), os.Remove(tmpName))
	}
	if _, err := tmp.Write(data); err != nil {
		primaryErr := fmt.Errorf("write snapshot: %w", err)
		return errors.Join(primaryErr, tmp.Close(), os.Remove(tmpName))
	}
	if err := tmp.Sync(); err != nil {
		primaryErr := fmt.Errorf("sync snapshot file: %w", err)
		return errors.Join(primaryErr, tmp.Close(), os.Remove(tmpName))
	}
	if err := tmp.Close(); err != nil {
		primaryErr := fmt.Errorf("close snapshot file: %w", err)
		return errors.Join(primaryErr, os.Remove(tmpName))
	}
	if err := os.Rename(tmpName, path); err != nil {
		primaryErr := fmt.Errorf("rename snapshot file: %w", err)
		return errors.Join(primaryErr, os.Remove(tmpName))
	}
	return nil
}
