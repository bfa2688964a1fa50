package zengin

import (
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	zerrors "github.com/tamirms/zengin/errors"
	"github.com/tamirms/zengin/internal/dataset"
	"github.com/tamirms/zengin/internal/encoding"
)

// OpenSnapshot loads a snapshot written by WriteSnapshot.
// It opens the file, memory-maps it, decodes it, and releases both before
// returning; the result holds no file resources.
func OpenSnapshot(path string, opts ...Option) (*Zengin, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &InitError{Source: path, Err: fmt.Errorf("open snapshot file: %w", err)}
	}
	defer file.Close()
	return openSnapshotFile(path, file, opts)
}

// OpenSnapshotFile loads a snapshot by memory-mapping the given file.
// The caller is responsible for closing f; it may be closed as soon as
// OpenSnapshotFile returns.
func OpenSnapshotFile(f *os.File, opts ...Option) (*Zengin, error) {
	return openSnapshotFile(f.Name(), f, opts)
}

// OpenSnapshotBytes loads a snapshot from an in-memory image. data is not
// retained.
func OpenSnapshotBytes(data []byte, opts ...Option) (*Zengin, error) {
	cfg := newConfig(opts)
	return newFromSnapshot("snapshot bytes", data, cfg)
}

func openSnapshotFile(source string, f *os.File, opts []Option) (*Zengin, error) {
	cfg := newConfig(opts)

	stat, err := f.Stat()
	if err != nil {
		return nil, &InitError{Source: source, Err: fmt.Errorf("stat snapshot file: %w", err)}
	}
	if stat.Size() < int64(minFileSize) {
		return nil, &InitError{Source: source, Err: zerrors.ErrTruncatedFile}
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, &InitError{Source: source, Err: fmt.Errorf("mmap snapshot file: %w", err)}
	}
	adviseSequential(mm)

	// Decoding copies every string out of the mapping, so it can go now.
	z, err := newFromSnapshot(source, []byte(mm), cfg)
	if unmapErr := mm.Unmap(); unmapErr != nil {
		unmapErr = fmt.Errorf("unmap snapshot file: %w", unmapErr)
		if err != nil {
			return nil, errors.Join(err, unmapErr)
		}
		return nil, &InitError{Source: source, Err: unmapErr}
	}
	return z, err
}

func newFromSnapshot(source string, data []byte, cfg *config) (*Zengin, error) {
	if err := checkFields(cfg.searchFields); err != nil {
		return nil, &InitError{Source: source, Err: err}
	}
	reg, err := decodeSnapshot(data, !cfg.skipFingerprint)
	if err != nil {
		return nil, &InitError{Source: source, Err: err}
	}
	return &Zengin{reg: reg, searchFields: cfg.searchFields}, nil
}

// decodeSnapshot validates and decodes a snapshot image.
// Checks, in order: size, header, footer, checksum, record decoding, registry
// invariants, header counts, and (if verifyFingerprint) the fingerprint.
func decodeSnapshot(data []byte, verifyFingerprint bool) (*registry, error) {
	if len(data) < minFileSize {
		return nil, zerrors.ErrTruncatedFile
	}

	hdr, err := decodeHeader(data[:headerSize])
	if err != nil {
		return nil, err
	}

	fileSize := uint64(len(data))
	// fileSize >= minFileSize, so no underflow.
	bodySpace := fileSize - minFileSize
	if hdr.BodySize > bodySpace {
		return nil, zerrors.ErrTruncatedFile
	}
	if hdr.BodySize < bodySpace {
		return nil, fmt.Errorf("%w: %d bytes after footer", zerrors.ErrCorruptedSnapshot, bodySpace-hdr.BodySize)
	}

	footerOffset := fileSize - footerSize
	ft, err := decodeFooter(data[footerOffset:])
	if err != nil {
		return nil, err
	}
	if ft.Reserved != [24]byte{} {
		return nil, fmt.Errorf("%w: non-zero reserved footer bytes", zerrors.ErrCorruptedSnapshot)
	}
	if xxhash.Sum64(data[:footerOffset]) != ft.Checksum {
		return nil, zerrors.ErrChecksumFailed
	}

	raw, err := decodeRecords(data[headerSize:footerOffset], hdr.NumBanks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", zerrors.ErrCorruptedSnapshot, err)
	}

	reg, err := buildRegistry(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", zerrors.ErrCorruptedSnapshot, err)
	}
	if uint32(reg.numBranches) != hdr.NumBranches {
		return nil, fmt.Errorf("%w: header lists %d branches, body has %d",
			zerrors.ErrCorruptedSnapshot, hdr.NumBranches, reg.numBranches)
	}
	if verifyFingerprint && reg.fingerprint != hdr.Fingerprint {
		return nil, fmt.Errorf("%w: fingerprint %s, header says %s",
			zerrors.ErrChecksumFailed, reg.fingerprint, hdr.Fingerprint)
	}
	// The stored fingerprint stands in when the check is skipped; the two are
	// equal whenever the check passes.
	reg.fingerprint = hdr.Fingerprint
	return reg, nil
}

// decodeRecords reads numBanks bank records from body, which must be
// consumed exactly.
func decodeRecords(body []byte, numBanks uint32) ([]dataset.RawBank, error) {
	r := encoding.NewReader(body)
	// Each record is at least six bytes, which bounds the preallocation
	// against a corrupted count.
	banks := make([]dataset.RawBank, 0, min(uint64(numBanks), uint64(len(body))/6))

	for i := uint32(0); i < numBanks; i++ {
		rb := dataset.RawBank{Entry: readEntry(r)}
		n := r.ReadUvarint()
		if r.Err() != nil {
			return nil, fmt.Errorf("bank record %d: %w", i, r.Err())
		}
		// Each branch record is at least five bytes.
		if n > uint64(r.Len())/5 {
			return nil, fmt.Errorf("bank record %d: branch count %d exceeds remaining data", i, n)
		}
		rb.Branches = make([]dataset.Entry, n)
		for j := range rb.Branches {
			rb.Branches[j] = readEntry(r)
		}
		if r.Err() != nil {
			return nil, fmt.Errorf("bank %s branch records: %w", rb.Code, r.Err())
		}
		banks = append(banks, rb)
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%d unread bytes after %d bank records", r.Len(), numBanks)
	}
	return banks, nil
}

func readEntry(r *encoding.Reader) dataset.Entry {
	return dataset.Entry{
		Code: r.ReadString(),
		Name: r.ReadString(),
		Kana: r.ReadString(),
		Hira: r.ReadString(),
		Roma: r.ReadString(),
	}
}
