package zengin

import (
	"encoding/binary"

	zerrors "github.com/tamirms/zengin/errors"
)

const (
	// magic number for snapshot files; the bytes on disk read "ZGNS".
	magic = uint32(0x534E475A)

	// version is the current snapshot format version
	version = uint16(0x0001)

	// headerSize is the exact size of the serialized header (64 bytes)
	headerSize = 64

	// footerSize is the exact size of the serialized footer (32 bytes)
	footerSize = 32

	// minFileSize is a snapshot with no banks: header and footer only.
	minFileSize = headerSize + footerSize
)

// header is the 64-byte snapshot header.
//
// Layout:
//
//	Offset  Size  Field          Type
//	0       4     Magic          0x534E475A ("ZGNS")
//	4       2     Version        0x0001
//	6       4     NumBanks       uint32_le
//	10      4     NumBranches    uint32_le
//	14      8     FingerprintHi  uint64_le
//	22      8     FingerprintLo  uint64_le
//	30      8     BodySize       uint64_le (bytes of bank records)
//	38      26    Reserved       [26]byte (zero)
type header struct {
	Magic       uint32      // 4 bytes: magic number
	Version     uint16      // 2 bytes: format version
	NumBanks    uint32      // 4 bytes: bank records in the body
	NumBranches uint32      // 4 bytes: branch records across all banks
	Fingerprint Fingerprint // 16 bytes: dataset fingerprint
	BodySize    uint64      // 8 bytes: length of the record region
	Reserved    [26]byte    // 26 bytes: reserved (zero)
}

// encodeTo serializes the header to an existing buffer.
func (h *header) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint32(buf[6:10], h.NumBanks)
	binary.LittleEndian.PutUint32(buf[10:14], h.NumBranches)
	binary.LittleEndian.PutUint64(buf[14:22], h.Fingerprint.Hi)
	binary.LittleEndian.PutUint64(buf[22:30], h.Fingerprint.Lo)
	binary.LittleEndian.PutUint64(buf[30:38], h.BodySize)
	copy(buf[38:64], h.Reserved[:])
}

// decodeHeader parses a 64-byte header.
func decodeHeader(buf []byte) (*header, error) {
	if len(buf) < headerSize {
		return nil, zerrors.ErrTruncatedFile
	}

	h := &header{
		Magic:       binary.LittleEndian.Uint32(buf[0:4]),
		Version:     binary.LittleEndian.Uint16(buf[4:6]),
		NumBanks:    binary.LittleEndian.Uint32(buf[6:10]),
		NumBranches: binary.LittleEndian.Uint32(buf[10:14]),
		Fingerprint: Fingerprint{
			Hi: binary.LittleEndian.Uint64(buf[14:22]),
			Lo: binary.LittleEndian.Uint64(buf[22:30]),
		},
		BodySize: binary.LittleEndian.Uint64(buf[30:38]),
	}
	copy(h.Reserved[:], buf[38:64])

	if h.Magic != magic {
		return nil, zerrors.ErrInvalidMagic
	}
	if h.Version != version {
		return nil, zerrors.ErrInvalidVersion
	}
	return h, nil
}

// footer is the 32-byte snapshot footer.
//
// Layout:
//
//	Offset  Size  Field     Type
//	0       8     Checksum  uint64_le (xxHash64 of header and body)
//	8       24    Reserved  [24]byte (zero)
type footer struct {
	Checksum uint64   // 8 bytes: xxHash64 of everything before the footer
	Reserved [24]byte // 24 bytes: reserved for future use
}

// encodeTo serializes the footer into an existing buffer.
func (f *footer) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], f.Checksum)
	copy(buf[8:32], f.Reserved[:])
}

// decodeFooter parses a 32-byte footer.
func decodeFooter(buf []byte) (*footer, error) {
	if len(buf) < footerSize {
		return nil, zerrors.ErrTruncatedFile
	}

	f := &footer{
		Checksum: binary.LittleEndian.Uint64(buf[0:8]),
	}
	copy(f.Reserved[:], buf[8:32])

	return f, nil
}
