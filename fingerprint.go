package zengin

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// Fingerprint is an xxHash3-128 digest of a dataset's content: every bank
// and branch record in dataset order, in the snapshot record encoding.
//
// Two Zengin values with equal fingerprints answer every query identically,
// whether they were loaded from JSON or from a snapshot. Derived fields
// (HalfKana) are not hashed.
type Fingerprint struct {
	Hi, Lo uint64
}

// String returns the fingerprint as 32 hex digits.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x%016x", f.Hi, f.Lo)
}

// IsZero reports whether f is the zero value.
func (f Fingerprint) IsZero() bool {
	return f.Hi == 0 && f.Lo == 0
}

func computeFingerprint(r *registry) Fingerprint {
	h := xxh3.New()
	var buf []byte
	for i := range r.banks {
		buf = appendBankRecord(buf[:0], &r.banks[i])
		if _, err := h.Write(buf); err != nil {
			panic("hash.Hash.Write returned unexpected error: " + err.Error())
		}
	}
	sum := h.Sum128()
	return Fingerprint{Hi: sum.Hi, Lo: sum.Lo}
}
