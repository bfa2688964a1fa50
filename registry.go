package zengin

import (
	"fmt"

	zerrors "github.com/tamirms/zengin/errors"
	"github.com/tamirms/zengin/internal/dataset"
)

const (
	bankCodeLen   = 4
	branchCodeLen = 3
)

// registry is the loaded dataset: banks in dataset order plus a code index.
// Nothing modifies it after buildRegistry returns.
type registry struct {
	banks       []Bank
	byCode      map[string]int
	numBranches int
	fingerprint Fingerprint
}

// buildRegistry validates raw entries and indexes them by code.
// Codes must be ASCII digit strings of the fixed width; bank codes must be
// unique, and branch codes unique within their bank.
func buildRegistry(raw []dataset.RawBank) (*registry, error) {
	r := &registry{
		banks:  make([]Bank, 0, len(raw)),
		byCode: make(map[string]int, len(raw)),
	}

	for i := range raw {
		rb := &raw[i]
		if !isCode(rb.Code, bankCodeLen) {
			return nil, fmt.Errorf("%w: bank %q", zerrors.ErrInvalidCode, rb.Code)
		}
		if _, dup := r.byCode[rb.Code]; dup {
			return nil, fmt.Errorf("%w: bank %q", zerrors.ErrDuplicateCode, rb.Code)
		}

		table, err := buildBranchTable(rb.Code, rb.Branches)
		if err != nil {
			return nil, err
		}

		r.byCode[rb.Code] = len(r.banks)
		r.banks = append(r.banks, Bank{
			Code:     rb.Code,
			Names:    namesOf(&rb.Entry),
			branches: table,
		})
		r.numBranches += len(table.list)
	}

	r.fingerprint = computeFingerprint(r)
	return r, nil
}

func buildBranchTable(bankCode string, entries []dataset.Entry) (*branchTable, error) {
	t := &branchTable{
		list:   make([]Branch, 0, len(entries)),
		byCode: make(map[string]int, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		if !isCode(e.Code, branchCodeLen) {
			return nil, fmt.Errorf("%w: bank %s branch %q", zerrors.ErrInvalidCode, bankCode, e.Code)
		}
		if _, dup := t.byCode[e.Code]; dup {
			return nil, fmt.Errorf("%w: bank %s branch %q", zerrors.ErrDuplicateCode, bankCode, e.Code)
		}
		t.byCode[e.Code] = len(t.list)
		t.list = append(t.list, Branch{
			Code:     e.Code,
			BankCode: bankCode,
			Names:    namesOf(e),
		})
	}
	return t, nil
}

func namesOf(e *dataset.Entry) Names {
	return Names{
		Name:     e.Name,
		Kana:     e.Kana,
		HalfKana: halfWidth(e.Kana),
		Hira:     e.Hira,
		Roma:     e.Roma,
	}
}

// isCode reports whether s is exactly n ASCII digits.
func isCode(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (r *registry) bank(code string) (Bank, bool) {
	i, ok := r.byCode[code]
	if !ok {
		return Bank{}, false
	}
	return r.banks[i], true
}
