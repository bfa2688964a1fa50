package zengin

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"slices"

	zerrors "github.com/tamirms/zengin/errors"
	"github.com/tamirms/zengin/internal/dataset"
)

// Zengin is a loaded, read-only bank and branch registry.
//
// Thread Safety:
// - A Zengin is never modified after construction
// - All methods are safe for concurrent use
//
// The zero value is not usable; obtain one from New, NewFromFS, NewFromDir or
// one of the OpenSnapshot functions.
type Zengin struct {
	reg          *registry
	searchFields []Field
}

// New loads the dataset bundled with the package.
func New(opts ...Option) (*Zengin, error) {
	return newFromFS("bundled dataset", dataset.Bundled(), opts)
}

// NewFromFS loads a dataset in the zengin-code layout (banks.json and
// branches/<bank code>.json) rooted at fsys.
func NewFromFS(fsys fs.FS, opts ...Option) (*Zengin, error) {
	return newFromFS("dataset", fsys, opts)
}

// NewFromDir loads a zengin-code dataset from a directory on disk, such as
// the data directory of a zengin-code checkout.
func NewFromDir(dir string, opts ...Option) (*Zengin, error) {
	return newFromFS(dir, os.DirFS(dir), opts)
}

// newFromFS runs the loader then the registry builder. Any failure is
// reported as an *InitError and no Zengin is returned.
func newFromFS(source string, fsys fs.FS, opts []Option) (*Zengin, error) {
	cfg := newConfig(opts)
	if err := checkFields(cfg.searchFields); err != nil {
		return nil, &InitError{Source: source, Err: err}
	}

	raw, err := dataset.Load(context.Background(), fsys, cfg.workers)
	if err != nil {
		return nil, &InitError{Source: source, Err: err}
	}
	reg, err := buildRegistry(raw)
	if err != nil {
		return nil, &InitError{Source: source, Err: err}
	}
	return &Zengin{reg: reg, searchFields: cfg.searchFields}, nil
}

// Bank returns the bank with the given 4-digit code. The code must match
// exactly; "1" does not find "0001".
func (z *Zengin) Bank(code string) (Bank, bool) {
	return z.reg.bank(code)
}

// Branch returns the branch with the given 3-digit code of the bank with the
// given 4-digit code. It reports false if either is unknown.
func (z *Zengin) Branch(bankCode, branchCode string) (Branch, bool) {
	b, ok := z.reg.bank(bankCode)
	if !ok {
		return Branch{}, false
	}
	return b.Branch(branchCode)
}

// Banks returns every bank in dataset order. The returned slice is a copy.
func (z *Zengin) Banks() []Bank {
	return slices.Clone(z.reg.banks)
}

// NumBanks returns the number of banks.
func (z *Zengin) NumBanks() int {
	return len(z.reg.banks)
}

// NumBranches returns the number of branches across all banks.
func (z *Zengin) NumBranches() int {
	return z.reg.numBranches
}

// Fingerprint returns the content fingerprint of the loaded dataset.
func (z *Zengin) Fingerprint() Fingerprint {
	return z.reg.fingerprint
}

// SearchFields returns the fields FindBanksByName and FindBranchesByName
// match against.
func (z *Zengin) SearchFields() []Field {
	return slices.Clone(z.searchFields)
}

// FindBanksByName returns, in dataset order, every bank for which pattern
// matches somewhere in one of the search fields (by default just Name).
// Matching is case-sensitive with no normalization. pattern uses RE2 syntax;
// an invalid pattern returns a *QueryError wrapping ErrInvalidPattern.
// No match returns an empty slice and a nil error.
func (z *Zengin) FindBanksByName(pattern string) ([]Bank, error) {
	return z.findBanks("FindBanksByName", pattern, z.searchFields)
}

// FindBanksByKana matches pattern against the full-width katakana name.
func (z *Zengin) FindBanksByKana(pattern string) ([]Bank, error) {
	return z.findBanks("FindBanksByKana", pattern, []Field{FieldKana})
}

// FindBanksByHalfKana matches pattern against the half-width katakana name.
func (z *Zengin) FindBanksByHalfKana(pattern string) ([]Bank, error) {
	return z.findBanks("FindBanksByHalfKana", pattern, []Field{FieldHalfKana})
}

// FindBanksByHira matches pattern against the hiragana name.
func (z *Zengin) FindBanksByHira(pattern string) ([]Bank, error) {
	return z.findBanks("FindBanksByHira", pattern, []Field{FieldHira})
}

// FindBanksByRoma matches pattern against the romanized name.
func (z *Zengin) FindBanksByRoma(pattern string) ([]Bank, error) {
	return z.findBanks("FindBanksByRoma", pattern, []Field{FieldRoma})
}

// FindBanks matches pattern against field f.
func (z *Zengin) FindBanks(f Field, pattern string) ([]Bank, error) {
	if !f.valid() {
		return nil, &QueryError{Op: "FindBanks", Input: f.String(), Err: zerrors.ErrUnknownField}
	}
	return z.findBanks("FindBanks", pattern, []Field{f})
}

func (z *Zengin) findBanks(op, pattern string, fields []Field) ([]Bank, error) {
	re, err := compilePattern(op, pattern)
	if err != nil {
		return nil, err
	}
	return search(z.reg.banks, bankNames, re, fields), nil
}

// FindBranchesByName returns, in dataset order, the branches of the given
// bank for which pattern matches somewhere in one of the search fields.
// An unknown bank code returns a *QueryError wrapping ErrUnknownBank; an
// invalid pattern one wrapping ErrInvalidPattern.
func (z *Zengin) FindBranchesByName(bankCode, pattern string) ([]Branch, error) {
	return z.findBranches("FindBranchesByName", bankCode, pattern, z.searchFields)
}

// FindBranchesByKana matches pattern against branch full-width katakana names.
func (z *Zengin) FindBranchesByKana(bankCode, pattern string) ([]Branch, error) {
	return z.findBranches("FindBranchesByKana", bankCode, pattern, []Field{FieldKana})
}

// FindBranchesByHalfKana matches pattern against branch half-width katakana names.
func (z *Zengin) FindBranchesByHalfKana(bankCode, pattern string) ([]Branch, error) {
	return z.findBranches("FindBranchesByHalfKana", bankCode, pattern, []Field{FieldHalfKana})
}

// FindBranchesByHira matches pattern against branch hiragana names.
func (z *Zengin) FindBranchesByHira(bankCode, pattern string) ([]Branch, error) {
	return z.findBranches("FindBranchesByHira", bankCode, pattern, []Field{FieldHira})
}

// FindBranchesByRoma matches pattern against branch romanized names.
func (z *Zengin) FindBranchesByRoma(bankCode, pattern string) ([]Branch, error) {
	return z.findBranches("FindBranchesByRoma", bankCode, pattern, []Field{FieldRoma})
}

// FindBranches matches pattern against field f of the bank's branches.
func (z *Zengin) FindBranches(bankCode string, f Field, pattern string) ([]Branch, error) {
	if !f.valid() {
		return nil, &QueryError{Op: "FindBranches", Input: f.String(), Err: zerrors.ErrUnknownField}
	}
	return z.findBranches("FindBranches", bankCode, pattern, []Field{f})
}

func (z *Zengin) findBranches(op, bankCode, pattern string, fields []Field) ([]Branch, error) {
	b, ok := z.reg.bank(bankCode)
	if !ok {
		return nil, &QueryError{
			Op:    op,
			Input: bankCode,
			Err:   fmt.Errorf("%w: %q", zerrors.ErrUnknownBank, bankCode),
		}
	}
	re, err := compilePattern(op, pattern)
	if err != nil {
		return nil, err
	}
	return b.findBranches(re, fields), nil
}
