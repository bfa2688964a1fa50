// Package dataset reads the zengin-code data layout into ordered raw entries.
//
// Layout (relative to the dataset root):
//
//	banks.json              {"0001": {"code": "0001", "name": ..., "kana": ..., "hira": ..., "roma": ...}, ...}
//	branches/<bank>.json    {"001": {"code": "001", "name": ..., ...}, ...}
//
// Object member order is preserved, so callers see banks and branches in the
// order the files list them. The loader does no code-shape validation beyond
// what is needed to locate branch files; invariants are checked by the
// registry builder.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	zerrors "github.com/tamirms/zengin/errors"
	"golang.org/x/sync/errgroup"
)

const (
	// BanksFile is the bank list at the dataset root.
	BanksFile = "banks.json"

	// BranchesDir holds one branch file per bank, named <bank code>.json.
	BranchesDir = "branches"
)

// Entry is one bank or branch record as it appears in the dataset.
type Entry struct {
	Code string
	Name string
	Kana string
	Hira string
	Roma string
}

// RawBank is a bank entry together with its branches, in file order.
type RawBank struct {
	Entry
	Branches []Entry
}

// BranchFile returns the dataset path of the branch file for bankCode.
func BranchFile(bankCode string) string {
	return path.Join(BranchesDir, bankCode+".json")
}

// Load reads banks.json and every bank's branch file from fsys.
//
// With workers <= 1 branch files are read sequentially. With workers > 1 up to
// workers files are read concurrently; the first failure cancels the rest.
// Either every file loads or an error is returned and no entries are.
func Load(ctx context.Context, fsys fs.FS, workers int) ([]RawBank, error) {
	banks, err := loadBanks(fsys)
	if err != nil {
		return nil, err
	}

	if workers <= 1 {
		for i := range banks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			branches, err := loadBranches(fsys, banks[i].Code)
			if err != nil {
				return nil, err
			}
			banks[i].Branches = branches
		}
		return banks, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range banks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			branches, err := loadBranches(fsys, banks[i].Code)
			if err != nil {
				return err
			}
			// Each goroutine owns banks[i]; no other writer touches it.
			banks[i].Branches = branches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return banks, nil
}

func loadBanks(fsys fs.FS) ([]RawBank, error) {
	var banks []RawBank
	err := readFile(fsys, BanksFile, func(e Entry) {
		banks = append(banks, RawBank{Entry: e})
	})
	if err != nil {
		return nil, err
	}
	return banks, nil
}

func loadBranches(fsys fs.FS, bankCode string) ([]Entry, error) {
	if !fs.ValidPath(bankCode) || path.Base(bankCode) != bankCode {
		return nil, fmt.Errorf("%w: bank code %q cannot name a branch file", zerrors.ErrInvalidCode, bankCode)
	}
	branches := []Entry{}
	err := readFile(fsys, BranchFile(bankCode), func(e Entry) {
		branches = append(branches, e)
	})
	if err != nil {
		return nil, err
	}
	return branches, nil
}

func readFile(fsys fs.FS, name string, fn func(Entry)) error {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", zerrors.ErrDatasetNotFound, name)
		}
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	if err := decodeEntries(f, name, fn); err != nil {
		return err
	}
	return nil
}
