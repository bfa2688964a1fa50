package zengin

import (
	"fmt"
	"regexp"
	"slices"

	zerrors "github.com/tamirms/zengin/errors"
)

// Field selects which name variant a search matches against.
type Field uint8

const (
	FieldName     Field = iota // display name (kanji/kana mix)
	FieldKana                  // full-width katakana
	FieldHalfKana              // half-width katakana
	FieldHira                  // hiragana
	FieldRoma                  // romanized
)

var fieldNames = [...]string{
	FieldName:     "name",
	FieldKana:     "kana",
	FieldHalfKana: "halfkana",
	FieldHira:     "hira",
	FieldRoma:     "roma",
}

func (f Field) String() string {
	if f.valid() {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", uint8(f))
}

func (f Field) valid() bool {
	return int(f) < len(fieldNames)
}

// ParseField returns the Field whose String form is s.
func ParseField(s string) (Field, bool) {
	for i, name := range fieldNames {
		if name == s {
			return Field(i), true
		}
	}
	return 0, false
}

// Names holds the display and phonetic names shared by banks and branches.
type Names struct {
	Name     string
	Kana     string
	HalfKana string
	Hira     string
	Roma     string
}

// Get returns the name variant selected by f, or "" for an unknown field.
func (n Names) Get(f Field) string {
	switch f {
	case FieldName:
		return n.Name
	case FieldKana:
		return n.Kana
	case FieldHalfKana:
		return n.HalfKana
	case FieldHira:
		return n.Hira
	case FieldRoma:
		return n.Roma
	}
	return ""
}

// Bank is a single financial institution. Bank values are copies; changing
// one does not affect the Zengin it came from.
type Bank struct {
	Code string // 4 digits, zero-padded
	Names

	branches *branchTable
}

// Branch is a branch of a bank.
type Branch struct {
	Code     string // 3 digits, zero-padded
	BankCode string // owning bank
	Names
}

// branchTable is a bank's branches in dataset order plus a code index.
// It is shared by every copy of the Bank and never modified after build.
type branchTable struct {
	list   []Branch
	byCode map[string]int
}

// Branch returns the branch with the given code.
func (b Bank) Branch(code string) (Branch, bool) {
	if b.branches == nil {
		return Branch{}, false
	}
	i, ok := b.branches.byCode[code]
	if !ok {
		return Branch{}, false
	}
	return b.branches.list[i], true
}

// Branches returns all branches of the bank in dataset order.
// The returned slice is a copy.
func (b Bank) Branches() []Branch {
	if b.branches == nil {
		return []Branch{}
	}
	return slices.Clone(b.branches.list)
}

// NumBranches returns the number of branches of the bank.
func (b Bank) NumBranches() int {
	if b.branches == nil {
		return 0
	}
	return len(b.branches.list)
}

// FindBranches returns the branches whose field f contains a match for
// pattern, in dataset order.
func (b Bank) FindBranches(f Field, pattern string) ([]Branch, error) {
	if !f.valid() {
		return nil, &QueryError{Op: "FindBranches", Input: f.String(), Err: zerrors.ErrUnknownField}
	}
	re, err := compilePattern("FindBranches", pattern)
	if err != nil {
		return nil, err
	}
	return b.findBranches(re, []Field{f}), nil
}

func (b Bank) findBranches(re *regexp.Regexp, fields []Field) []Branch {
	if b.branches == nil {
		return []Branch{}
	}
	return search(b.branches.list, branchNames, re, fields)
}
