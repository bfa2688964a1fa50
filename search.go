package zengin

import (
	"fmt"
	"regexp"

	zerrors "github.com/tamirms/zengin/errors"
)

// compilePattern compiles a caller-supplied search pattern. Matching uses
// search semantics: a record matches if the pattern matches anywhere in the
// field. Anchor with ^ and $ for a full match.
func compilePattern(op, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &QueryError{
			Op:    op,
			Input: pattern,
			Err:   fmt.Errorf("%w: %w", zerrors.ErrInvalidPattern, err),
		}
	}
	return re, nil
}

// checkFields rejects an empty field list and any field outside the known set.
func checkFields(fields []Field) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no search fields given", zerrors.ErrUnknownField)
	}
	for _, f := range fields {
		if !f.valid() {
			return fmt.Errorf("%w: %s", zerrors.ErrUnknownField, f)
		}
	}
	return nil
}

func bankNames(b *Bank) Names { return b.Names }
func branchNames(b *Branch) Names { return b.Names }

// search returns, in order, every item for which re matches at least one of
// fields. The result is never nil.
func search[T any](items []T, names func(*T) Names, re *regexp.Regexp, fields []Field) []T {
	out := []T{}
	for i := range items {
		n := names(&items[i])
		for _, f := range fields {
			if re.MatchString(n.Get(f)) {
				out = append(out, items[i])
				break
			}
		}
	}
	return out
}
