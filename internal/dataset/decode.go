package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	zerrors "github.com/tamirms/zengin/errors"
)

// entryJSON mirrors one record. Required fields are pointers so that a
// missing key can be told apart from an empty string.
type entryJSON struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
	Kana string  `json:"kana"`
	Hira string  `json:"hira"`
	Roma string  `json:"roma"`
}

// decodeEntries streams a JSON object of code-keyed records from r, calling fn
// for each record in document order. The object is walked token by token
// because map decoding would lose member order and silently drop repeated
// keys.
func decodeEntries(r io.Reader, name string, fn func(Entry)) error {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return malformed(name, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: %s: top-level value is not an object", zerrors.ErrMalformedDataset, name)
	}

	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return malformed(name, err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: %s: unexpected token %v", zerrors.ErrMalformedDataset, name, tok)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s: key %q appears twice", zerrors.ErrDuplicateCode, name, key)
		}
		seen[key] = struct{}{}

		var raw entryJSON
		if err := dec.Decode(&raw); err != nil {
			return malformed(name, fmt.Errorf("key %q: %w", key, err))
		}
		e, err := raw.entry(key)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", zerrors.ErrMalformedDataset, name, err)
		}
		fn(e)
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return malformed(name, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: trailing data after object", zerrors.ErrMalformedDataset, name)
	}
	return nil
}

func (raw *entryJSON) entry(key string) (Entry, error) {
	if raw.Code == nil {
		return Entry{}, fmt.Errorf("key %q: missing \"code\"", key)
	}
	if raw.Name == nil {
		return Entry{}, fmt.Errorf("key %q: missing \"name\"", key)
	}
	if *raw.Code != key {
		return Entry{}, fmt.Errorf("key %q: code field is %q", key, *raw.Code)
	}
	return Entry{
		Code: *raw.Code,
		Name: *raw.Name,
		Kana: raw.Kana,
		Hira: raw.Hira,
		Roma: raw.Roma,
	}, nil
}

func malformed(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", zerrors.ErrMalformedDataset, name, err)
}
