package zengin

import "fmt"

// InitError reports a failed construction. Source names the dataset or
// snapshot that was being loaded. The underlying sentinel from the
// zengin/errors package is reachable with errors.Is.
type InitError struct {
	Source string
	Err    error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("zengin: load %s: %v", e.Source, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// QueryError reports a failed search. Op is the method name and Input the
// offending pattern or bank code. Err wraps ErrInvalidPattern, ErrUnknownBank
// or ErrUnknownField.
type QueryError struct {
	Op    string
	Input string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s(%q): %v", e.Op, e.Input, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
