package ledger

import "fmt"

// DecodeError reports a malformed account buffer for a classified
// layout. It carries the layout and byte length for diagnostics.
type DecodeError struct {
	Layout  Layout
	Size    int
	Message string
}

func NewDecodeError(layout Layout, size int, message string) error {
	return &DecodeError{
		Layout:  layout,
		Size:    size,
		Message: message,
	}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ledger: decoding %s account failed: %s (%d bytes)", e.Layout, e.Message, e.Size)
}

func IsDecodeError(e error) bool {
	_, ok := e.(*DecodeError)
	return ok
}

// FetchError reports a failed program account scan. The whole cycle is
// aborted on it, partial results are never used.
type FetchError struct {
	Program string
	Cause   error
}

func NewFetchError(program string, cause error) error {
	return &FetchError{
		Program: program,
		Cause:   cause,
	}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("ledger: fetching accounts of program %s failed: %s", e.Program, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

func IsFetchError(e error) bool {
	_, ok := e.(*FetchError)
	return ok
}
