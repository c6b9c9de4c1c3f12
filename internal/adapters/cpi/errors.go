package cpi

import (
	"errors"
	"fmt"
)

// ErrFetch marks a failed live price index fetch.
var ErrFetch = errors.New("cpi fetch failed")

// FetchError describes a failed fetch.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v from %s: %s: %v", ErrFetch, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%v from %s: %s", ErrFetch, e.URL, e.Message)
}

func (e *FetchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrFetch}
	}
	return []error{ErrFetch, e.Cause}
}
