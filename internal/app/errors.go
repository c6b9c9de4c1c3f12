package service

import "errors"

var (
	// ErrNotStarted is returned when a calculation is requested before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrUnknownJobKind is returned for a batch job that is neither impact nor worth.
	ErrUnknownJobKind = errors.New("unknown job kind")
)
