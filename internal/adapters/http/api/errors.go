package api

import (
	"errors"
	"fmt"

	"github.com/okian/fairwage/internal/domain/career"
	"github.com/okian/fairwage/internal/domain/fairvalue"
	"github.com/okian/fairwage/internal/domain/negotiation"
	"github.com/okian/fairwage/internal/domain/worthgap"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBodyTooLarge = errors.New("request body too large")
	ErrInternal     = errors.New("internal error")
)

func wrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

func newKind(op string, kind error, msg string) error {
	return fmt.Errorf("%s: %w: %s", op, kind, msg)
}

// isInvalidInput reports whether err is a validation failure from the
// calculation layer.
func isInvalidInput(err error) bool {
	for _, target := range []error{
		career.ErrInvalidRange,
		fairvalue.ErrInvalidInput,
		worthgap.ErrInvalidWage,
		worthgap.ErrInvalidFrequency,
		worthgap.ErrInvalidExperience,
		negotiation.ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
