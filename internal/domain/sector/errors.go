package sector

import "errors"

// ErrUnknownSector marks an industry label with no canonical sector. It is
// recovered locally and reported as a warning, never returned.
var ErrUnknownSector = errors.New("unknown sector")
