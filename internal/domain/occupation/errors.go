package occupation

import "errors"

// ErrUnknownRole marks a role value the sector does not define.
var ErrUnknownRole = errors.New("unknown role")
