package types

import "errors"

// Error kinds shared across layers so the API can map them to status codes
// without depending on the packages that raise them.
var (
	ErrUnavailable   = errors.New("unavailable")
	ErrBatchTooLarge = errors.New("batch too large")
)
