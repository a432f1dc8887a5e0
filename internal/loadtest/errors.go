package loadtest

import "errors"

// Error constants.
var (
	ErrUnhealthy      = errors.New("service unhealthy")
	ErrNoKeys         = errors.New("no catalog keys match prefix")
	ErrOrderMismatch  = errors.New("batch results out of order")
	ErrInvalidConfig  = errors.New("invalid load test config")
	ErrUnexpectedCode = errors.New("unexpected status code")
)
