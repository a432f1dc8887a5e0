package service

import (
	"errors"
	"fmt"

	"github.com/skyforge/networth/internal/domain/types"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = fmt.Errorf("%w: service not started", types.ErrUnavailable)
	ErrNoPriceSource = errors.New("no price source configured")
	ErrBatchTooLarge = types.ErrBatchTooLarge
)

// ErrLoadCategories is returned when the category file cannot be used.
var ErrLoadCategories = errors.New("load item categories")
