package worker

import (
	"fmt"

	"github.com/skyforge/networth/internal/domain/types"
)

// Sentinel kinds for worker errors.
var (
	ErrStopped = fmt.Errorf("%w: worker pool stopped", types.ErrUnavailable)
)
