package hierarchy

import (
	"context"
	"errors"
)

// Source represents a source of supervisor→report edges
type Source interface {
	// DirectReports returns the canonical emails of everyone whose
	// supervisor_email is the given address. Terminated staff are excluded
	// at the source.
	DirectReports(ctx context.Context, supervisorEmail string) ([]string, error)
}

// ErrUnavailable is returned when the edge source failed or timed out
var ErrUnavailable = errors.New("org hierarchy source unavailable")

// MaxDepth bounds downline traversal. The org chart is nowhere near this
// deep in valid data; the bound exists so supervisor cycles terminate.
const MaxDepth = 10
