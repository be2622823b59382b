package model

import (
	"time"

	"github.com/google/uuid"
)

// EndpointOutcome records one endpoint's contribution to a (possibly
// federated) execution: how long it took and whether it succeeded.
type EndpointOutcome struct {
	WallTime time.Duration
	Success  bool
	Error    string
}

// ExecutionResult is the canonical output of running a query. Rows are a
// slice (not a map) so that result ordering, when the query specifies
// ORDER BY, is preserved.
type ExecutionResult struct {
	// ID identifies one execution for correlation across logs, cached
	// results, and a caller's own request tracking. It has no meaning
	// beyond uniqueness.
	ID string

	Columns []string
	Rows    []Row

	TotalWallTime time.Duration
	PerEndpoint   map[string]EndpointOutcome

	TotalRows  int
	Truncated  bool
}

// NewExecutionResult builds a result from columns and rows, filling in
// ID and TotalRows.
func NewExecutionResult(columns []string, rows []Row) *ExecutionResult {
	return &ExecutionResult{
		ID:          uuid.NewString(),
		Columns:     columns,
		Rows:        rows,
		TotalRows:   len(rows),
		PerEndpoint: map[string]EndpointOutcome{},
	}
}
