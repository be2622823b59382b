// Package orchestrator implements the Resilient Orchestrator (spec.md
// §4.M): it wraps the Query Executor with retry/backoff, ordered fallback
// plans, and (for federated plans) partial-result acceptance driven by
// each service's SILENT flag. Grounded on the teacher's
// pkg/routing/router_impl.go DefaultRouter.RouteRequest /
// tryFallbacks control flow (try primary, fall through an ordered list on
// failure, record per-attempt outcome) and pkg/routing/errors.go's
// AllProvidersFailedError (wraps the last underlying cause).
package orchestrator

import (
	"context"
	"time"

	"sparqlgateway/pkg/executor"
	"sparqlgateway/pkg/gwerrors"
	"sparqlgateway/pkg/merge"
	"sparqlgateway/pkg/model"
	"sparqlgateway/pkg/query"
)

// Status is the coarse outcome of a (possibly federated) orchestrated
// execution.
type Status string

const (
	StatusOK      Status = "ok"
	StatusPartial Status = "partial"
	StatusFatal   Status = "fatal"
)

// Orchestrator runs SPARQL text (or federated plans) through a shared
// Executor, applying retry and fallback policy this package owns —
// deliberately absent from Executor itself (see pkg/executor).
type Orchestrator struct {
	exec *executor.Executor
}

// New builds an Orchestrator over an existing Executor.
func New(exec *executor.Executor) *Orchestrator {
	return &Orchestrator{exec: exec}
}

// ExecuteWithFallback runs sparqlText against ep, retrying idempotent
// failures per cfg, and falling through to each entry of fallbacks (in
// order) if the primary exhausts its retries. The first success wins; if
// every plan fails, the last plan's error is returned.
func (o *Orchestrator) ExecuteWithFallback(ctx context.Context, ep model.EndpointDescriptor, sparqlText string, fallbacks []string, timeout time.Duration, cfg model.ConnectionConfig) (*model.ExecutionResult, error) {
	plans := append([]string{sparqlText}, fallbacks...)

	var lastErr error
	for _, plan := range plans {
		res, err := o.executeWithRetry(ctx, ep, plan, timeout, cfg)
		if err == nil {
			return res, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// executeWithRetry runs one plan against ep, retrying only idempotent
// failures (network, timeout, 5xx) with exponential backoff per cfg; 4xx
// and other non-retryable failures return immediately.
func (o *Orchestrator) executeWithRetry(ctx context.Context, ep model.EndpointDescriptor, sparqlText string, timeout time.Duration, cfg model.ConnectionConfig) (*model.ExecutionResult, error) {
	cfg = cfg.WithDefaults()

	var lastErr error
	for attempt := 0; attempt <= cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			if err := sleepBackoff(ctx, cfg, attempt); err != nil {
				return nil, err
			}
		}
		res, err := o.exec.Execute(ctx, ep, sparqlText, timeout)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func sleepBackoff(ctx context.Context, cfg model.ConnectionConfig, attempt int) error {
	delay := cfg.RetryDelay
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * cfg.RetryBackoff)
	}
	select {
	case <-ctx.Done():
		return gwerrors.New(gwerrors.KindTimeout, "", "context cancelled during retry backoff", gwerrors.WithCause(ctx.Err()))
	case <-time.After(delay):
		return nil
	}
}

// isRetryable classifies a gwerrors.Error per spec.md §4.M: network and
// timeout failures are always retried; HTTP_ERROR only for 5xx; every
// other kind (including 4xx HTTP_ERROR) is not retried.
func isRetryable(err error) bool {
	ge, ok := err.(*gwerrors.Error)
	if !ok {
		return false
	}
	switch ge.Kind {
	case gwerrors.KindNetwork, gwerrors.KindTimeout:
		return true
	case gwerrors.KindHTTPError:
		return ge.StatusCode >= 500
	default:
		return false
	}
}

// ServiceOutcome records one federated service's execution status, kept
// separately from model.EndpointOutcome's WallTime/Success/Error so the
// orchestrator can also carry the structured gwerrors.Error for callers
// that want to branch on Kind.
type ServiceOutcome struct {
	EndpointURL string
	Success     bool
	WallTime    time.Duration
	Err         error
}

// FederatedResult is the Orchestrator's output for a federated plan:
// merged rows, per-service status, and an overall Status reflecting
// spec.md §4.M's partial-result acceptance rule.
type FederatedResult struct {
	Columns       []string
	Rows          []model.Row
	PerService    []ServiceOutcome
	Status        Status
	TotalWallTime time.Duration
}

// ExecuteFederated runs each service subplan of plan as its own SELECT *
// query directly against its EndpointURL, retrying per cfg, then merges
// the successful services' rows. A non-SILENT service's failure is
// fatal: the whole result is discarded and a FEDERATION_FATAL error is
// returned (spec.md example 5). A SILENT service's failure only
// downgrades Status to partial; its rows are simply absent.
//
// When joinVars is non-empty, successful services' rows are inner-joined
// pairwise over those variables; otherwise they are unioned without
// dedup (each service contributes disjoint bindings over its own
// patterns).
func (o *Orchestrator) ExecuteFederated(ctx context.Context, plan *model.FederatedPlan, joinVars []string, timeout time.Duration, cfg model.ConnectionConfig) (*FederatedResult, error) {
	result := &FederatedResult{Status: StatusOK}
	start := time.Now()

	var rowSets [][]model.Row
	for _, svc := range plan.Services {
		ep := model.EndpointDescriptor{URL: svc.EndpointURL}
		sparqlText := serializeServiceQuery(svc)

		svcStart := time.Now()
		res, err := o.executeWithRetry(ctx, ep, sparqlText, timeout, cfg)
		wall := time.Since(svcStart)

		outcome := ServiceOutcome{EndpointURL: svc.EndpointURL, WallTime: wall}
		if err != nil {
			outcome.Err = err
			if !svc.Silent {
				result.Status = StatusFatal
				result.PerService = append(result.PerService, outcome)
				return result, gwerrors.New(gwerrors.KindFederationFatal, svc.EndpointURL, "non-SILENT service failed", gwerrors.WithCause(err))
			}
			result.Status = StatusPartial
			result.PerService = append(result.PerService, outcome)
			continue
		}

		outcome.Success = true
		result.PerService = append(result.PerService, outcome)
		rowSets = append(rowSets, res.Rows)
		result.Columns = append(result.Columns, onlyNew(result.Columns, res.Columns)...)
	}

	if len(joinVars) > 0 && len(rowSets) > 1 {
		merged := rowSets[0]
		for _, rows := range rowSets[1:] {
			merged = merge.Join(merge.JoinInner, merged, rows, joinVars, model.RDFTerm{})
		}
		result.Rows = merged
	} else {
		result.Rows = merge.Union(false, rowSets...)
	}

	result.TotalWallTime = time.Since(start)
	return result, nil
}

func onlyNew(existing, incoming []string) []string {
	seen := map[string]bool{}
	for _, c := range existing {
		seen[c] = true
	}
	var out []string
	for _, c := range incoming {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// serializeServiceQuery renders one service subplan's patterns as a
// standalone SELECT * query, suitable for direct execution against that
// service's own endpoint (rather than as a SERVICE clause embedded in
// another endpoint's query — see pkg/federation for that alternative
// wire form).
func serializeServiceQuery(svc model.ServiceSubplan) string {
	b := query.New()
	b.SetSelectAll()
	for _, p := range svc.Patterns {
		b.AddTriple(p.Subject, p.Predicate, p.Object)
	}
	return query.Serialize(b.Plan())
}
