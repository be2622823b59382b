package model

// ServiceSubplan is one endpoint's contribution to a federated query: the
// triple patterns to run against it, whether to wrap it in OPTIONAL, and
// whether to wrap it in SERVICE SILENT.
type ServiceSubplan struct {
	EndpointURL string
	Patterns    []TriplePattern
	Optional    bool
	Silent      bool
}

// FederatedPlan is an ordered list of per-endpoint subplans plus the
// outer SELECT list and global modifiers. Order is significant: it is
// the execution/serialization order, decided by the Federated Planner's
// selectivity ordering (§4.K), not the caller's input order.
type FederatedPlan struct {
	Services   []ServiceSubplan
	SelectVars []string
	Modifiers  Modifiers
}

// CostEstimate is the Federated Planner's cost model output (§4.K).
type CostEstimate struct {
	EstimatedTimeSeconds float64
	ComplexityScore      int
	RecommendedTimeout   float64
}
