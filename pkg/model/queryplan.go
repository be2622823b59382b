package model

// TermTag marks whether a QueryPlan triple component is a SPARQL variable,
// an IRI (absolute or PREFIX:local), or a literal.
type TermTag string

const (
	TagVariable TermTag = "variable"
	TagIRI      TermTag = "iri"
	TagLiteral  TermTag = "literal"
)

// PlanTerm is one subject/predicate/object slot in a triple pattern.
type PlanTerm struct {
	Tag   TermTag
	Value string
}

// Var constructs a variable plan term (Value excludes the leading "?").
func Var(name string) PlanTerm { return PlanTerm{Tag: TagVariable, Value: name} }

// IRITerm constructs an IRI or prefixed-name plan term.
func IRITerm(value string) PlanTerm { return PlanTerm{Tag: TagIRI, Value: value} }

// LiteralTerm constructs a literal plan term; value is the already
// SPARQL-quoted lexical form (e.g. `"Paris"` or `42`).
func LiteralTerm(value string) PlanTerm { return PlanTerm{Tag: TagLiteral, Value: value} }

// TriplePattern is one WHERE-clause triple.
type TriplePattern struct {
	Subject   PlanTerm
	Predicate PlanTerm
	Object    PlanTerm
}

// OptionalGroup is one OPTIONAL { ... } block.
type OptionalGroup struct {
	Patterns []TriplePattern
}

// OrderModifier is one ORDER BY clause entry.
type OrderModifier struct {
	Variable  string
	Ascending bool
}

// Modifiers holds the solution-modifier block of a query: GROUP BY,
// ORDER BY, LIMIT, OFFSET.
type Modifiers struct {
	GroupBy []string
	OrderBy []OrderModifier
	Limit   *int
	Offset  *int
}

// QueryPlan is the mutable-until-serialized structure assembled
// incrementally by the Query Builder (§4.H). Prefixes and SELECT
// variables preserve insertion order; serialization is a pure function
// of the plan's fields, never mutating it.
type QueryPlan struct {
	// PrefixOrder preserves insertion order; Prefixes holds the mapping.
	// First-wins: adding a prefix that already exists is a no-op.
	PrefixOrder []string
	Prefixes    map[string]string

	Distinct   bool
	SelectVars []string // empty + SelectAll true means "*"
	SelectAll  bool

	Where     []TriplePattern
	Filters   []string // opaque FILTER(...) expressions, already rendered
	Optionals []OptionalGroup

	Modifiers Modifiers
}

// NewQueryPlan returns an empty, ready-to-build plan.
func NewQueryPlan() *QueryPlan {
	return &QueryPlan{Prefixes: map[string]string{}}
}
