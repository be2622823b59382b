package model

// IntentAction is the high-level SPARQL query form requested by the user.
type IntentAction string

const (
	ActionSelect   IntentAction = "SELECT"
	ActionCount    IntentAction = "COUNT"
	ActionAsk      IntentAction = "ASK"
	ActionDescribe IntentAction = "DESCRIBE"
)

// FilterOp is a comparison operator extracted from natural language.
type FilterOp string

const (
	OpEqual        FilterOp = "="
	OpNotEqual     FilterOp = "!="
	OpGreaterThan  FilterOp = ">"
	OpGreaterEqual FilterOp = ">="
	OpLessThan     FilterOp = "<"
	OpLessEqual    FilterOp = "<="
	OpRegex        FilterOp = "REGEX"
)

// FilterExpr is one candidate FILTER clause extracted from natural
// language or an LLM's structured Intent output.
type FilterExpr struct {
	Subject string // variable or predicate name the filter applies to
	Op      FilterOp
	Literal string
}

// Ordering specifies an ORDER BY clause candidate.
type Ordering struct {
	Variable  string
	Ascending bool
}

// Intent is the structured result of parsing a natural-language question,
// either by the rule-based parser or by an LLM adapter (§4.G). It is the
// only representation the Query Builder ever consumes.
type Intent struct {
	Action      IntentAction
	Keywords    []string
	Filters     []FilterExpr
	Limit       *int
	OrderBy     *Ordering
	EntityHints []string
}

// DetectAction classifies an action from the leading words of a natural
// language question, per spec.md §4.G's rule:
// "count|how many" -> COUNT, "is there|does" -> ASK, else SELECT.
func DetectAction(leadingWords string) IntentAction {
	switch {
	case hasAnyPrefix(leadingWords, "count", "how many"):
		return ActionCount
	case hasAnyPrefix(leadingWords, "is there", "does", "is ", "are there"):
		return ActionAsk
	default:
		return ActionSelect
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if len(s) >= len(p) && s[:len(p)] == p {
			return true
		}
	}
	return false
}
