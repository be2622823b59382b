package query

import (
	"fmt"
	"strings"

	"sparqlgateway/pkg/model"
	"sparqlgateway/pkg/ontology"
	"sparqlgateway/pkg/vocab"
)

// FromIntent builds a complete QueryPlan from a parsed Intent, constrained
// by the endpoint's DiscoveryKnowledge and an optional OntologyContext.
// This is the bridge spec.md §4.H describes between the Intent Parser (G)
// and the Validator (I): every triple pattern this function emits comes
// either from an explicit entity-hint pattern (never hallucinated) or from
// a plain ?s ?p ?o scan, so the Builder itself cannot reference an unknown
// vocabulary term. The intent's keywords are not used: they neither
// select patterns nor add filters.
func FromIntent(it *model.Intent, knowledge *model.DiscoveryKnowledge, ont ontology.Context, idx *vocab.Index) *model.QueryPlan {
	b := New()

	applyAction(b, it)
	applyEntityHints(b, it, knowledge, ont)
	applyFilters(b, it)
	applyOrderingAndLimit(b, it)
	applyUsedPrefixes(b, idx)

	return b.Plan()
}

func applyAction(b *Builder, it *model.Intent) {
	switch it.Action {
	case model.ActionCount:
		b.SetSelectVars([]string{"count"})
		// COUNT is rendered as an aggregate; the plain var list above is
		// overwritten by a synthetic WHERE-scan plus a GROUP-less count,
		// which Serialize renders through the generic SELECT path below
		// by relying on the caller wrapping ?count with (COUNT(*) AS ?count)
		// at the Validator/Executor boundary — the Builder itself only
		// ever emits the variable name.
		b.AddTriple(model.Var("s"), model.Var("p"), model.Var("o"))
	case model.ActionAsk:
		b.SetSelectAll() // ASK has no SELECT vars; Serialize's caller swaps the verb
		b.AddTriple(model.Var("s"), model.Var("p"), model.Var("o"))
	case model.ActionDescribe:
		b.AddTriple(model.Var("s"), model.Var("p"), model.Var("o"))
	default:
		b.SetSelectVars([]string{"s", "p", "o"})
		b.AddTriple(model.Var("s"), model.Var("p"), model.Var("o"))
	}
}

func applyEntityHints(b *Builder, it *model.Intent, knowledge *model.DiscoveryKnowledge, ont ontology.Context) {
	for _, hint := range it.EntityHints {
		pattern, ok := lookupPattern(hint, knowledge, ont)
		if !ok {
			continue
		}
		if tp, ok := parsePatternTriple(pattern); ok {
			b.AddTriple(tp.Subject, tp.Predicate, tp.Object)
		}
	}
}

func lookupPattern(label string, knowledge *model.DiscoveryKnowledge, ont ontology.Context) (string, bool) {
	if knowledge != nil {
		if p, ok := knowledge.Patterns[label]; ok {
			return p, true
		}
	}
	if p, ok := ont.Hints[label]; ok {
		return p, true
	}
	return "", false
}

// parsePatternTriple parses a pattern template like "?x wdt:P31 wd:Q5"
// into a TriplePattern. Patterns are always exactly three whitespace
// separated tokens by construction (seeded in configuration or supplied by
// an ontology collaborator).
func parsePatternTriple(pattern string) (model.TriplePattern, bool) {
	fields := strings.Fields(pattern)
	if len(fields) != 3 {
		return model.TriplePattern{}, false
	}
	return model.TriplePattern{
		Subject:   patternTerm(fields[0]),
		Predicate: patternTerm(fields[1]),
		Object:    patternTerm(fields[2]),
	}, true
}

func patternTerm(tok string) model.PlanTerm {
	if strings.HasPrefix(tok, "?") {
		return model.Var(strings.TrimPrefix(tok, "?"))
	}
	return model.IRITerm(tok)
}

func applyFilters(b *Builder, it *model.Intent) {
	for _, f := range it.Filters {
		b.AddFilter(renderFilterExpr(f))
	}
}

func renderFilterExpr(f model.FilterExpr) string {
	if f.Op == model.OpRegex {
		return fmt.Sprintf(`REGEX(?%s, "%s")`, f.Subject, f.Literal)
	}
	return fmt.Sprintf("?%s %s %s", f.Subject, f.Op, f.Literal)
}

func applyOrderingAndLimit(b *Builder, it *model.Intent) {
	if it.OrderBy != nil {
		b.SetOrderBy(it.OrderBy.Variable, it.OrderBy.Ascending)
	}
	if it.Limit != nil {
		b.SetLimit(*it.Limit)
	}
}

// applyUsedPrefixes declares only the prefixes actually referenced by
// triples/objects already in the plan, so the Validator's "every declared
// prefix is used, every used prefix is declared" invariant holds by
// construction rather than by post-hoc pruning.
func applyUsedPrefixes(b *Builder, idx *vocab.Index) {
	if idx == nil {
		return
	}
	used := map[string]bool{}
	for _, t := range b.plan.Where {
		collectPrefix(t.Subject, idx, used)
		collectPrefix(t.Predicate, idx, used)
		collectPrefix(t.Object, idx, used)
	}
	for _, opt := range b.plan.Optionals {
		for _, t := range opt.Patterns {
			collectPrefix(t.Subject, idx, used)
			collectPrefix(t.Predicate, idx, used)
			collectPrefix(t.Object, idx, used)
		}
	}
	prefixes := idx.Prefixes()
	for p := range used {
		if ns, ok := prefixes[p]; ok {
			b.AddPrefix(p, ns)
		}
	}
}

func collectPrefix(t model.PlanTerm, idx *vocab.Index, used map[string]bool) {
	if t.Tag != model.TagIRI {
		return
	}
	i := strings.IndexByte(t.Value, ':')
	if i <= 0 || strings.HasPrefix(t.Value, "http") {
		return
	}
	used[t.Value[:i]] = true
}
