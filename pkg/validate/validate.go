// Package validate implements the Query Validator (spec.md §4.I): a
// multi-pass check of a QueryPlan (or raw SPARQL text) against a
// DiscoveryKnowledge. Grounded on the teacher's pkg/mpl/validator.Validator
// orchestrator — every pass runs in order and its findings accumulate
// into one result rather than short-circuiting the whole call.
package validate

import (
	"regexp"
	"strings"

	"sparqlgateway/pkg/model"
)

// Result is the validator's verdict: valid is false only when a fatal
// check (prefix declaration, feature support, or surface syntax) fails;
// namespace and function findings are downgraded to warnings, since
// discovery is usually incomplete (spec.md §4.I step 2).
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

func (r *Result) addError(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

func (r *Result) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Validator checks QueryPlans against a DiscoveryKnowledge.
type Validator struct{}

// New returns a Validator. It holds no state; Validate has no side
// effects and repeated calls on the same inputs return equal results
// (spec.md §8 idempotence).
func New() *Validator {
	return &Validator{}
}

// Validate runs every check, in the order spec.md §4.I lists them, against
// plan and knowledge. serialized is the plan's already-rendered SPARQL
// text (from query.Serialize), reused here for the surface syntax checks
// so this package never re-implements serialization.
func (v *Validator) Validate(plan *model.QueryPlan, serialized string, knowledge *model.DiscoveryKnowledge) Result {
	r := Result{Valid: true}

	v.checkPrefixesDeclared(plan, &r)
	v.checkKnownNamespaces(plan, knowledge, &r)
	v.checkFeatureSupport(serialized, knowledge, &r)
	v.checkFunctionSupport(serialized, knowledge, &r)
	v.checkSurfaceSyntax(serialized, &r)

	return r
}

// checkPrefixesDeclared ensures every prefix referenced by a triple term
// or filter expression is present in the plan's prefix map (step 1, fatal).
func (v *Validator) checkPrefixesDeclared(plan *model.QueryPlan, r *Result) {
	for _, p := range usedPrefixes(plan) {
		if _, ok := plan.Prefixes[p]; !ok {
			r.addError("prefix '" + p + "' used but not declared")
		}
	}
}

// checkKnownNamespaces warns (never fails) when a prefixed IRI's namespace
// isn't among the endpoint's discovered namespaces (step 2).
func (v *Validator) checkKnownNamespaces(plan *model.QueryPlan, knowledge *model.DiscoveryKnowledge, r *Result) {
	if knowledge == nil {
		return
	}
	known := make(map[string]bool, len(knowledge.Namespaces))
	for _, ns := range knowledge.Namespaces {
		known[ns] = true
	}
	if len(known) == 0 {
		return // fast-mode or empty discovery: nothing to compare against
	}
	for _, t := range allTerms(plan) {
		if t.Tag != model.TagIRI {
			continue
		}
		ns, ok := resolveNamespace(t.Value, plan.Prefixes)
		if !ok {
			continue
		}
		if !known[ns] {
			r.addWarning("IRI '" + t.Value + "' falls outside every known namespace")
		}
	}
}

// featureMarkers maps a textual signal in the serialized query to the
// feature name the Validator expects to find supported (step 3, fatal).
var featureMarkers = []struct {
	name string
	re   *regexp.Regexp
}{
	{model.FeatureSERVICE, regexp.MustCompile(`\bSERVICE\b`)},
	{model.FeatureBIND, regexp.MustCompile(`\bBIND\s*\(`)},
	{model.FeatureVALUES, regexp.MustCompile(`\bVALUES\b`)},
	{model.FeatureMINUS, regexp.MustCompile(`\bMINUS\b`)},
	{model.FeaturePropertyPaths, regexp.MustCompile(`(?:[\w-]*:[\w-]+|<[^<>\s]*>)(?:\s*[/|]\s*\^?(?:[\w-]*:[\w-]+|<[^<>\s]*>)|[*+?])|\s\^(?:[\w-]*:[\w-]+|<[^<>\s]*>)`)},
}

var subqueryRe = regexp.MustCompile(`\{\s*SELECT\b`)

func (v *Validator) checkFeatureSupport(serialized string, knowledge *model.DiscoveryKnowledge, r *Result) {
	for _, m := range featureMarkers {
		if !m.re.MatchString(serialized) {
			continue
		}
		if knowledge != nil && !knowledge.SupportsFeature(m.name) {
			r.addError("feature-not-supported: " + m.name)
		}
	}
	if subqueryRe.MatchString(serialized) {
		if knowledge != nil && !knowledge.SupportsFeature(model.FeatureSUBQUERY) {
			r.addError("feature-not-supported: " + model.FeatureSUBQUERY)
		}
	}
}

// functionCallRe recognizes a bare identifier immediately followed by "("
// as a probable function call (step 4's "regex on identifier followed by
// '('").
var functionCallRe = regexp.MustCompile(`\b([A-Z][A-Z0-9_]*)\s*\(`)

// sparqlKeywords excludes SPARQL syntax itself (SELECT, WHERE, FILTER,
// ...) from being mistaken for a probed function.
var sparqlKeywords = map[string]bool{
	"SELECT": true, "WHERE": true, "FILTER": true, "OPTIONAL": true,
	"GRAPH": true, "SERVICE": true, "BIND": true, "VALUES": true,
	"MINUS": true, "ASK": true, "DESCRIBE": true, "GROUP": true,
	"ORDER": true, "LIMIT": true, "OFFSET": true, "DISTINCT": true,
	"PREFIX": true, "EXISTS": true, "UNION": true, "ASC": true, "DESC": true,
}

func (v *Validator) checkFunctionSupport(serialized string, knowledge *model.DiscoveryKnowledge, r *Result) {
	for _, m := range functionCallRe.FindAllStringSubmatch(serialized, -1) {
		name := m[1]
		if sparqlKeywords[name] {
			continue
		}
		if knowledge != nil && len(knowledge.Functions) > 0 && !knowledge.SupportsFunction(name) {
			r.addWarning("function '" + name + "' not confirmed supported by this endpoint")
		}
	}
}

// checkSurfaceSyntax performs two surface-level checks: bracket balance
// and WHERE-block presence. Terminal dots are not checked. This is
// deliberately not a full SPARQL parse (spec.md §2 Non-goals).
func (v *Validator) checkSurfaceSyntax(serialized string, r *Result) {
	if !bracketsBalanced(serialized) {
		r.addError("unbalanced brackets in emitted query")
	}
	if !strings.Contains(serialized, "WHERE {") && !strings.Contains(serialized, "WHERE{") {
		// DESCRIBE and ASK forms built by this package always include a
		// WHERE block even though the public SPARQL grammar allows DESCRIBE
		// without one; absence here means the Builder emitted something
		// unexpected.
		r.addError("missing WHERE block")
	}
}

func bracketsBalanced(s string) bool {
	var stack []byte
	pairs := map[byte]byte{')': '(', '}': '{', ']': '['}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[':
			stack = append(stack, s[i])
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[s[i]] {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

func usedPrefixes(plan *model.QueryPlan) []string {
	seen := map[string]bool{}
	var out []string
	add := func(t model.PlanTerm) {
		if t.Tag != model.TagIRI {
			return
		}
		if p, ok := prefixOf(t.Value); ok && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, t := range allTerms(plan) {
		add(t)
	}
	return out
}

func allTerms(plan *model.QueryPlan) []model.PlanTerm {
	var out []model.PlanTerm
	for _, t := range plan.Where {
		out = append(out, t.Subject, t.Predicate, t.Object)
	}
	for _, opt := range plan.Optionals {
		for _, t := range opt.Patterns {
			out = append(out, t.Subject, t.Predicate, t.Object)
		}
	}
	return out
}

func prefixOf(iri string) (string, bool) {
	if strings.HasPrefix(iri, "http://") || strings.HasPrefix(iri, "https://") {
		return "", false
	}
	i := strings.IndexByte(iri, ':')
	if i <= 0 {
		return "", false
	}
	return iri[:i], true
}

// resolveNamespace expands a prefixed IRI term's namespace via prefixes,
// returning ok=false for bare IRIs or unresolvable prefixes.
func resolveNamespace(value string, prefixes map[string]string) (string, bool) {
	p, ok := prefixOf(value)
	if !ok {
		return "", false
	}
	ns, ok := prefixes[p]
	return ns, ok
}
