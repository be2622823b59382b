// Package federation implements the Federated Planner (spec.md §4.K): it
// combines per-endpoint triple-pattern subplans into a single SPARQL text
// built from SERVICE blocks, in selectivity order, and estimates the cost
// of running it. Grounded on the teacher's pkg/routing/strategies ordering
// pattern (a pluggable selection/ordering step over a slice of candidates)
// and pkg/routing/types.go's plain-struct request/result shape, adapted
// from "pick one provider" to "order every service".
package federation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"sparqlgateway/pkg/model"
)

// Hints carries the optimization inputs spec.md §4.K names: a selectivity
// estimate per endpoint (smaller = more selective, tried first), the set
// of endpoints whose SERVICE block should be wrapped in OPTIONAL, and the
// set whose SERVICE block should be wrapped in SERVICE SILENT.
type Hints struct {
	Selectivity    map[string]float64
	UseOptionalFor map[string]bool
	SilentFor      map[string]bool
}

// Plan combines patterns (one slice per endpoint URL), selectVars, and
// hints into a FederatedPlan with services ordered by ascending
// selectivity (most selective first, spec.md §4.K ordering policy) so
// that the most constraining bindings are established before crossing
// the wire to the next endpoint.
func Plan(patterns map[string][]model.TriplePattern, selectVars []string, modifiers model.Modifiers, hints Hints) *model.FederatedPlan {
	urls := make([]string, 0, len(patterns))
	for u := range patterns {
		urls = append(urls, u)
	}
	sort.Slice(urls, func(i, j int) bool {
		si, sj := selectivityOf(hints, urls[i]), selectivityOf(hints, urls[j])
		if si != sj {
			return si < sj
		}
		return urls[i] < urls[j] // stable tie-break for deterministic output
	})

	services := make([]model.ServiceSubplan, 0, len(urls))
	for _, u := range urls {
		services = append(services, model.ServiceSubplan{
			EndpointURL: u,
			Patterns:    patterns[u],
			Optional:    hints.UseOptionalFor[u],
			Silent:      hints.SilentFor[u],
		})
	}

	return &model.FederatedPlan{
		Services:   services,
		SelectVars: selectVars,
		Modifiers:  modifiers,
	}
}

// selectivityOf returns the configured selectivity for url, defaulting to
// 1 (least selective, "no constraint") when the caller supplied no hint.
func selectivityOf(hints Hints, url string) float64 {
	if hints.Selectivity == nil {
		return 1
	}
	if v, ok := hints.Selectivity[url]; ok {
		return v
	}
	return 1
}

// baseCostSeconds is the per-service constant term of the cost estimator
// (spec.md §4.K).
const baseCostSeconds = 2.0

// EstimateCost computes the Federated Planner's cost model over a plan
// already built by Plan, using the same hints (for each service's
// selectivity divisor): estimated_time_seconds, complexity_score, and
// recommended_timeout, exactly per spec.md §4.K's formulas. A FederatedPlan
// itself does not retain the selectivity it was ordered by, so the hints
// used to build it must be passed again here.
func EstimateCost(plan *model.FederatedPlan, hints Hints) model.CostEstimate {
	var estimatedTime float64
	var totalPatterns int

	for _, svc := range plan.Services {
		n := len(svc.Patterns)
		totalPatterns += n
		sel := selectivityOf(hints, svc.EndpointURL)
		if sel <= 0 {
			sel = 1
		}
		estimatedTime += baseCostSeconds * (1 + float64(n)*0.2) / sel
	}

	complexity := int(math.Round(float64(len(plan.Services))*10 + float64(totalPatterns)*5))
	if complexity > 100 {
		complexity = 100
	}
	if complexity < 0 {
		complexity = 0
	}

	recommended := 2 * estimatedTime
	if recommended < 60 {
		recommended = 60
	}

	return model.CostEstimate{
		EstimatedTimeSeconds: estimatedTime,
		ComplexityScore:      complexity,
		RecommendedTimeout:   recommended,
	}
}

// Serialize renders a FederatedPlan as SPARQL text: one SERVICE block per
// service, in plan order (spec.md §5 ordering guarantee: "subservices are
// emitted in planner-determined selectivity order, not call order"), each
// wrapped in SERVICE SILENT when Silent is set and in an outer OPTIONAL
// when Optional is set, followed by the plan's solution modifiers.
func Serialize(plan *model.FederatedPlan) string {
	var b strings.Builder

	b.WriteString("SELECT ")
	if len(plan.SelectVars) == 0 {
		b.WriteString("*")
	} else {
		for i, v := range plan.SelectVars {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString("?" + v)
		}
	}
	b.WriteString(" WHERE {\n")

	for _, svc := range plan.Services {
		writeService(&b, svc)
	}

	b.WriteString("}")
	writeModifiers(&b, plan.Modifiers)

	return b.String()
}

func writeModifiers(b *strings.Builder, m model.Modifiers) {
	if len(m.GroupBy) > 0 {
		b.WriteString("\nGROUP BY ")
		for i, v := range m.GroupBy {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('?')
			b.WriteString(v)
		}
	}
	if len(m.OrderBy) > 0 {
		b.WriteString("\nORDER BY ")
		for i, o := range m.OrderBy {
			if i > 0 {
				b.WriteByte(' ')
			}
			if o.Ascending {
				fmt.Fprintf(b, "ASC(?%s)", o.Variable)
			} else {
				fmt.Fprintf(b, "DESC(?%s)", o.Variable)
			}
		}
	}
	if m.Limit != nil {
		fmt.Fprintf(b, "\nLIMIT %d", *m.Limit)
	}
	if m.Offset != nil {
		fmt.Fprintf(b, "\nOFFSET %d", *m.Offset)
	}
}

func writeService(b *strings.Builder, svc model.ServiceSubplan) {
	open, close := "", ""
	if svc.Optional {
		open, close = "OPTIONAL { ", " }"
	}
	b.WriteString("  " + open + "SERVICE ")
	if svc.Silent {
		b.WriteString("SILENT ")
	}
	b.WriteString("<" + svc.EndpointURL + "> {\n")
	for _, p := range svc.Patterns {
		b.WriteString("    " + renderTriple(p) + " .\n")
	}
	b.WriteString("  }" + close + "\n")
}

func renderTriple(p model.TriplePattern) string {
	return renderTerm(p.Subject) + " " + renderTerm(p.Predicate) + " " + renderTerm(p.Object)
}

func renderTerm(t model.PlanTerm) string {
	switch t.Tag {
	case model.TagVariable:
		return "?" + t.Value
	case model.TagIRI:
		if strings.HasPrefix(t.Value, "http://") || strings.HasPrefix(t.Value, "https://") {
			return "<" + t.Value + ">"
		}
		return t.Value
	default:
		return t.Value
	}
}
