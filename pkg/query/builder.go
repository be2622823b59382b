// Package query implements the incremental Query Builder (spec.md §4.H):
// a stateful assembler over model.QueryPlan with one pure serialization
// function at the end. Grounded on the teacher's pkg/mpl/ast (a plain
// struct tree mutated field-by-field as the source is read) combined with
// pkg/mpl/parser/builder.go's "builder" type (one small method per AST
// node, each appending to the tree and never re-reading it). Where the
// teacher's builder derives its tree from a fixed YAML document, this
// builder derives its tree from a sequence of explicit method calls, since
// spec.md requires incremental construction with validation between
// stages rather than a single parse pass.
package query

import (
	"fmt"
	"strings"

	"sparqlgateway/pkg/model"
)

// Builder assembles a model.QueryPlan step by step. Every mutation is
// O(1) amortized; duplicate prefixes are ignored (first wins).
type Builder struct {
	plan *model.QueryPlan
}

// New returns a Builder over a fresh, empty QueryPlan.
func New() *Builder {
	return &Builder{plan: model.NewQueryPlan()}
}

// Plan returns the QueryPlan under construction. Callers (the Validator)
// may read it between builder calls; they must not mutate it directly.
func (b *Builder) Plan() *model.QueryPlan { return b.plan }

// AddPrefix binds prefix to namespace. First wins: a prefix already bound
// is left unchanged.
func (b *Builder) AddPrefix(prefix, namespace string) *Builder {
	if _, exists := b.plan.Prefixes[prefix]; exists {
		return b
	}
	b.plan.Prefixes[prefix] = namespace
	b.plan.PrefixOrder = append(b.plan.PrefixOrder, prefix)
	return b
}

// SetSelectVars sets the SELECT variable list (without leading "?").
// Calling SetSelectAll instead produces "*".
func (b *Builder) SetSelectVars(vars []string) *Builder {
	b.plan.SelectVars = vars
	b.plan.SelectAll = false
	return b
}

// SetSelectAll marks the query as SELECT * (or SELECT DISTINCT *).
func (b *Builder) SetSelectAll() *Builder {
	b.plan.SelectAll = true
	b.plan.SelectVars = nil
	return b
}

// SetDistinct toggles SELECT DISTINCT.
func (b *Builder) SetDistinct(distinct bool) *Builder {
	b.plan.Distinct = distinct
	return b
}

// AddTriple appends one WHERE-clause triple pattern.
func (b *Builder) AddTriple(s, p, o model.PlanTerm) *Builder {
	b.plan.Where = append(b.plan.Where, model.TriplePattern{Subject: s, Predicate: p, Object: o})
	return b
}

// AddFilter appends an opaque, already-rendered FILTER(...) expression
// body (expr should not include the surrounding "FILTER(...)").
func (b *Builder) AddFilter(expr string) *Builder {
	b.plan.Filters = append(b.plan.Filters, expr)
	return b
}

// AddOptional appends one OPTIONAL { ... } block of triple patterns.
func (b *Builder) AddOptional(triples []model.TriplePattern) *Builder {
	b.plan.Optionals = append(b.plan.Optionals, model.OptionalGroup{Patterns: triples})
	return b
}

// SetLimit sets the LIMIT modifier.
func (b *Builder) SetLimit(n int) *Builder {
	b.plan.Modifiers.Limit = &n
	return b
}

// SetOffset sets the OFFSET modifier.
func (b *Builder) SetOffset(n int) *Builder {
	b.plan.Modifiers.Offset = &n
	return b
}

// SetOrderBy appends an ORDER BY entry, preserving insertion order across
// multiple calls.
func (b *Builder) SetOrderBy(variable string, ascending bool) *Builder {
	b.plan.Modifiers.OrderBy = append(b.plan.Modifiers.OrderBy, model.OrderModifier{Variable: variable, Ascending: ascending})
	return b
}

// SetGroupBy sets the GROUP BY variable list.
func (b *Builder) SetGroupBy(vars []string) *Builder {
	b.plan.Modifiers.GroupBy = vars
	return b
}

// Serialize renders the plan as canonical SPARQL text (spec.md §4.H):
// PREFIX block in insertion order, SELECT (DISTINCT?) vars|*, WHERE {
// triples . FILTER(...) . OPTIONAL { ... } }, then modifiers. It is a pure
// function of the plan and never mutates it.
func Serialize(plan *model.QueryPlan) string {
	var b strings.Builder

	for _, p := range plan.PrefixOrder {
		fmt.Fprintf(&b, "PREFIX %s: <%s>\n", p, plan.Prefixes[p])
	}

	if len(plan.PrefixOrder) > 0 {
		b.WriteByte('\n')
	}

	b.WriteString("SELECT ")
	if plan.Distinct {
		b.WriteString("DISTINCT ")
	}
	switch {
	case plan.SelectAll || len(plan.SelectVars) == 0:
		b.WriteString("*")
	default:
		for i, v := range plan.SelectVars {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('?')
			b.WriteString(v)
		}
	}
	b.WriteString(" WHERE {\n")

	for _, t := range plan.Where {
		fmt.Fprintf(&b, "  %s .\n", renderTriple(t))
	}
	for _, f := range plan.Filters {
		fmt.Fprintf(&b, "  FILTER(%s) .\n", f)
	}
	for _, opt := range plan.Optionals {
		b.WriteString("  OPTIONAL {\n")
		for _, t := range opt.Patterns {
			fmt.Fprintf(&b, "    %s .\n", renderTriple(t))
		}
		b.WriteString("  }\n")
	}
	b.WriteString("}")

	writeModifiers(&b, plan.Modifiers)

	return b.String()
}

func renderTriple(t model.TriplePattern) string {
	return fmt.Sprintf("%s %s %s", renderTerm(t.Subject), renderTerm(t.Predicate), renderTerm(t.Object))
}

func renderTerm(t model.PlanTerm) string {
	switch t.Tag {
	case model.TagVariable:
		return "?" + t.Value
	case model.TagLiteral:
		return t.Value
	default: // IRI or prefixed name: http(s) IRIs are wrapped in <>, anything else is rendered as-is
		if strings.HasPrefix(t.Value, "http://") || strings.HasPrefix(t.Value, "https://") {
			return "<" + t.Value + ">"
		}
		return t.Value
	}
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
