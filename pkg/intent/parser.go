// Package intent implements the Intent Parser (spec.md §4.G): turns a
// natural-language question plus DiscoveryKnowledge into a structured
// Intent, either via simple rule-based extraction or, when an LLM
// collaborator is configured, via one structured completion with a
// rule-based fallback on malformed output. New code — the teacher has no
// NL-understanding concern — but the "try the smart path, fall back to the
// deterministic path on any decode failure" shape follows the same
// discipline as the teacher's provider failover in pkg/routing
// (prefer the richer path, never let its failure become the caller's
// failure).
package intent

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"sparqlgateway/pkg/llm"
	"sparqlgateway/pkg/model"
	"sparqlgateway/pkg/ontology"
)

// Parser extracts Intent from natural language, optionally assisted by an
// llm.Provider.
type Parser struct {
	LLM llm.Provider
}

// New builds a rule-only Parser. Set the LLM field afterward to enable the
// LLM-assisted path.
func New() *Parser {
	return &Parser{}
}

// Parse turns text into an Intent. knowledge and ont inform keyword
// matching and entity hints; either may be zero-valued.
func (p *Parser) Parse(ctx context.Context, text string, knowledge *model.DiscoveryKnowledge, ont ontology.Context) (*model.Intent, error) {
	if p.LLM != nil {
		if it, ok := p.tryLLM(ctx, text, knowledge, ont); ok {
			return it, nil
		}
	}
	return p.parseRuleBased(text, knowledge, ont), nil
}

// tryLLM issues one completion and attempts to decode its output as an
// Intent. Any decode or validation failure returns ok=false so the caller
// falls back to the rule-based parser (spec.md §7: LLM_MALFORMED -> silent
// fallback).
func (p *Parser) tryLLM(ctx context.Context, text string, knowledge *model.DiscoveryKnowledge, ont ontology.Context) (*model.Intent, bool) {
	prompt := buildPrompt(text, knowledge, ont)
	raw, _, err := p.LLM.Complete(ctx, prompt, intentJSONSchema)
	if err != nil {
		return nil, false
	}
	var wire intentWire
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &wire); err != nil {
		return nil, false
	}
	it, ok := wire.toIntent()
	if !ok {
		return nil, false
	}
	return it, true
}

// extractJSONObject trims anything surrounding the first {...} span, since
// LLM output commonly wraps JSON in prose or code fences despite
// instructions.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}

const intentJSONSchema = `{
  "type": "object",
  "properties": {
    "action": {"type": "string", "enum": ["SELECT", "COUNT", "ASK", "DESCRIBE"]},
    "keywords": {"type": "array", "items": {"type": "string"}},
    "filters": {"type": "array", "items": {"type": "object", "properties": {
      "subject": {"type": "string"}, "op": {"type": "string"}, "literal": {"type": "string"}
    }}},
    "limit": {"type": ["integer", "null"]},
    "order_by": {"type": ["object", "null"], "properties": {
      "variable": {"type": "string"}, "ascending": {"type": "boolean"}
    }},
    "entity_hints": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["action", "keywords"]
}`

func buildPrompt(text string, knowledge *model.DiscoveryKnowledge, ont ontology.Context) string {
	var b strings.Builder
	b.WriteString("Extract a structured query intent from this question. ")
	b.WriteString("Respond with a single JSON object matching the given schema, nothing else.\n\n")
	b.WriteString("Question: ")
	b.WriteString(text)
	b.WriteString("\n")
	if knowledge != nil && len(knowledge.Patterns) > 0 {
		b.WriteString("Known entity patterns: ")
		for label := range knowledge.Patterns {
			b.WriteString(label)
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	if len(ont.Classes) > 0 {
		b.WriteString("Known classes: ")
		b.WriteString(strings.Join(ont.Classes, ", "))
		b.WriteString("\n")
	}
	return b.String()
}

// intentWire is the JSON shape an LLM completion is asked to produce.
type intentWire struct {
	Action      string       `json:"action"`
	Keywords    []string     `json:"keywords"`
	Filters     []filterWire `json:"filters"`
	Limit       *int         `json:"limit"`
	OrderBy     *orderWire   `json:"order_by"`
	EntityHints []string     `json:"entity_hints"`
}

type filterWire struct {
	Subject string `json:"subject"`
	Op      string `json:"op"`
	Literal string `json:"literal"`
}

type orderWire struct {
	Variable  string `json:"variable"`
	Ascending bool   `json:"ascending"`
}

var validActions = map[string]model.IntentAction{
	"SELECT": model.ActionSelect, "COUNT": model.ActionCount,
	"ASK": model.ActionAsk, "DESCRIBE": model.ActionDescribe,
}

var validOps = map[string]model.FilterOp{
	"=": model.OpEqual, "!=": model.OpNotEqual, ">": model.OpGreaterThan,
	">=": model.OpGreaterEqual, "<": model.OpLessThan, "<=": model.OpLessEqual,
	"REGEX": model.OpRegex,
}

// toIntent validates and converts the wire shape. ok is false if the
// action is not one of the fixed enum values — the one thing this parser
// treats as fatal-to-the-LLM-path malformation.
func (w intentWire) toIntent() (*model.Intent, bool) {
	action, ok := validActions[strings.ToUpper(w.Action)]
	if !ok {
		return nil, false
	}
	it := &model.Intent{
		Action:      action,
		Keywords:    w.Keywords,
		Limit:       w.Limit,
		EntityHints: w.EntityHints,
	}
	for _, f := range w.Filters {
		op, ok := validOps[strings.ToUpper(f.Op)]
		if !ok {
			continue
		}
		it.Filters = append(it.Filters, model.FilterExpr{Subject: f.Subject, Op: op, Literal: f.Literal})
	}
	if w.OrderBy != nil {
		it.OrderBy = &model.Ordering{Variable: w.OrderBy.Variable, Ascending: w.OrderBy.Ascending}
	}
	return it, true
}

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "in": true, "on": true,
	"is": true, "are": true, "was": true, "were": true, "to": true, "for": true,
	"and": true, "or": true, "with": true, "that": true, "which": true, "who": true,
	"does": true, "there": true, "me": true, "show": true, "find": true, "list": true,
	"what": true, "many": true, "how": true, "count": true,
}

var (
	afterRe = regexp.MustCompile(`(?i)\bafter\s+(\d{3,4})\b`)
	beforeRe = regexp.MustCompile(`(?i)\bbefore\s+(\d{3,4})\b`)
	limitRe  = regexp.MustCompile(`(?i)\blimit\s+(\d+)\b`)
)

// parseRuleBased implements spec.md §4.G's deterministic path: lowercase
// tokenization + stopword removal for keywords, regex extraction for
// filters and limit, action classification from the leading words, and
// entity-hint matching against DiscoveryKnowledge.Patterns labels.
func (p *Parser) parseRuleBased(text string, knowledge *model.DiscoveryKnowledge, ont ontology.Context) *model.Intent {
	lower := strings.ToLower(strings.TrimSpace(text))
	it := &model.Intent{Action: model.DetectAction(lower)}

	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, ".,?!;:'\"")
		if tok == "" || stopwords[tok] {
			continue
		}
		it.Keywords = append(it.Keywords, tok)
	}

	if m := afterRe.FindStringSubmatch(lower); m != nil {
		it.Filters = append(it.Filters, model.FilterExpr{Subject: "year", Op: model.OpGreaterThan, Literal: m[1]})
	}
	if m := beforeRe.FindStringSubmatch(lower); m != nil {
		it.Filters = append(it.Filters, model.FilterExpr{Subject: "year", Op: model.OpLessThan, Literal: m[1]})
	}
	if m := limitRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			it.Limit = &n
		}
	}

	it.EntityHints = matchEntityHints(lower, knowledge, ont)
	return it
}

// matchEntityHints looks for any DiscoveryKnowledge.Patterns or
// ontology.Context.Hints label that appears as a substring of text,
// producing the mechanism spec.md §4.H relies on for endpoints like
// Wikidata ("human" -> ?person wdt:P31 wd:Q5) without the LLM hallucinating
// identifiers.
func matchEntityHints(text string, knowledge *model.DiscoveryKnowledge, ont ontology.Context) []string {
	var hints []string
	seen := map[string]bool{}
	add := func(label string) {
		if !seen[label] && strings.Contains(text, strings.ToLower(label)) {
			seen[label] = true
			hints = append(hints, label)
		}
	}
	if knowledge != nil {
		for label := range knowledge.Patterns {
			add(label)
		}
	}
	for label := range ont.Hints {
		add(label)
	}
	return hints
}
