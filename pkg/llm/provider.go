// Package llm defines the thin collaborator boundary the core consumes for
// natural-language-to-structure tasks (spec.md §2 Non-goals: "LLM vendor
// integrations" are out of scope; the core only depends on this interface).
// The single-operation shape is grounded on the teacher's
// pkg/providers.Provider interface — doc-comment register and
// context-first signature carried over — trimmed to the one operation
// spec.md §7 actually requires: a single-shot completion with no
// streaming, since the Intent Parser (§4.G) needs exactly one JSON
// completion per call, never a conversation.
package llm

import "context"

// TokenUsage mirrors the teacher's provider-agnostic usage accounting, so a
// real adapter plugged in later can report cost the same way.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
}

// Provider is the one interface the core depends on for LLM access.
// Implementations transform prompt (and, if non-empty, schema — a JSON
// Schema string the provider should constrain its output to) into
// provider-specific wire calls and normalize the response back to plain
// text.
type Provider interface {
	// Complete issues one completion request and returns its text along
	// with token usage. It must respect ctx cancellation.
	Complete(ctx context.Context, prompt string, schema string) (text string, usage TokenUsage, err error)
}
