package llm

import "context"

// MockProvider is a deterministic stand-in for a real LLM adapter, useful
// for tests and for running the gateway with the LLM-assisted parsing path
// disabled without changing any call sites.
type MockProvider struct {
	// Response is returned verbatim by Complete. If Err is set, it is
	// returned instead and Response is ignored.
	Response string
	Usage    TokenUsage
	Err      error
}

func (m *MockProvider) Complete(ctx context.Context, prompt string, schema string) (string, TokenUsage, error) {
	if m.Err != nil {
		return "", TokenUsage{}, m.Err
	}
	return m.Response, m.Usage, nil
}
