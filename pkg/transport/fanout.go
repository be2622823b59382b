package transport

import (
	"context"
	"sync"

	"sparqlgateway/pkg/model"
)

// ManyRequest pairs a Request with its own endpoint label and connection
// config, since RequestMany typically fans out to distinct endpoints.
type ManyRequest struct {
	Endpoint string
	Req      Request
	Config   model.ConnectionConfig
}

// ManyResult is one RequestMany output slot.
type ManyResult struct {
	Response *Response
	Err      error
}

// RequestMany performs every request concurrently, bounded by the
// Transport's worker pool, and returns results in the same order as
// reqs — regardless of completion order (spec.md §5 ordering guarantee,
// §8 invariant 5: "output length = input length; output[i] corresponds
// to input[i]"). One request failing never aborts its siblings.
func (t *Transport) RequestMany(ctx context.Context, reqs []ManyRequest) []ManyResult {
	results := make([]ManyResult, len(reqs))
	var wg sync.WaitGroup
	wg.Add(len(reqs))

	for i, r := range reqs {
		i, r := i, r
		go func() {
			defer wg.Done()
			t.sem <- struct{}{}
			defer func() { <-t.sem }()

			resp, err := t.Do(ctx, r.Req, r.Config, r.Endpoint)
			results[i] = ManyResult{Response: resp, Err: err}
		}()
	}
	wg.Wait()
	return results
}
