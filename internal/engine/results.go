// internal/engine/results.go
package engine

import (
	"sync"

	"github.com/mailburst/mailburst/internal/model"
)

// Results collects outcomes from concurrently running workers. Appends are
// mutex-guarded; entries accumulate in completion order. This is the only
// shared mutable state in a run.
type Results struct {
	mu     sync.Mutex
	sent   []model.Outcome
	failed []model.Outcome
}

func newResults() *Results {
	return &Results{}
}

func (r *Results) append(out model.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch out.Status {
	case model.StatusSent:
		r.sent = append(r.sent, out)
	default:
		r.failed = append(r.failed, out)
	}
}

// Sent returns a copy of the successful outcomes, safe to hold and mutate
// independently of the collector.
func (r *Results) Sent() []model.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Outcome(nil), r.sent...)
}

// Failed returns a copy of the failed outcomes, safe to hold and mutate
// independently of the collector.
func (r *Results) Failed() []model.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Outcome(nil), r.failed...)
}
