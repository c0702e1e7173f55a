// internal/queue/queue.go
package queue

import (
	"fmt"
	"sync"
)

// Topics published during a campaign run.
const (
	TopicOutcome   = "campaign.outcome"
	TopicCompleted = "campaign.completed"
)

// Queue publishes campaign events to whoever is listening. Publishing is
// best effort from the caller's point of view: a run never fails because an
// event could not be delivered.
type Queue interface {
	Publish(topic string, payload any) error
	Close() error
}

// InMemoryQueue fans events out to in-process subscribers. Used in tests and
// when no broker is configured.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any)
}

var _ Queue = (*InMemoryQueue)(nil)

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any)),
	}
}

// Publish delivers the payload to every subscriber of the topic. Topics with
// no subscribers are a silent no-op, events are observability, not control
// flow.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	for _, handler := range handlers {
		handler(payload)
	}
	return nil
}

// Subscribe adds a handler for a topic. Handlers run synchronously on the
// publisher's goroutine and must not block.
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[topic] = append(q.handlers[topic], handler)
}

func (q *InMemoryQueue) Close() error {
	return nil
}

// Sentinel for constructors that require a broker URL.
var ErrNoBrokerURL = fmt.Errorf("broker url is empty")
