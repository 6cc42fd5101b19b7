// Package memory implements the priority bucketed crawler.Crawler/Queues
// contract entirely in process memory — the reference implementation
// cmd/crawler's run command uses when no Kafka brokers are configured. It
// carries no
// persistence and no at-least-once guarantee across restarts; it exists so
// the core can run without Kafka, not to replace it in production.
package memory

import (
	"sync"

	"github.com/relabs-tech/ghcrawler/core/crawler"
)

var priorityOrder = []crawler.Priority{
	crawler.PriorityImmediate,
	crawler.PrioritySoon,
	crawler.PriorityNormal,
	crawler.PriorityLater,
}

// Queue is a four-bucket FIFO, one bucket per crawler.Priority, drained
// highest-priority-first.
type Queue struct {
	mu      sync.Mutex
	buckets map[crawler.Priority][]*crawler.Request
}

// New returns an empty Queue.
func New() *Queue {
	q := &Queue{buckets: map[crawler.Priority][]*crawler.Request{}}
	for _, p := range priorityOrder {
		q.buckets[p] = nil
	}
	return q
}

// Queue enqueues req at crawler.PriorityNormal, satisfying crawler.Crawler.
func (q *Queue) Queue(req *crawler.Request) error {
	return q.Push([]*crawler.Request{req}, crawler.PriorityNormal)
}

// Queues returns the Queue itself: it satisfies crawler.Queues too.
func (q *Queue) Queues() crawler.Queues { return q }

// Push bulk-enqueues reqs at priority, satisfying crawler.Queues.
func (q *Queue) Push(reqs []*crawler.Request, priority crawler.Priority) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.buckets[priority] = append(q.buckets[priority], reqs...)
	return nil
}

// Pop removes and returns the next request in priority order, or nil if
// every bucket is empty.
func (q *Queue) Pop() *crawler.Request {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, p := range priorityOrder {
		bucket := q.buckets[p]
		if len(bucket) == 0 {
			continue
		}
		req := bucket[0]
		q.buckets[p] = bucket[1:]
		return req
	}
	return nil
}

// Len returns the total number of queued requests across all priorities.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, bucket := range q.buckets {
		n += len(bucket)
	}
	return n
}
