// Package kafka implements crawler.Crawler/Queues atop segmentio/kafka-go,
// the reference production queue (spec.md §6): one topic per priority
// bucket, so a consumer group can be sized independently per bucket
// (immediate work drained aggressively, later work left to accumulate).
package kafka

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/relabs-tech/ghcrawler/core/crawler"
)

// Queue writes to and reads from one Kafka topic per priority bucket. Each
// message is the request's Type/URL/Context (Response is transient and
// Policy/Document are re-derived by the consumer from its own fetch and
// store lookup, matching how the teacher's queue producers stay thin).
type Queue struct {
	brokers []string
	prefix  string
	writers map[crawler.Priority]*kafkago.Writer
}

// New dials a Writer for each priority bucket's topic, named
// "<prefix>-<priority>".
func New(brokers []string, prefix string) *Queue {
	q := &Queue{brokers: brokers, prefix: prefix, writers: map[crawler.Priority]*kafkago.Writer{}}
	for _, p := range []crawler.Priority{
		crawler.PriorityImmediate, crawler.PrioritySoon, crawler.PriorityNormal, crawler.PriorityLater,
	} {
		q.writers[p] = &kafkago.Writer{
			Addr:     kafkago.TCP(brokers...),
			Topic:    q.topic(p),
			Balancer: &kafkago.LeastBytes{},
		}
	}
	return q
}

func (q *Queue) topic(p crawler.Priority) string {
	return fmt.Sprintf("%s-%s", q.prefix, p)
}

// Queue enqueues req at crawler.PriorityNormal, satisfying crawler.Crawler.
func (q *Queue) Queue(req *crawler.Request) error {
	return q.Push([]*crawler.Request{req}, crawler.PriorityNormal)
}

// Queues returns the Queue itself: it satisfies crawler.Queues too.
func (q *Queue) Queues() crawler.Queues { return q }

// Push bulk-enqueues reqs at priority, satisfying crawler.Queues.
func (q *Queue) Push(reqs []*crawler.Request, priority crawler.Priority) error {
	writer, ok := q.writers[priority]
	if !ok {
		return fmt.Errorf("kafka queue: no writer for priority %q", priority)
	}
	messages := make([]kafkago.Message, 0, len(reqs))
	for _, req := range reqs {
		body, err := encode(req)
		if err != nil {
			return err
		}
		messages = append(messages, kafkago.Message{Key: []byte(req.URL), Value: body})
	}
	return writer.WriteMessages(context.Background(), messages...)
}

// NewReader opens a consumer for priority's topic, using groupID for offset
// tracking.
func NewReader(brokers []string, prefix string, priority crawler.Priority, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: brokers,
		Topic:   fmt.Sprintf("%s-%s", prefix, priority),
		GroupID: groupID,
	})
}

// Decode reverses Push's encoding, restoring Type, URL and Context only.
// Policy, Document, Response and Crawler are not carried in the message;
// the caller must set them before handing the request to the processor.
func Decode(body []byte) (*crawler.Request, error) {
	var wire struct {
		Type    string          `json:"type"`
		URL     string          `json:"url"`
		Context crawler.Context `json:"context"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("kafka queue: decoding message: %w", err)
	}
	return &crawler.Request{Type: wire.Type, URL: wire.URL, Context: wire.Context}, nil
}

func encode(req *crawler.Request) ([]byte, error) {
	wire := struct {
		Type    string          `json:"type"`
		URL     string          `json:"url"`
		Context crawler.Context `json:"context"`
	}{req.Type, req.URL, req.Context}
	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("kafka queue: encoding message: %w", err)
	}
	return body, nil
}

// Close flushes and closes every writer.
func (q *Queue) Close() error {
	var firstErr error
	for _, w := range q.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
