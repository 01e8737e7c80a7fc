// Package events publishes operation events to a message broker so other
// systems can react to changes the agent makes on the Jenkins server.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Topic is the stream operation events are published to.
const Topic = "jenkins.operations"

// OperationEvent describes one completed operation.
type OperationEvent struct {
	Tool      string    `json:"tool"`
	Resource  string    `json:"resource"`
	Target    string    `json:"target"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher sends events to a topic. The key partitions by target resource.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, value []byte) error
	Close() error
}

// PublishOperation marshals and sends one operation event.
func PublishOperation(ctx context.Context, p Publisher, event OperationEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Publish(ctx, Topic, event.Target, value)
}

// Message is a published record, retained by the in-memory publisher.
type Message struct {
	Topic string
	Key   string
	Value []byte
}

// InMemoryPublisher collects published messages. It is the default when no
// brokers are configured, and doubles as a test double.
type InMemoryPublisher struct {
	mu       sync.Mutex
	messages []Message
	closed   bool
}

// NewInMemoryPublisher creates a new InMemoryPublisher.
func NewInMemoryPublisher() *InMemoryPublisher {
	return &InMemoryPublisher{}
}

// Publish records the message.
func (p *InMemoryPublisher) Publish(_ context.Context, topic string, key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errClosed
	}
	p.messages = append(p.messages, Message{Topic: topic, Key: key, Value: value})
	return nil
}

// Messages returns a copy of everything published so far.
func (p *InMemoryPublisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Message, len(p.messages))
	copy(out, p.messages)
	return out
}

// Close marks the publisher closed.
func (p *InMemoryPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Open returns a Kafka publisher when brokers are configured, otherwise an
// in-memory one.
func Open(brokers []string) (Publisher, error) {
	if len(brokers) == 0 {
		return NewInMemoryPublisher(), nil
	}
	return NewKafkaPublisher(brokers)
}
