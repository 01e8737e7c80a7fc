package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestPublishOperation(t *testing.T) {
	p := NewInMemoryPublisher()
	ctx := context.Background()

	event := OperationEvent{
		Tool:     "create_job",
		Resource: "job",
		Target:   "team/build",
		Status:   "success",
	}
	if err := PublishOperation(ctx, p, event); err != nil {
		t.Fatalf("PublishOperation() error = %v", err)
	}

	msgs := p.Messages()
	if len(msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(msgs))
	}
	if msgs[0].Topic != Topic {
		t.Errorf("topic = %q, want %q", msgs[0].Topic, Topic)
	}
	if msgs[0].Key != "team/build" {
		t.Errorf("key = %q, want target as partitioning key", msgs[0].Key)
	}

	var decoded OperationEvent
	if err := json.Unmarshal(msgs[0].Value, &decoded); err != nil {
		t.Fatalf("value is not valid JSON: %v", err)
	}
	if decoded.Tool != "create_job" || decoded.Status != "success" {
		t.Errorf("decoded event = %+v", decoded)
	}
	if decoded.Timestamp.IsZero() {
		t.Error("PublishOperation() did not stamp the event")
	}
}

func TestInMemoryPublisherClosed(t *testing.T) {
	p := NewInMemoryPublisher()
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := p.Publish(context.Background(), Topic, "k", []byte("v")); err == nil {
		t.Error("Publish() after Close() expected error")
	}
}

func TestOpenWithoutBrokers(t *testing.T) {
	p, err := Open(nil)
	if err != nil {
		t.Fatalf("Open(nil) error = %v", err)
	}
	if _, ok := p.(*InMemoryPublisher); !ok {
		t.Errorf("Open(nil) = %T, want *InMemoryPublisher", p)
	}
}
