package notify

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/clownsinformatics/tienda/internal/messaging/kafka"
)

type recordingHub struct {
	entity  string
	payload []byte
	calls   int
}

func (h *recordingHub) Broadcast(entity string, payload []byte) {
	h.entity = entity
	h.payload = payload
	h.calls++
}

type recordingPublisher struct {
	topic string
	key   string
	event interface{}
	err   error
}

func (p *recordingPublisher) PublishEvent(topic, key string, event interface{}) error {
	p.topic = topic
	p.key = key
	p.event = event
	return p.err
}

func TestNotifierBroadcastsEnvelope(t *testing.T) {
	t.Parallel()

	hub := &recordingHub{}
	notifier := New(hub, nil)

	notifier.Created(EntityProduct, "prod-1", map[string]string{"id": "prod-1"})

	if hub.calls != 1 {
		t.Fatalf("expected 1 broadcast, got %d", hub.calls)
	}
	if hub.entity != EntityProduct {
		t.Fatalf("unexpected entity: %s", hub.entity)
	}

	var msg Notification
	if err := json.Unmarshal(hub.payload, &msg); err != nil {
		t.Fatalf("broadcast payload is not valid json: %v", err)
	}
	if msg.Entity != EntityProduct || msg.ChangeType != kafka.ChangeTypeCreate {
		t.Fatalf("unexpected envelope: %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp must be set")
	}
}

func TestNotifierPublishesToKafkaWhenConfigured(t *testing.T) {
	t.Parallel()

	hub := &recordingHub{}
	publisher := &recordingPublisher{}
	notifier := New(hub, publisher)

	notifier.Deleted(EntityOrder, "ord-9", "ord-9")

	if publisher.topic != kafka.TopicEntityEvents {
		t.Fatalf("unexpected topic: %s", publisher.topic)
	}
	if publisher.key != "ord-9" {
		t.Fatalf("unexpected key: %s", publisher.key)
	}
	event, ok := publisher.event.(kafka.EntityEvent)
	if !ok {
		t.Fatalf("unexpected event type: %T", publisher.event)
	}
	if event.ChangeType != kafka.ChangeTypeDelete {
		t.Fatalf("unexpected change type: %s", event.ChangeType)
	}
}

func TestNotifierSurvivesPublisherFailure(t *testing.T) {
	t.Parallel()

	hub := &recordingHub{}
	publisher := &recordingPublisher{err: errors.New("kafka down")}
	notifier := New(hub, publisher)

	notifier.Updated(EntityClient, "3", map[string]string{"id": "3"})

	if hub.calls != 1 {
		t.Fatalf("broadcast must happen even when kafka fails, got %d calls", hub.calls)
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	t.Parallel()

	var notifier *Notifier
	notifier.Created(EntityUser, "1", nil)
}
