package ws

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeConn struct {
	messages [][]byte
	failWith error
	closed   bool
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestBroadcastReachesOnlyEntitySubscribers(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	products := &fakeConn{}
	categories := &fakeConn{}
	hub.Subscribe("PRODUCT", products)
	hub.Subscribe("CATEGORY", categories)

	hub.Broadcast("PRODUCT", []byte(`{"entity":"PRODUCT"}`))

	if len(products.messages) != 1 {
		t.Fatalf("product subscriber expected 1 message, got %d", len(products.messages))
	}
	if len(categories.messages) != 0 {
		t.Fatalf("category subscriber must not receive product events, got %d", len(categories.messages))
	}
}

func TestBroadcastSkipsFailingSubscriber(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	broken := &fakeConn{failWith: errors.New("write: broken pipe")}
	healthy := &fakeConn{}
	hub.Subscribe("ORDER", broken)
	hub.Subscribe("ORDER", healthy)

	hub.Broadcast("ORDER", []byte("payload"))

	if len(healthy.messages) != 1 {
		t.Fatalf("healthy subscriber expected 1 message, got %d", len(healthy.messages))
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	conn := &fakeConn{}
	hub.Subscribe("CLIENT", conn)
	if hub.Subscribers("CLIENT") != 1 {
		t.Fatalf("expected 1 subscriber, got %d", hub.Subscribers("CLIENT"))
	}

	hub.Unsubscribe("CLIENT", conn)
	hub.Unsubscribe("CLIENT", conn)

	hub.Broadcast("CLIENT", []byte("payload"))
	if len(conn.messages) != 0 {
		t.Fatalf("unsubscribed conn must not receive messages, got %d", len(conn.messages))
	}
}

func TestSubscriberChangeCallback(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	counts := make(map[string]int)
	hub.OnSubscribersChanged(func(entity string, count int) {
		counts[entity] = count
	})

	first := &fakeConn{}
	second := &fakeConn{}
	hub.Subscribe("PRODUCT", first)
	hub.Subscribe("PRODUCT", second)
	if counts["PRODUCT"] != 2 {
		t.Fatalf("expected 2 subscribers reported, got %d", counts["PRODUCT"])
	}

	hub.Unsubscribe("PRODUCT", first)
	if counts["PRODUCT"] != 1 {
		t.Fatalf("expected 1 subscriber reported, got %d", counts["PRODUCT"])
	}
}

// countingConn фиксирует число одновременно выполняющихся WriteMessage.
type countingConn struct {
	inFlight int32
	overlaps int32
	written  int32
}

func (c *countingConn) WriteMessage(_ int, _ []byte) error {
	if atomic.AddInt32(&c.inFlight, 1) > 1 {
		atomic.AddInt32(&c.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.inFlight, -1)
	atomic.AddInt32(&c.written, 1)
	return nil
}

func (c *countingConn) Close() error { return nil }

func TestConcurrentBroadcastsSerializeWritesPerConn(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	conn := &countingConn{}
	hub.Subscribe("ORDER", conn)

	const broadcasts = 200
	var wg sync.WaitGroup
	wg.Add(broadcasts)
	for i := 0; i < broadcasts; i++ {
		go func() {
			defer wg.Done()
			hub.Broadcast("ORDER", []byte("payload"))
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&conn.overlaps); got != 0 {
		t.Fatalf("expected no overlapping writes to one connection, got %d", got)
	}
	if got := atomic.LoadInt32(&conn.written); got != broadcasts {
		t.Fatalf("expected %d delivered messages, got %d", broadcasts, got)
	}
}
