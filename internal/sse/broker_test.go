package sse

import (
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(time.Minute)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDailyEvent(t *testing.T) {
	b := NewBroker(time.Minute)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishDailyEvent("updated", "2025-01-15")

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: daily.updated") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"date":"2025-01-15"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestHeartbeat(t *testing.T) {
	b := NewBroker(50 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	select {
	case msg := <-ch:
		if !strings.Contains(string(msg), "event: ping") {
			t.Errorf("expected ping, got %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("no heartbeat received")
	}
}

func TestCloseIdempotent(t *testing.T) {
	b := NewBroker(time.Minute)
	ch := b.Subscribe()
	b.Close()
	b.Close()

	if _, ok := <-ch; ok {
		t.Error("client channel not closed")
	}
	// Operations after close are no-ops.
	b.PublishDailyEvent("created", "2025-01-15")
	if n := b.ClientCount(); n != 0 {
		t.Errorf("count after close = %d", n)
	}
}
