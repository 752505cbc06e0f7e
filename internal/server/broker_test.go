package server

import (
	"encoding/json"
	"testing"
)

func TestBrokerPublishesPerCategory(t *testing.T) {
	b := NewBroker()
	a := b.Subscribe("10k")
	other := b.Subscribe("21k")

	b.Publish("10k", ChangeEvent{Type: eventDeleted, ID: "7"})

	select {
	case msg := <-a:
		if msg.Event != eventDeleted || msg.Seq == 0 {
			t.Errorf("message = %+v", msg)
		}
		var ev ChangeEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			t.Fatalf("decoding: %v", err)
		}
		if ev.Type != eventDeleted || ev.ID != "7" {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("subscriber of 10k got nothing")
	}

	select {
	case msg := <-other:
		t.Fatalf("subscriber of 21k got %s", msg.Data)
	default:
	}
}

func TestBrokerDropsForSlowSubscriber(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("10k")

	// Never blocks even when the buffer is full.
	for range cap(ch) + 5 {
		b.Publish("10k", ChangeEvent{Type: eventRemoved, ID: "1"})
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered %d events, want %d", len(ch), cap(ch))
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("10k")
	b.Unsubscribe("10k", ch)

	b.Publish("10k", ChangeEvent{Type: eventDeleted, ID: "1"})
	if len(ch) != 0 {
		t.Error("unsubscribed channel received an event")
	}
	if len(b.subs) != 0 {
		t.Errorf("subs = %d categories, want 0", len(b.subs))
	}
}
