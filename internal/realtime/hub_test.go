package realtime

import "testing"

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("leaves")
	b := hub.Subscribe("leaves")
	other := hub.Subscribe("overtimes")

	hub.Publish("leaves", map[string]any{"id": "1"})

	for _, sub := range []*Subscription{a, b} {
		select {
		case evt := <-sub.C:
			if evt.Topic != "leaves" {
				t.Fatalf("topic = %q", evt.Topic)
			}
		default:
			t.Fatal("expected event on subscription")
		}
	}
	select {
	case <-other.C:
		t.Fatal("overtimes subscriber should not receive leaves events")
	default:
	}
}

func TestTopicDroppedWhenLastSubscriberLeaves(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("holidays")
	b := hub.Subscribe("holidays")

	a.Close()
	if got := hub.SubscriberCount("holidays"); got != 1 {
		t.Fatalf("count = %d, want 1", got)
	}
	b.Close()
	if got := hub.SubscriberCount("holidays"); got != 0 {
		t.Fatalf("count = %d, want 0", got)
	}

	// Publishing to a dropped topic is a no-op.
	hub.Publish("holidays", nil)
}

func TestCloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("users")
	sub.Close()
	sub.Close()
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("payslips")
	defer sub.Close()

	for i := 0; i < cap(sub.C)+10; i++ {
		hub.Publish("payslips", i)
	}
	if len(sub.C) != cap(sub.C) {
		t.Fatalf("buffered = %d, want full buffer %d", len(sub.C), cap(sub.C))
	}
}
