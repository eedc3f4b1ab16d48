package services

import "testing"

func TestPublishReachesEverySubscriberExactlyOnce(t *testing.T) {
	bus := NewProfileEventBus()

	counts := make(map[string]int)
	bus.Subscribe(func(profileID uint) { counts["stats"]++ })
	bus.Subscribe(func(profileID uint) { counts["feed"]++ })
	bus.Subscribe(func(profileID uint) { counts["header"]++ })

	bus.Publish(42)

	for name, count := range counts {
		if count != 1 {
			t.Fatalf("subscriber %s received %d events, want 1", name, count)
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewProfileEventBus()

	received := 0
	unsubscribe := bus.Subscribe(func(profileID uint) { received++ })

	bus.Publish(1)
	unsubscribe()
	bus.Publish(2)

	if received != 1 {
		t.Fatalf("expected 1 event after unsubscribe, got %d", received)
	}
	if bus.SubscriberCount() != 0 {
		t.Fatalf("expected 0 live subscribers, got %d", bus.SubscriberCount())
	}
}

func TestLateSubscriberMissesEarlierEvents(t *testing.T) {
	bus := NewProfileEventBus()
	bus.Publish(1)

	var seen []uint
	bus.Subscribe(func(profileID uint) { seen = append(seen, profileID) })

	bus.Publish(2)

	if len(seen) != 1 || seen[0] != 2 {
		t.Fatalf("late subscriber should only see later events, got %v", seen)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewProfileEventBus()
	first := bus.Subscribe(func(profileID uint) {})
	second := bus.Subscribe(func(profileID uint) {})

	first()
	first()

	if bus.SubscriberCount() != 1 {
		t.Fatalf("expected 1 live subscriber, got %d", bus.SubscriberCount())
	}
	second()
	if bus.SubscriberCount() != 0 {
		t.Fatalf("expected 0 live subscribers, got %d", bus.SubscriberCount())
	}
}
