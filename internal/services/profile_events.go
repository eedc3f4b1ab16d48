package services

import "sync"

// ProfileChangeListener receives the id of the newly active profile.
type ProfileChangeListener func(profileID uint)

// ProfileEventBus fans completed profile switches out to independent
// consumers (stats caches, activity feeds) without giving them a reference
// to the session that switched. Delivery is synchronous and at-most-once
// per currently registered subscriber; ordering between subscribers is
// unspecified. A subscriber registered after a publish does not receive it.
type ProfileEventBus struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]ProfileChangeListener
}

func NewProfileEventBus() *ProfileEventBus {
	return &ProfileEventBus{listeners: make(map[int]ProfileChangeListener)}
}

// Subscribe registers a listener and returns its unsubscribe function.
func (bus *ProfileEventBus) Subscribe(listener ProfileChangeListener) func() {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	id := bus.nextID
	bus.nextID++
	bus.listeners[id] = listener

	return func() {
		bus.mu.Lock()
		defer bus.mu.Unlock()
		delete(bus.listeners, id)
	}
}

// Publish invokes every registered listener with the new active profile id.
// Callers must publish exactly once per completed switch and never for
// no-op switches.
func (bus *ProfileEventBus) Publish(profileID uint) {
	bus.mu.Lock()
	snapshot := make([]ProfileChangeListener, 0, len(bus.listeners))
	for _, listener := range bus.listeners {
		snapshot = append(snapshot, listener)
	}
	bus.mu.Unlock()

	for _, listener := range snapshot {
		listener(profileID)
	}
}

// SubscriberCount reports the number of live subscriptions.
func (bus *ProfileEventBus) SubscriberCount() int {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	return len(bus.listeners)
}
