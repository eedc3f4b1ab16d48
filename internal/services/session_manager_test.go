package services

import "testing"

func TestSessionManagerReturnsOneSessionPerUser(t *testing.T) {
	store := newFakeProfileStore(ownedProfile(1, 7, "Luna", true))
	registry := NewProfileRegistry(store, &fakeGrantStore{})
	manager := NewSessionManager(registry, store)

	first, err := manager.Session(7)
	if err != nil {
		t.Fatalf("first session: %v", err)
	}
	second, err := manager.Session(7)
	if err != nil {
		t.Fatalf("second session: %v", err)
	}
	if first != second {
		t.Fatal("the same user must get the same session instance")
	}

	other, err := manager.Session(8)
	if err != nil {
		t.Fatalf("other session: %v", err)
	}
	if other == first {
		t.Fatal("different users must not share a session")
	}
}

func TestSessionManagerDropRebuildsSession(t *testing.T) {
	store := newFakeProfileStore(ownedProfile(1, 7, "Luna", true))
	registry := NewProfileRegistry(store, &fakeGrantStore{})
	manager := NewSessionManager(registry, store)

	first, err := manager.Session(7)
	if err != nil {
		t.Fatalf("first session: %v", err)
	}
	manager.Drop(7)

	rebuilt, err := manager.Session(7)
	if err != nil {
		t.Fatalf("rebuilt session: %v", err)
	}
	if rebuilt == first {
		t.Fatal("drop must discard the old session instance")
	}
}
