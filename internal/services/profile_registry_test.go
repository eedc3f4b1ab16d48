package services

import (
	"errors"
	"testing"

	"github.com/nidolabs/nido/internal/db"
	"github.com/nidolabs/nido/internal/models"
)

func TestLoadProfilesMergesOwnedBeforeShared(t *testing.T) {
	store := newFakeProfileStore(
		ownedProfile(1, 7, "Luna", false),
		ownedProfile(2, 7, "Mars", true),
	)
	grants := &fakeGrantStore{grants: []db.SharedProfileGrant{
		{
			Profile:    models.Profile{ID: 9, OwnerID: 3, Name: "Nova"},
			Membership: models.FamilyMembership{ProfileID: 9, UserID: 7, Role: models.RoleViewer, Status: models.MembershipActive},
		},
	}}
	registry := NewProfileRegistry(store, grants)

	roster, err := registry.LoadProfiles(7)
	if err != nil {
		t.Fatalf("load profiles: %v", err)
	}
	if len(roster.Profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(roster.Profiles))
	}
	if roster.Profiles[0].IsShared || roster.Profiles[1].IsShared {
		t.Fatal("owned profiles must come first")
	}
	if !roster.Profiles[2].IsShared || roster.Profiles[2].UserRole != models.RoleViewer {
		t.Fatalf("shared profile projection wrong: %+v", roster.Profiles[2])
	}
	if roster.Active == nil || roster.Active.ID != 2 {
		t.Fatalf("expected owned active profile 2 selected, got %+v", roster.Active)
	}
}

func TestLoadProfilesFallsBackToFirstProfile(t *testing.T) {
	store := newFakeProfileStore(
		ownedProfile(1, 7, "Luna", false),
		ownedProfile(2, 7, "Mars", false),
	)
	registry := NewProfileRegistry(store, &fakeGrantStore{})

	roster, err := registry.LoadProfiles(7)
	if err != nil {
		t.Fatalf("load profiles: %v", err)
	}
	if roster.Active == nil || roster.Active.ID != 1 {
		t.Fatalf("expected first profile selected when none flagged, got %+v", roster.Active)
	}
}

func TestLoadProfilesDegradesWhenSharedFetchFails(t *testing.T) {
	store := newFakeProfileStore(ownedProfile(1, 7, "Luna", true))
	grants := &fakeGrantStore{err: errors.New("connection reset")}
	registry := NewProfileRegistry(store, grants)

	roster, err := registry.LoadProfiles(7)
	if err != nil {
		t.Fatalf("shared failure must not abort the load: %v", err)
	}
	if len(roster.Profiles) != 1 || roster.Profiles[0].ID != 1 {
		t.Fatalf("expected owned-only roster, got %+v", roster.Profiles)
	}
}

func TestLoadProfilesForAnonymousUserIsEmpty(t *testing.T) {
	registry := NewProfileRegistry(newFakeProfileStore(), &fakeGrantStore{})

	roster, err := registry.LoadProfiles(0)
	if err != nil {
		t.Fatalf("anonymous load must not error: %v", err)
	}
	if len(roster.Profiles) != 0 || roster.Active != nil {
		t.Fatalf("expected empty roster, got %+v", roster)
	}
}
