package db

// DeletionStore groups the per-table deletes used by the profile deletion
// workflow. Each call is an independent statement on purpose: the workflow
// defines the ordering and the failure policy, not the store.
type DeletionStore struct {
	repos *Repositories
}

func NewDeletionStore(repos *Repositories) *DeletionStore {
	return &DeletionStore{repos: repos}
}

func (store *DeletionStore) DeleteMembershipsByProfile(profileID uint) error {
	return store.repos.Memberships.DeleteByProfile(profileID)
}

func (store *DeletionStore) DeleteActivitiesByProfile(profileID uint) error {
	if err := store.repos.Activities.DeleteByProfile(profileID); err != nil {
		return err
	}
	// Chat messages belong to the tracking-record category of the cascade.
	return store.repos.Messages.DeleteByProfile(profileID)
}

func (store *DeletionStore) DeleteMemoriesByProfile(profileID uint) error {
	return store.repos.Memories.DeleteByProfile(profileID)
}

func (store *DeletionStore) DeleteSchedulesByProfile(profileID uint) error {
	return store.repos.Schedules.DeleteByProfile(profileID)
}

func (store *DeletionStore) DeleteInvitationsByProfile(profileID uint) error {
	return store.repos.Invitations.DeleteByProfile(profileID)
}

func (store *DeletionStore) DeleteProfileOwnedBy(profileID uint, ownerID uint) error {
	return store.repos.Profiles.DeleteOwnedBy(profileID, ownerID)
}
