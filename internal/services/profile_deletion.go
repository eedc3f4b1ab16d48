package services

import (
	"fmt"
	"log"
)

// CascadeStep identifies one category of records removed when a profile is
// destroyed, in deletion order.
type CascadeStep string

const (
	StepMemberships CascadeStep = "family members"
	StepActivities  CascadeStep = "activity records"
	StepMemories    CascadeStep = "memory records"
	StepSchedules   CascadeStep = "schedule records"
	StepInvitations CascadeStep = "invitations"
	StepProfile     CascadeStep = "profile"
)

// CascadeError reports which step failed so the caller can surface the
// category by name.
type CascadeError struct {
	Step CascadeStep
	Err  error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("failed to delete %s: %v", e.Step, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

// Message is the user-facing failure text naming the failed category.
func (e *CascadeError) Message() string {
	return fmt.Sprintf("failed to delete %s", e.Step)
}

type DeletionStore interface {
	DeleteMembershipsByProfile(profileID uint) error
	DeleteActivitiesByProfile(profileID uint) error
	DeleteMemoriesByProfile(profileID uint) error
	DeleteSchedulesByProfile(profileID uint) error
	DeleteInvitationsByProfile(profileID uint) error
	DeleteProfileOwnedBy(profileID uint, ownerID uint) error
}

// ProfileDeletionWorkflow destroys an owned profile and its dependents in a
// fixed order. It is deliberately not transactional: each hard step that
// fails aborts the workflow immediately, leaving earlier deletions applied
// and later records intact, with no compensation and no retry. Only the
// invitation step is best-effort.
type ProfileDeletionWorkflow struct {
	store DeletionStore
}

func NewProfileDeletionWorkflow(store DeletionStore) *ProfileDeletionWorkflow {
	return &ProfileDeletionWorkflow{store: store}
}

// Run deletes everything scoped to profileID. The final profile deletion is
// additionally scoped to ownerID as a second authorization check.
func (workflow *ProfileDeletionWorkflow) Run(profileID uint, ownerID uint) error {
	hardSteps := []struct {
		step CascadeStep
		fn   func(uint) error
	}{
		{StepMemberships, workflow.store.DeleteMembershipsByProfile},
		{StepActivities, workflow.store.DeleteActivitiesByProfile},
		{StepMemories, workflow.store.DeleteMemoriesByProfile},
		{StepSchedules, workflow.store.DeleteSchedulesByProfile},
	}

	for _, hard := range hardSteps {
		if err := hard.fn(profileID); err != nil {
			return &CascadeError{Step: hard.step, Err: err}
		}
	}

	// Invitations are not referentially load-bearing; a failure here is
	// logged and the workflow continues.
	if err := workflow.store.DeleteInvitationsByProfile(profileID); err != nil {
		log.Printf("delete invitations for profile %d failed, continuing: %v", profileID, err)
	}

	if err := workflow.store.DeleteProfileOwnedBy(profileID, ownerID); err != nil {
		return &CascadeError{Step: StepProfile, Err: err}
	}
	return nil
}
