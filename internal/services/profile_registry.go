package services

import (
	"fmt"
	"log"

	"github.com/nidolabs/nido/internal/db"
	"github.com/nidolabs/nido/internal/models"
)

type RegistryProfileRepository interface {
	ListOwned(userID uint) ([]models.Profile, error)
}

type RegistryMembershipRepository interface {
	ListSharedGrants(userID uint) ([]db.SharedProfileGrant, error)
}

// Roster is the merged, ordered list of profiles visible to one user,
// owned first, plus the initially selected active profile.
type Roster struct {
	Profiles []models.ProfileView
	Active   *models.ProfileView
}

func (roster *Roster) Find(profileID uint) (models.ProfileView, bool) {
	for _, profile := range roster.Profiles {
		if profile.ID == profileID {
			return profile, true
		}
	}
	return models.ProfileView{}, false
}

// ProfileRegistry produces the authoritative roster for a signed-in user.
type ProfileRegistry struct {
	profiles    RegistryProfileRepository
	memberships RegistryMembershipRepository
}

func NewProfileRegistry(profiles RegistryProfileRepository, memberships RegistryMembershipRepository) *ProfileRegistry {
	return &ProfileRegistry{profiles: profiles, memberships: memberships}
}

// LoadProfiles merges owned profiles with profiles reachable through
// active memberships, tagging each with its per-viewer projection, and
// selects the initial active profile: the owned profile flagged active,
// else the first of the merged roster, else none.
//
// An unauthenticated caller gets an empty roster without an error. A
// failure of the shared-membership fetch degrades to owned-only profiles
// rather than aborting.
func (registry *ProfileRegistry) LoadProfiles(userID uint) (Roster, error) {
	if userID == 0 {
		return Roster{Profiles: []models.ProfileView{}}, nil
	}

	owned, err := registry.profiles.ListOwned(userID)
	if err != nil {
		return Roster{Profiles: []models.ProfileView{}}, fmt.Errorf("load owned profiles: %w", err)
	}

	roster := Roster{Profiles: make([]models.ProfileView, 0, len(owned))}
	for _, profile := range owned {
		roster.Profiles = append(roster.Profiles, models.ProfileView{
			Profile:  profile,
			IsShared: false,
			UserRole: models.RoleOwner,
		})
	}

	grants, err := registry.memberships.ListSharedGrants(userID)
	if err != nil {
		log.Printf("load shared memberships for user %d failed, continuing with owned only: %v", userID, err)
	} else {
		for _, grant := range grants {
			roster.Profiles = append(roster.Profiles, models.ProfileView{
				Profile:  grant.Profile,
				IsShared: true,
				UserRole: grant.Membership.Role,
			})
		}
	}

	roster.Active = selectInitialActive(roster.Profiles)
	return roster, nil
}

func selectInitialActive(profiles []models.ProfileView) *models.ProfileView {
	for index := range profiles {
		if !profiles[index].IsShared && profiles[index].IsActive {
			return &profiles[index]
		}
	}
	if len(profiles) > 0 {
		return &profiles[0]
	}
	return nil
}
