package services

import (
	"errors"
	"sync"
	"time"

	"github.com/nidolabs/nido/internal/models"
)

var (
	ErrSwitchInFlight     = errors.New("profile switch already in flight")
	ErrProfileNotInRoster = errors.New("profile not in roster")
	ErrNotProfileOwner    = errors.New("not the profile owner")
)

type SessionState string

const (
	StateNoProfile SessionState = "no_profile"
	StateIdle      SessionState = "idle"
	StateSwitching SessionState = "switching"
)

type SessionProfileRepository interface {
	SetActiveProfile(profileID uint, userID uint) error
	Create(profile *models.Profile) error
	CountOwned(userID uint) (int64, error)
}

// SwitchOutcome reports how a switch settled. Warning carries the soft
// failure of the remote active-flag write: the local pointer already moved,
// so the switch is not reverted, but the stored is_active flags may be
// stale until the next full reload.
type SwitchOutcome struct {
	Active     *models.ProfileView
	Generation uint64
	NoOp       bool
	Warning    string
}

// ProfileSession is the single source of truth for which profile one user
// is currently viewing. All mutations go through its operations; everything
// else only reads. One boolean gate rejects re-entrant switches; there is
// no cancellation of the in-flight store confirmation, so a slow write for
// an abandoned switch can still land after the caller moved on.
type ProfileSession struct {
	userID   uint
	profiles SessionProfileRepository
	registry *ProfileRegistry
	bus      *ProfileEventBus

	mu         sync.Mutex
	roster     Roster
	switching  bool
	generation uint64
}

func NewProfileSession(userID uint, registry *ProfileRegistry, profiles SessionProfileRepository) (*ProfileSession, error) {
	session := &ProfileSession{
		userID:   userID,
		profiles: profiles,
		registry: registry,
		bus:      NewProfileEventBus(),
	}
	if err := session.Reload(); err != nil {
		return nil, err
	}
	return session, nil
}

// Bus exposes the session's profile-change event bus for subscribers.
func (session *ProfileSession) Bus() *ProfileEventBus {
	return session.bus
}

func (session *ProfileSession) State() SessionState {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.switching {
		return StateSwitching
	}
	if session.roster.Active == nil {
		return StateNoProfile
	}
	return StateIdle
}

func (session *ProfileSession) Generation() uint64 {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.generation
}

// Snapshot returns copies of the roster and the active profile.
func (session *ProfileSession) Snapshot() ([]models.ProfileView, *models.ProfileView) {
	session.mu.Lock()
	defer session.mu.Unlock()

	profiles := make([]models.ProfileView, len(session.roster.Profiles))
	copy(profiles, session.roster.Profiles)

	if session.roster.Active == nil {
		return profiles, nil
	}
	active := *session.roster.Active
	return profiles, &active
}

// Reload refetches the roster. The current active pointer survives when
// the profile is still visible; otherwise the registry's initial selection
// applies.
func (session *ProfileSession) Reload() error {
	roster, err := session.registry.LoadProfiles(session.userID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.roster.Active != nil {
		if kept, ok := roster.Find(session.roster.Active.ID); ok {
			roster.Active = &kept
		}
	}
	session.roster = roster
	return nil
}

// Switch moves the active pointer to targetID. Switching to the already
// active profile is an idempotent no-op that reports success without a
// store call or a publish. A switch issued while another is in flight is
// rejected, not queued.
//
// For shared targets the transition is purely local. For owned targets the
// stored active flag is moved in one atomic store operation; if that write
// fails the pointer stays on the target and only a warning is reported.
func (session *ProfileSession) Switch(targetID uint) (SwitchOutcome, error) {
	session.mu.Lock()
	if session.switching {
		session.mu.Unlock()
		return SwitchOutcome{}, ErrSwitchInFlight
	}
	if session.roster.Active != nil && session.roster.Active.ID == targetID {
		outcome := SwitchOutcome{Active: session.roster.Active, Generation: session.generation, NoOp: true}
		session.mu.Unlock()
		return outcome, nil
	}

	target, ok := session.roster.Find(targetID)
	if !ok {
		session.mu.Unlock()
		return SwitchOutcome{}, ErrProfileNotInRoster
	}

	session.switching = true
	session.roster.Active = &target
	owned := !target.IsShared
	session.mu.Unlock()

	warning := ""
	if owned {
		if err := session.profiles.SetActiveProfile(targetID, session.userID); err != nil {
			warning = "active profile could not be saved; it may reset after reload"
		}
	}

	session.mu.Lock()
	session.switching = false
	if owned && warning == "" {
		for index := range session.roster.Profiles {
			if session.roster.Profiles[index].IsShared {
				continue
			}
			session.roster.Profiles[index].IsActive = session.roster.Profiles[index].ID == targetID
		}
		if refreshed, ok := session.roster.Find(targetID); ok {
			session.roster.Active = &refreshed
		}
	}
	session.generation++
	outcome := SwitchOutcome{
		Active:     session.roster.Active,
		Generation: session.generation,
		Warning:    warning,
	}
	session.mu.Unlock()

	session.bus.Publish(targetID)
	return outcome, nil
}

// ForceSharedActive puts a freshly granted shared profile into the active
// slot without the normal switch validation. The roster is refetched first
// so the new grant is visible.
func (session *ProfileSession) ForceSharedActive(profileID uint) error {
	if err := session.Reload(); err != nil {
		return err
	}

	session.mu.Lock()
	target, ok := session.roster.Find(profileID)
	if !ok {
		session.mu.Unlock()
		return ErrProfileNotInRoster
	}
	session.roster.Active = &target
	session.generation++
	session.mu.Unlock()

	session.bus.Publish(profileID)
	return nil
}

// Create adds an owned profile, enforcing the plan-tier quota. The first
// owned profile is created active and becomes the session's active profile
// when nothing was selected; later profiles are created inactive and never
// disturb the current selection.
func (session *ProfileSession) Create(owner *models.User, name string, birthDate *time.Time, photoKey string) (models.ProfileView, error) {
	ownedCount, err := session.profiles.CountOwned(session.userID)
	if err != nil {
		return models.ProfileView{}, err
	}
	if err := CheckProfileQuota(owner.EffectivePlanTier(time.Now()), ownedCount); err != nil {
		return models.ProfileView{}, err
	}

	profile := models.Profile{
		OwnerID:   session.userID,
		Name:      name,
		BirthDate: birthDate,
		PhotoKey:  photoKey,
		IsActive:  ownedCount == 0,
	}
	if err := session.profiles.Create(&profile); err != nil {
		return models.ProfileView{}, err
	}

	view := models.ProfileView{Profile: profile, IsShared: false, UserRole: models.RoleOwner}

	session.mu.Lock()
	session.roster.Profiles = append(session.roster.Profiles, view)
	becameActive := false
	if profile.IsActive && session.roster.Active == nil {
		session.roster.Active = &view
		session.generation++
		becameActive = true
	}
	session.mu.Unlock()

	if becameActive {
		session.bus.Publish(profile.ID)
	}
	return view, nil
}

// CompleteDeletion drops a deleted profile from the roster. When it was the
// active profile, the next one is selected preferring the first remaining
// owned profile, then the first remaining of any kind, then none.
func (session *ProfileSession) CompleteDeletion(profileID uint) {
	session.mu.Lock()

	remaining := make([]models.ProfileView, 0, len(session.roster.Profiles))
	for _, profile := range session.roster.Profiles {
		if profile.ID != profileID {
			remaining = append(remaining, profile)
		}
	}
	session.roster.Profiles = remaining

	wasActive := session.roster.Active != nil && session.roster.Active.ID == profileID
	var publishID uint
	publish := false
	if wasActive {
		session.roster.Active = selectAfterDeletion(remaining)
		if session.roster.Active != nil {
			session.generation++
			publishID = session.roster.Active.ID
			publish = true
		}
	}
	session.mu.Unlock()

	if publish {
		session.bus.Publish(publishID)
	}
}

func selectAfterDeletion(profiles []models.ProfileView) *models.ProfileView {
	for index := range profiles {
		if !profiles[index].IsShared {
			return &profiles[index]
		}
	}
	if len(profiles) > 0 {
		return &profiles[0]
	}
	return nil
}
