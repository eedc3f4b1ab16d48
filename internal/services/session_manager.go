package services

import "sync"

// SessionManager owns one profile session per signed-in user, created on
// first use and dropped on logout or identity change.
type SessionManager struct {
	registry *ProfileRegistry
	profiles SessionProfileRepository

	mu       sync.Mutex
	sessions map[uint]*ProfileSession
}

func NewSessionManager(registry *ProfileRegistry, profiles SessionProfileRepository) *SessionManager {
	return &SessionManager{
		registry: registry,
		profiles: profiles,
		sessions: make(map[uint]*ProfileSession),
	}
}

// Session returns the user's profile session, loading the roster on first
// access.
func (manager *SessionManager) Session(userID uint) (*ProfileSession, error) {
	manager.mu.Lock()
	if session, ok := manager.sessions[userID]; ok {
		manager.mu.Unlock()
		return session, nil
	}
	manager.mu.Unlock()

	session, err := NewProfileSession(userID, manager.registry, manager.profiles)
	if err != nil {
		return nil, err
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()
	if existing, ok := manager.sessions[userID]; ok {
		return existing, nil
	}
	manager.sessions[userID] = session
	return session, nil
}

// Drop discards the user's session. The next access rebuilds it from the
// store, which is how sign-out and identity changes reset profile state.
func (manager *SessionManager) Drop(userID uint) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	delete(manager.sessions, userID)
}
