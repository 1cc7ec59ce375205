package app

import (
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// SessionManager holds one controller per session. Sessions live in memory
// only and do not survive a restart.
type SessionManager struct {
	factory func() *Controller

	mu       sync.RWMutex
	sessions map[string]*Controller
}

// NewSessionManager creates a session manager that builds controllers with
// the given factory.
func NewSessionManager(factory func() *Controller) *SessionManager {
	return &SessionManager{
		factory:  factory,
		sessions: make(map[string]*Controller),
	}
}

// Create starts a new session and returns its id.
func (m *SessionManager) Create() (string, *Controller, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", nil, fmt.Errorf("generating session id: %w", err)
	}
	ctrl := m.factory()

	m.mu.Lock()
	m.sessions[id] = ctrl
	m.mu.Unlock()
	return id, ctrl, nil
}

// Get returns the controller for a session id.
func (m *SessionManager) Get(id string) (*Controller, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ctrl, ok := m.sessions[id]
	return ctrl, ok
}

// Delete removes a session.
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
