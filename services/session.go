package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrOperationInFlight is returned when a save or export is requested
// while another one is still running for the same session. The client
// control is disabled during an operation, so hitting this means a
// duplicate trigger slipped through.
var ErrOperationInFlight = errors.New("operation already in progress")

// DocumentSession owns one DocumentState for the lifetime of an editing
// session. The busy flag gives save/export at-most-one-in-flight
// semantics per session.
type DocumentSession struct {
	ID    string
	State *DocumentState

	mu   sync.Mutex
	busy bool
}

// Begin marks the session busy for a save or export. Callers must pair
// it with End.
func (s *DocumentSession) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrOperationInFlight
	}
	s.busy = true
	return nil
}

// End clears the busy flag
func (s *DocumentSession) End() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// SessionManager tracks the active editing sessions
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*DocumentSession
}

// Sessions is the global session manager
var Sessions *SessionManager

// InitializeSessions sets up the global session manager
func InitializeSessions() {
	Sessions = NewSessionManager()
}

// NewSessionManager returns an empty session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*DocumentSession)}
}

// Open creates a session with default state for a document type
func (m *SessionManager) Open(docType string) *DocumentSession {
	session := &DocumentSession{
		ID:    uuid.New().String(),
		State: NewDocumentState(docType),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session
}

// Get returns a session by id
func (m *SessionManager) Get(id string) (*DocumentSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Close removes a session
func (m *SessionManager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
