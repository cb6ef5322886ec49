package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/RohitValiveti/Fitness-Tracker/internal/model"
)

type sessionState int

const (
	stateUnauthenticated sessionState = iota
	stateAuthenticated
	stateExpired
)

// SessionManager holds the one active credential for this client instance
// and decorates outgoing requests with it. All state transitions happen
// under a single lock, so two requests that both observe an expired session
// serialize: the second waiter sees the outcome of the first refresh rather
// than racing its own.
//
// Tokens only enter through Establish with a server-returned session; there
// is no way to seed a static token.
type SessionManager struct {
	mu      sync.Mutex
	state   sessionState
	session model.Session
	now     func() time.Time
}

func NewSessionManager() *SessionManager {
	return &SessionManager{now: time.Now}
}

func (m *SessionManager) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

// Establish moves the manager to Authenticated with a credential freshly
// minted by the server.
func (m *SessionManager) Establish(s model.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.state = stateAuthenticated
}

// Clear drops the credential entirely, e.g. after logout.
func (m *SessionManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = model.Session{}
	m.state = stateUnauthenticated
}

// Invalidate records a server-side rejection of the current credential.
func (m *SessionManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == stateAuthenticated {
		m.state = stateExpired
	}
}

// Attach decorates req with the bearer credential. It fails fast with an
// AuthError when the manager is Unauthenticated or Expired instead of
// letting an unauthenticated request reach a private endpoint.
func (m *SessionManager) Attach(req *http.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.validLocked(); err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.session.Token)
	return nil
}

// Session returns a copy of the current credential triple.
func (m *SessionManager) Session() model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Valid reports whether an Attach call would currently succeed.
func (m *SessionManager) Valid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validLocked() == nil
}

// UpdateToken returns the long-lived refresh credential, if one is held. It
// is available even when the session token itself has expired.
func (m *SessionManager) UpdateToken() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == stateUnauthenticated || m.session.UpdateToken == "" {
		return "", false
	}
	return m.session.UpdateToken, true
}

func (m *SessionManager) validLocked() error {
	switch m.state {
	case stateUnauthenticated:
		return &model.AuthError{Reason: "not logged in"}
	case stateExpired:
		return &model.AuthError{Reason: "session rejected by server"}
	}
	if !m.session.Valid(m.clock()) {
		m.state = stateExpired
		return &model.AuthError{Reason: "session expired"}
	}
	return nil
}
