package client

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// State is the client-perceived session lifecycle. There is no refreshing
// state: once a token expires the user must fully re-authenticate.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

// SessionStore holds the current bearer token. When constructed with a path
// it persists the token to that file, so a new process hydrates the previous
// session. Token reads are memory-only; no I/O happens on the request path.
type SessionStore struct {
	mu    sync.Mutex
	token string
	state State
	path  string
}

// NewSessionStore creates a store persisting to path, hydrating any token
// already on disk. An empty path keeps the session in memory only.
func NewSessionStore(path string) (*SessionStore, error) {
	s := &SessionStore{path: path}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	token := strings.TrimSpace(string(data))
	if token != "" {
		s.token = token
		s.state = StateAuthenticated
	}
	return s, nil
}

// SetToken persists the token and updates the in-memory value atomically.
// An empty token clears the session.
func (s *SessionStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		return s.clearLocked()
	}

	if s.path != "" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
			return err
		}
		if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
			return err
		}
	}
	s.token = token
	s.state = StateAuthenticated
	return nil
}

// Token returns the current bearer token with no I/O.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// State returns the current session state.
func (s *SessionStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Clear drops the token from memory and durable storage. Called on sign-out
// and whenever the server rejects the session.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

func (s *SessionStore) clearLocked() error {
	s.token = ""
	s.state = StateAnonymous
	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *SessionStore) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
