package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/resume-screener/internal/classify"
)

// Session is the explicit authentication context handed to everything that
// needs the token. Presence of a non-empty token is the only check made; the
// backend is the authority on whether it is still valid.
type Session struct {
	mu    sync.RWMutex
	store Store
	token string
	clock classify.Clock
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used for date-based classification.
func WithClock(clock classify.Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// New loads the current token from store.
func New(store Store, opts ...Option) (*Session, error) {
	if store == nil {
		store = &MemoryStore{}
	}
	s := &Session{store: store, clock: classify.SystemClock}
	for _, opt := range opts {
		opt(s)
	}
	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	s.token = strings.TrimSpace(token)
	return s, nil
}

// Token returns the current bearer token, "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Clock returns the session clock.
func (s *Session) Clock() classify.Clock {
	return s.clock
}

// Login stores token as the current credential.
func (s *Session) Login(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("refusing to store an empty token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(token); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Logout clears the token and returns the route to show next.
func (s *Session) Logout() (string, error) {
	if err := s.clear(); err != nil {
		return "", err
	}
	return RouteLogin, nil
}

// Invalidate drops a token the backend rejected. The in-memory token is always
// cleared, even when the store fails.
func (s *Session) Invalidate() error {
	return s.clear()
}

func (s *Session) clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
