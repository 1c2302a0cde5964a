package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 12 * time.Hour

// Session binds a bearer token to a user.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Sessions is an in-memory token store.
type Sessions struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time
}

// NewSessions creates a store issuing tokens valid for ttl.
func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create issues a new token for userID.
func (s *Sessions) Create(userID string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	sess := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}
	s.sessions[sess.Token] = sess
	return sess
}

// Lookup returns the live session for token.
func (s *Sessions) Lookup(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	if !s.now().Before(sess.ExpiresAt) {
		delete(s.sessions, token)
		return Session{}, false
	}
	return sess, true
}

// Revoke drops a token.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// RevokeUser drops every token held by userID.
func (s *Sessions) RevokeUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, token)
		}
	}
}

func (s *Sessions) pruneLocked() {
	now := s.now()
	for token, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
