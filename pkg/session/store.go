// Package session owns the authenticated-session lifecycle of the portal.
package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

// Preference keys for the persisted credential. Both are always written
// together on login and removed together on logout, never one without the
// other.
const (
	prefKeyToken = "token"
	prefKeyUser  = "user"
)

// Preferences is the durable key-value storage the store persists into.
// fyne.Preferences satisfies it.
type Preferences interface {
	String(key string) string
	SetString(key, value string)
	RemoveValue(key string)
}

// AuthAPI is the slice of the backend client the store needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (models.Session, error)
	Verify(ctx context.Context) (bool, error)
	SetToken(token string)
	ClearToken()
}

// Store is the single source of truth for whether a case worker is
// authenticated. It mirrors the session into durable preferences so it
// survives restarts, and installs the bearer credential on the API client.
//
// Verification failure forces a logout: any ambiguity about token validity is
// resolved by de-authenticating. This is a hard behavioral contract, not an
// optimization — callers must not assume the session survives a failed Verify.
type Store struct {
	prefs Preferences
	api   AuthAPI

	mu      sync.RWMutex
	current *models.Session
}

// New creates a session store backed by the given preferences and API client.
func New(prefs Preferences, api AuthAPI) *Store {
	return &Store{prefs: prefs, api: api}
}

// Current returns the active session, or nil when anonymous.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Login authenticates against the backend. On success the session is
// persisted, the bearer credential is installed, and the session is returned.
// Failures come back as api.ErrInvalidCredentials or api.ErrUnavailable;
// nothing escapes this boundary as a panic.
func (s *Store) Login(ctx context.Context, username, password string) (models.Session, error) {
	sess, err := s.api.Login(ctx, username, password)
	if err != nil {
		return models.Session{}, err
	}

	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return models.Session{}, err
	}
	s.prefs.SetString(prefKeyToken, sess.Token)
	s.prefs.SetString(prefKeyUser, string(userJSON))

	s.api.SetToken(sess.Token)

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	log.Printf("Logged in as %s", sess.User.Username)
	return sess, nil
}

// Restore re-establishes a session from persisted preferences without touching
// the network. The restored session is provisional until a Verify call
// confirms it; callers needing strong guarantees must verify before trusting
// it. Returns nil when nothing usable is persisted.
func (s *Store) Restore() *models.Session {
	token := s.prefs.String(prefKeyToken)
	userJSON := s.prefs.String(prefKeyUser)
	if token == "" || userJSON == "" {
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		// Corrupt persisted state is treated as no state at all.
		log.Printf("Discarding unreadable persisted session: %v", err)
		s.clearPersisted()
		return nil
	}

	sess := &models.Session{Token: token, User: user}
	s.api.SetToken(token)

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	log.Printf("Restored session for %s", user.Username)
	return sess
}

// Verify checks the current token against the backend. It returns false when
// no token exists, when the backend rejects the token, or when the check could
// not be completed — and in the latter two cases it logs the session out as a
// side effect.
func (s *Store) Verify(ctx context.Context) bool {
	if s.Current() == nil {
		return false
	}

	valid, err := s.api.Verify(ctx)
	if err != nil {
		log.Printf("Token verification failed: %v", err)
		s.Logout()
		return false
	}
	if !valid {
		log.Println("Token no longer valid, logging out")
		s.Logout()
		return false
	}
	return true
}

// Logout clears the persisted credential, removes the installed bearer token
// and drops the in-memory session. Safe to call when already logged out.
func (s *Store) Logout() {
	s.clearPersisted()
	s.api.ClearToken()

	s.mu.Lock()
	wasLoggedIn := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if wasLoggedIn {
		log.Println("Logged out")
	}
}

func (s *Store) clearPersisted() {
	s.prefs.RemoveValue(prefKeyToken)
	s.prefs.RemoveValue(prefKeyUser)
}
