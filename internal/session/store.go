// Package session holds the authenticated identity and token lifecycle.
// The token is the sole persisted credential; the cached identity is
// best-effort and restored on startup without a re-login.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"golang.org/x/oauth2"

	"taskboard/internal/model"
)

// ErrNoToken is returned when an operation requires a persisted token and
// none is present.
var ErrNoToken = errors.New("session: no token")

// Store owns the persisted credential and cached identity. It is safe for
// concurrent use: the gateway reads the token from request goroutines while
// the update loop mutates it.
type Store struct {
	tokenPath string
	userPath  string

	mu    sync.RWMutex
	token string
	user  *model.User
}

type tokenFile struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewStore creates a store over the given credential file paths and loads
// whatever is already persisted. A missing file is not an error; the session
// simply starts anonymous.
func NewStore(tokenPath, userPath string) (*Store, error) {
	s := &Store{tokenPath: tokenPath, userPath: userPath}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.tokenPath)
	if err == nil {
		var tf tokenFile
		if jsonErr := json.Unmarshal(raw, &tf); jsonErr == nil {
			s.token = tf.AccessToken
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	raw, err = os.ReadFile(s.userPath)
	if err == nil {
		var u model.User
		if jsonErr := json.Unmarshal(raw, &u); jsonErr == nil && u.ID != "" {
			s.user = &u
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsAuthenticated reports whether a token is present. Presence alone does
// not prove validity; CheckAuth in the update loop verifies with the server.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// User returns the cached identity, if any.
func (s *Store) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// Token implements oauth2.TokenSource so the gateway's transport can attach
// the bearer header on every request.
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: s.token, TokenType: "Bearer"}, nil
}

// SaveAuth persists the token and identity after a successful login or
// registration.
func (s *Store) SaveAuth(token string, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(tokenFile{AccessToken: token, TokenType: "Bearer"}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.tokenPath, data, 0o600); err != nil {
		return err
	}
	s.token = token
	return s.writeUserLocked(user)
}

// SetUser refreshes the cached identity without touching the token.
func (s *Store) SetUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeUserLocked(user)
}

func (s *Store) writeUserLocked(user model.User) error {
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.userPath, data, 0o600); err != nil {
		return err
	}
	s.user = &user
	return nil
}

// Clear destroys the session: token and identity are removed together, both
// in memory and on disk. Called on logout and on any 401.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil

	var firstErr error
	for _, path := range []string{s.tokenPath, s.userPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
