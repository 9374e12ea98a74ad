// Package session holds the operator's bearer token for calls to the remote
// stores. Expiry is judged locally by inspecting the token's exp claim, so a
// stale credential is refused before a remote round trip wastes it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// ErrNoSession is returned by Token when nobody is logged in or the stored
// token has expired.
var ErrNoSession = errors.New("session: no active session")

// Authenticator exchanges credentials for a bearer token. The passenger
// service's auth client implements it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (token string, err error)
}

// Session is a concurrency-safe holder for one operator credential.
type Session struct {
	mu       sync.RWMutex
	token    string
	username string
	expires  time.Time

	auth Authenticator
	now  func() time.Time
	log  *logrus.Logger
}

func New(auth Authenticator, log *logrus.Logger) *Session {
	return &Session{auth: auth, now: time.Now, log: log}
}

// Login exchanges credentials for a token and installs it as the current
// session, replacing any previous one.
func (s *Session) Login(ctx context.Context, username, password string) error {
	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	exp := tokenExpiry(token)

	s.mu.Lock()
	s.token = token
	s.username = username
	s.expires = exp
	s.mu.Unlock()

	if s.log != nil {
		s.log.WithField("username", username).Info("session established")
	}
	return nil
}

// Token returns the current bearer token, or ErrNoSession when none is held
// or the held one has expired. Implements store.TokenSource.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNoSession
	}
	if !s.expires.IsZero() && !s.now().Before(s.expires) {
		return "", ErrNoSession
	}
	return s.token, nil
}

// Username reports who is logged in, empty when nobody is.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return ""
	}
	return s.username
}

// Valid reports whether a usable token is currently held.
func (s *Session) Valid() bool {
	_, err := s.Token()
	return err == nil
}

// Invalidate drops the current session. The orchestrator calls it when a
// remote store answers 401, so the operator is forced to log in again
// instead of replaying a dead credential.
func (s *Session) Invalidate() {
	s.mu.Lock()
	had := s.token != ""
	user := s.username
	s.token = ""
	s.username = ""
	s.expires = time.Time{}
	s.mu.Unlock()

	if had && s.log != nil {
		s.log.WithField("username", user).Info("session invalidated")
	}
}

// tokenExpiry reads the exp claim without verifying the signature; the
// remote stores verify, the gateway only needs the lifetime. A token whose
// expiry cannot be read gets a zero time and is trusted until a store
// rejects it.
func tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
