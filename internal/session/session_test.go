package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.token, f.err
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ops",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestLoginEstablishesSession(t *testing.T) {
	auth := &fakeAuth{token: signedToken(t, time.Now().Add(time.Hour))}
	s := New(auth, logrus.New())

	require.NoError(t, s.Login(context.Background(), "ops", "secret"))
	assert.Equal(t, 1, auth.calls)
	assert.True(t, s.Valid())
	assert.Equal(t, "ops", s.Username())

	got, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, auth.token, got)
}

func TestLoginFailureLeavesNoSession(t *testing.T) {
	auth := &fakeAuth{err: errors.New("bad credentials")}
	s := New(auth, logrus.New())

	require.Error(t, s.Login(context.Background(), "ops", "wrong"))
	assert.False(t, s.Valid())
	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestTokenExpiresLocally(t *testing.T) {
	auth := &fakeAuth{token: signedToken(t, time.Now().Add(time.Minute))}
	s := New(auth, logrus.New())
	require.NoError(t, s.Login(context.Background(), "ops", "secret"))

	_, err := s.Token()
	require.NoError(t, err)

	// Advance the clock past the exp claim.
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, s.Valid())
}

func TestTokenWithoutExpIsTrusted(t *testing.T) {
	auth := &fakeAuth{token: "not-a-jwt"}
	s := New(auth, logrus.New())
	require.NoError(t, s.Login(context.Background(), "ops", "secret"))

	// No readable expiry: trusted until a store rejects it.
	got, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "not-a-jwt", got)
}

func TestInvalidate(t *testing.T) {
	auth := &fakeAuth{token: signedToken(t, time.Now().Add(time.Hour))}
	s := New(auth, logrus.New())
	require.NoError(t, s.Login(context.Background(), "ops", "secret"))

	s.Invalidate()
	assert.False(t, s.Valid())
	assert.Empty(t, s.Username())
	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoSession)

	// Invalidating twice is harmless.
	s.Invalidate()
}

func TestReloginReplacesSession(t *testing.T) {
	auth := &fakeAuth{token: signedToken(t, time.Now().Add(time.Hour))}
	s := New(auth, logrus.New())
	require.NoError(t, s.Login(context.Background(), "ops", "secret"))

	auth.token = signedToken(t, time.Now().Add(2*time.Hour))
	require.NoError(t, s.Login(context.Background(), "dispatch", "secret"))
	assert.Equal(t, "dispatch", s.Username())
}
