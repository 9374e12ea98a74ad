package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerogestion/aerogate/internal/session"
)

type fakeAuth struct {
	token string
	fail  bool
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (string, error) {
	if f.fail {
		return "", context.DeadlineExceeded
	}
	return f.token, nil
}

func postLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))
	return rec
}

func TestLoginAndLogout(t *testing.T) {
	sess := session.New(&fakeAuth{token: "tok"}, logrus.New())
	h := NewAuthHandler(sess)

	rec := postLogin(t, h, `{"username":"ops","password":"secret"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sess.Valid())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	out := httptest.NewRecorder()
	require.NoError(t, h.Logout(e.NewContext(req, out)))
	assert.Equal(t, http.StatusNoContent, out.Code)
	assert.False(t, sess.Valid())
}

func TestLoginRequiresCredentials(t *testing.T) {
	sess := session.New(&fakeAuth{token: "tok"}, logrus.New())
	h := NewAuthHandler(sess)

	rec := postLogin(t, h, `{"username":"  ","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, sess.Valid())
}

func TestMe(t *testing.T) {
	sess := session.New(&fakeAuth{token: "tok"}, logrus.New())
	h := NewAuthHandler(sess)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Me(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	require.NoError(t, sess.Login(context.Background(), "ops", "secret"))
	rec = httptest.NewRecorder()
	require.NoError(t, h.Me(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ops")
}
