// Package middleware contains the HTTP middleware the gateway applies to
// protected routes.
package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/aerogestion/aerogate/internal/session"
)

// RequireSession guards mutation routes: a request is only served while an
// operator session is active. When a secret is configured the held token's
// signature is also verified locally, and a token that fails verification
// kills the session so the operator must log in again.
func RequireSession(s *session.Session, secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := s.Token()
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error_code": "SESSION_EXPIRED",
					"message":    "no active session, log in first",
				})
			}
			if secret != "" {
				tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, echo.ErrUnauthorized
					}
					return []byte(secret), nil
				})
				if err != nil || !tok.Valid {
					s.Invalidate()
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error_code": "SESSION_EXPIRED",
						"message":    "session credential rejected, log in again",
					})
				}
			}
			c.Set("username", s.Username())
			return next(c)
		}
	}
}

// RequestLogger emits one structured line per request.
func RequestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.WithFields(logrus.Fields{
				"method":  c.Request().Method,
				"path":    c.Request().URL.Path,
				"status":  c.Response().Status,
				"latency": time.Since(start).String(),
			}).Info("request")
			return err
		}
	}
}
