// Package store contains the REST clients for the remote services that own
// each entity collection. The gateway's validation engine is advisory; the
// remote stores re-validate authoritatively, and every response status is
// mapped onto the failure taxonomy so callers never inspect raw HTTP codes.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aerogestion/aerogate/internal/validate"
)

// TokenSource supplies the bearer credential for remote calls. The session
// component implements it; tests substitute a static token.
type TokenSource interface {
	Token() (string, error)
}

// RemoteError classifies a failed remote call. Detail carries whatever the
// service said, for logging; rendering uses the code.
type RemoteError struct {
	Code   validate.Code
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Code, e.Status, e.Detail)
}

// classify maps a non-2xx response status to its taxonomy entry. The entity
// services use 400 for unique-constraint clashes.
func classify(status int) validate.Code {
	switch status {
	case http.StatusBadRequest:
		return validate.CodeDuplicateConflict
	case http.StatusUnauthorized:
		return validate.CodeSessionExpired
	case http.StatusForbidden:
		return validate.CodeForbidden
	case http.StatusNotFound:
		return validate.CodeNotFound
	case http.StatusUnprocessableEntity:
		return validate.CodeUnprocessablePayload
	default:
		return validate.CodeServerFault
	}
}

// Client is one remote service endpoint: base URL, shared HTTP client and
// the credential source. No retries; a failed call is terminal for the
// submission that triggered it.
type Client struct {
	hc    *http.Client
	base  string
	creds TokenSource
	log   *logrus.Logger
}

// NewClient builds a client for the service at base. creds may be nil for
// unauthenticated endpoints.
func NewClient(base string, timeout time.Duration, creds TokenSource, log *logrus.Logger) *Client {
	return &Client{
		hc:    &http.Client{Timeout: timeout},
		base:  strings.TrimRight(base, "/"),
		creds: creds,
		log:   log,
	}
}

// do performs one JSON request. body and out may be nil. Transport and
// decode failures become TRANSPORT_FAILURE; non-2xx statuses are classified
// onto the taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Code: validate.CodeTransportFailure, Detail: err.Error()}
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return &RemoteError{Code: validate.CodeTransportFailure, Detail: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.creds != nil {
		token, err := c.creds.Token()
		if err != nil {
			return &RemoteError{Code: validate.CodeSessionExpired, Detail: err.Error()}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &RemoteError{Code: validate.CodeTransportFailure, Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if c.log != nil {
			c.log.WithFields(logrus.Fields{
				"method": method,
				"path":   path,
				"status": resp.StatusCode,
			}).Warn("remote store rejected request")
		}
		return &RemoteError{
			Code:   classify(resp.StatusCode),
			Status: resp.StatusCode,
			Detail: strings.TrimSpace(string(detail)),
		}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RemoteError{Code: validate.CodeTransportFailure, Detail: "decoding response: " + err.Error()}
		}
	}
	return nil
}

// postForm performs one form-encoded request, used only by the auth
// exchange which follows the OAuth2 password flow of the passenger service.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		return &RemoteError{Code: validate.CodeTransportFailure, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.hc.Do(req)
	if err != nil {
		return &RemoteError{Code: validate.CodeTransportFailure, Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RemoteError{
			Code:   classify(resp.StatusCode),
			Status: resp.StatusCode,
			Detail: strings.TrimSpace(string(detail)),
		}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RemoteError{Code: validate.CodeTransportFailure, Detail: "decoding response: " + err.Error()}
		}
	}
	return nil
}
