package store

import (
	"context"
	"net/url"
)

// Auth exchanges user credentials for a bearer token at the passenger
// service, which doubles as the identity provider. The exchange follows the
// OAuth2 password flow: form-encoded username/password in, access token out.
type Auth struct {
	c *Client
}

func NewAuth(c *Client) *Auth { return &Auth{c: c} }

// tokenResponse is the token endpoint's reply.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	var out tokenResponse
	if err := a.c.postForm(ctx, "/api/v1/token", form, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}
