package apiclient

import (
	"context"
	"net/http"

	"github.com/pkordes/travel-planner/internal/domain"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp creates an account and signs in as it.
func (c *Client) SignUp(ctx context.Context, email, password string) (domain.User, error) {
	var u domain.User
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/auth/signup", body: credentials{email, password}}, &u)
	return u, wrap("SignUp", err)
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	var u domain.User
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: credentials{email, password}}, &u)
	return u, wrap("SignIn", err)
}

// SignOut ends the session on the server and forgets it locally.
func (c *Client) SignOut(ctx context.Context) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/auth/logout"}, nil)
	c.mu.Lock()
	c.session = ""
	c.mu.Unlock()
	return wrap("SignOut", err)
}

// CurrentUser returns the signed-in user. Without a session it returns
// domain.ErrUnauthorized.
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var u domain.User
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me"}, &u)
	return u, wrap("CurrentUser", err)
}

// RequestPasswordReset asks the server to issue a reset token for email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/auth/password-reset", body: body}, nil)
	return wrap("RequestPasswordReset", err)
}

// ConfirmPasswordReset sets a new password using a reset token.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/auth/password-reset/confirm", body: body}, nil)
	return wrap("ConfirmPasswordReset", err)
}

// OAuthLoginURL is where a browser starts OAuth sign-in.
func (c *Client) OAuthLoginURL() string {
	return c.base + "/auth/oauth/login"
}
