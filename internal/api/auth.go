package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

// RegisterParams is the account-creation payload. Subscription is
// lowercased before sending; the backend rejects mixed case.
type RegisterParams struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Subscription string `json:"subscription"`
}

// LoginParams is the credential payload for authentication.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the bearer token plus profile returned on login.
type LoginResult struct {
	Token string    `json:"token"`
	User  deck.User `json:"user"`
}

// Register creates an account. The caller logs in afterwards to obtain
// a token; registration itself returns none.
func (c *Client) Register(ctx context.Context, params RegisterParams) error {
	params.Subscription = strings.ToLower(params.Subscription)
	return c.doJSON(ctx, http.MethodPost, "/api/register", params, nil)
}

// Login authenticates and returns the session credential.
func (c *Client) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	var result LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateRole sets the account role/subscription tier.
func (c *Client) UpdateRole(ctx context.Context, role string) error {
	body := map[string]string{"role": strings.ToLower(role)}
	return c.doJSON(ctx, http.MethodPut, "/api/users/role", body, nil)
}
