package api

import (
	"context"
	"encoding/json"
	"net/http"

	"lana/internal/core"
	"lana/internal/log"
)

// Credentials is the login payload: email OR phone, plus password.
type Credentials struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Registration is the payload for creating a new user. Registering does
// not log in; the caller logs in afterwards.
type Registration struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login validates the credentials against POST /validateUser and stores
// the returned token in the session store. The endpoint has returned the
// token as a plain string, a "token" field and an "access_token" field
// across backend revisions; all three are accepted. A 2xx response without
// a token in any of those shapes fails with ErrNoToken.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	raw, err := c.request(ctx, http.MethodPost, "/validateUser", creds, false)
	if err != nil {
		return "", err
	}

	token := extractToken(raw)
	if token == "" {
		return "", ErrNoToken
	}

	if err := c.session.Set(ctx, token); err != nil {
		return "", err
	}
	c.logger.InfoContext(ctx, "Logged in", log.FieldOperation, log.OpLogin)
	return token, nil
}

// Register creates a user via POST /registerUser. No token is issued.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	_, err := c.request(ctx, http.MethodPost, "/registerUser", reg, false)
	if err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "Registered user", log.FieldOperation, log.OpRegister)
	return nil
}

// Logout clears the stored session token. Purely local; the backend keeps
// no session state to invalidate.
func (c *Client) Logout(ctx context.Context) error {
	return c.session.Clear(ctx)
}

func extractToken(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, key := range []string{"token", "access_token"} {
			if tok := core.Stringify(body[key]); tok != "" {
				return tok
			}
		}
	}
	return ""
}
