package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// LoginPath is the credentials exchange endpoint.
const LoginPath = "auth/login"

// Session is the result of a successful login.
type Session struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		DisplayName   string `json:"display_name"`
		IsSystemAdmin bool   `json:"is_system_admin"`
	} `json:"user"`
}

// Login exchanges credentials for an access token. It is the only call made
// without a token.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body, err := json.Marshal(map[string]string{
		"email":    strings.TrimSpace(email),
		"password": password,
	})
	if err != nil {
		return Session{}, &Error{Kind: KindApplication, Msg: "could not encode credentials", Err: err}
	}

	resp, err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      LoginPath,
		body:      bytes.NewReader(body),
		ctype:     "application/json",
		anonymous: true,
	})
	if err != nil {
		return Session{}, err
	}

	s, err := decodeOne[Session](resp)
	if err != nil {
		return Session{}, err
	}
	if s.AccessToken == "" {
		return Session{}, applicationError(resp.status, "login returned no token")
	}
	return s, nil
}
