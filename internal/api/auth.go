package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
)

var errEmptyToken = errors.New("login response carried no token")

// Login exchanges credentials for a token. It does not touch the session; a
// 401 here means bad credentials, not an expired session.
func (c *Client) Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error) {
	r, err := jsonRequest(http.MethodPost, "/auth/login", req)
	if err != nil {
		return nil, err
	}
	r.public = true

	data, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}

	var resp types.LoginResponse
	if err := c.decode(r, data, schemas.LoginResponse, false, &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return nil, &Error{Kind: KindDecode, Method: r.method, Path: r.path, Cause: errEmptyToken}
	}
	return &resp, nil
}

// Signup registers an account. The backend answers with a plain-text
// confirmation, which is returned as is.
func (c *Client) Signup(ctx context.Context, req types.SignupRequest) (string, error) {
	r, err := jsonRequest(http.MethodPost, "/auth/signup", req)
	if err != nil {
		return "", err
	}
	r.public = true

	data, err := c.send(ctx, r)
	if err != nil {
		return "", err
	}
	return extractMessage(data, ""), nil
}
