package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
)

// AuthClient logs in and out of the supplier API.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Me(ctx context.Context) (AuthUser, error)
	Logout(ctx context.Context) error
	ResetPassword(ctx context.Context, req PasswordChange) error
	ChangePassword(ctx context.Context, req PasswordChange) error
}

// MinPasswordLength is the shortest password the API accepts.
const MinPasswordLength = 8

// PasswordChange carries the current password and the new one twice.
type PasswordChange struct {
	Current string
	New     string
	Confirm string
}

// Validate applies the API's password rules before a request is sent.
func (p PasswordChange) Validate() error {
	switch {
	case p.Current == "":
		return errors.New("current password is required")
	case len(p.New) < MinPasswordLength:
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	case p.New != p.Confirm:
		return errors.New("passwords must match")
	}
	return nil
}

type authClient struct {
	client *gophercloud.ServiceClient
}

// NewAuthClient returns an AuthClient backed by sc. A successful Login
// installs the session token on sc.
func NewAuthClient(sc *gophercloud.ServiceClient) AuthClient {
	return &authClient{client: sc}
}

var _ AuthClient = (*authClient)(nil)

type loginResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Token string   `json:"token"`
		User  AuthUser `json:"user"`
	} `json:"data"`
}

func (c *authClient) Login(ctx context.Context, email, password string) (Session, error) {
	var resp loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := postJSON(ctx, c.client, c.client.ServiceURL("api", "auth", "login"), body, &resp); err != nil {
		return Session{}, fmt.Errorf("login: %w", err)
	}
	if resp.Data.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = "no token in response"
		}
		return Session{}, fmt.Errorf("login: %s", msg)
	}
	SetToken(c.client, resp.Data.Token)
	return Session{Token: resp.Data.Token, User: resp.Data.User}, nil
}

func (c *authClient) Me(ctx context.Context) (AuthUser, error) {
	var u AuthUser
	if err := getJSON(ctx, c.client, c.client.ServiceURL("api", "auth", "me"), nil, &u); err != nil {
		return AuthUser{}, fmt.Errorf("current user: %w", err)
	}
	return u, nil
}

// Logout ends the session on the server and drops the local token even
// when the server call fails.
func (c *authClient) Logout(ctx context.Context) error {
	err := postJSON(ctx, c.client, c.client.ServiceURL("api", "auth", "logout"), nil, nil)
	SetToken(c.client, "")
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// ResetPassword sets a new password for an account flagged with
// NeedToReset. The server ends the session afterwards.
func (c *authClient) ResetPassword(ctx context.Context, req PasswordChange) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	body := map[string]string{
		"current_password":      req.Current,
		"password":              req.New,
		"password_confirmation": req.Confirm,
	}
	if err := postJSON(ctx, c.client, c.client.ServiceURL("api", "auth", "reset-password"), body, nil); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (c *authClient) ChangePassword(ctx context.Context, req PasswordChange) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	body := map[string]string{
		"currentPassword": req.Current,
		"newPassword":     req.New,
		"confirmPassword": req.Confirm,
	}
	if err := postJSON(ctx, c.client, c.client.ServiceURL("api", "auth", "change-password"), body, nil); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
