package client

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
)

// UsersClient defines the user management operations of the supplier API.
type UsersClient interface {
	ListUsers(ctx context.Context, params ListParams) ([]User, error)
	GetUser(ctx context.Context, id string) (User, error)
	UpdateUser(ctx context.Context, id string, opts UpdateUserOpts) (User, error)
	SetUserStatus(ctx context.Context, id, status string) (User, error)
	DeleteUser(ctx context.Context, id string) error
	BulkDeleteUsers(ctx context.Context, ids []string) error
}

type usersClient struct {
	client *gophercloud.ServiceClient
}

// NewUsersClient returns a UsersClient backed by sc.
func NewUsersClient(sc *gophercloud.ServiceClient) UsersClient {
	return &usersClient{client: sc}
}

var _ UsersClient = (*usersClient)(nil)

// ListUsers returns every user matching params, walking all pages.
func (c *usersClient) ListUsers(ctx context.Context, params ListParams) ([]User, error) {
	users, err := listAll[User](ctx, c.client, c.client.ServiceURL("api", "users"), params)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (c *usersClient) GetUser(ctx context.Context, id string) (User, error) {
	var u User
	if err := getJSON(ctx, c.client, c.client.ServiceURL("api", "users", id), nil, &u); err != nil {
		return User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

func (c *usersClient) UpdateUser(ctx context.Context, id string, opts UpdateUserOpts) (User, error) {
	var u User
	if err := putJSON(ctx, c.client, c.client.ServiceURL("api", "users", id), opts, &u); err != nil {
		return User{}, fmt.Errorf("update user %s: %w", id, err)
	}
	return u, nil
}

func (c *usersClient) SetUserStatus(ctx context.Context, id, status string) (User, error) {
	var u User
	body := map[string]string{"status": status}
	if err := patchJSON(ctx, c.client, c.client.ServiceURL("api", "users", id, "status"), body, &u); err != nil {
		return User{}, fmt.Errorf("set user %s status: %w", id, err)
	}
	return u, nil
}

func (c *usersClient) DeleteUser(ctx context.Context, id string) error {
	if err := deleteResource(ctx, c.client, c.client.ServiceURL("api", "users", id)); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

// BulkDeleteUsers removes all users in ids with a single request.
func (c *usersClient) BulkDeleteUsers(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string][]string{"ids": ids}
	if err := postJSON(ctx, c.client, c.client.ServiceURL("api", "users", "bulk-delete"), body, nil); err != nil {
		return fmt.Errorf("bulk delete users: %w", err)
	}
	return nil
}
