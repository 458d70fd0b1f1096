package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/shipapi/internal/http"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

// UsersClient implements shipapi.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// RetrieveMe implements shipapi.UsersClient.RetrieveMe.
func (c *UsersClient) RetrieveMe(ctx context.Context) (*shipapi.User, error) {
	resp, err := c.httpClient.Get(ctx, "/users", nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return decode[shipapi.User](resp, "user")
}

// Retrieve implements shipapi.UsersClient.Retrieve.
func (c *UsersClient) Retrieve(ctx context.Context, id string) (*shipapi.User, error) {
	if id == "" {
		return nil, shipapi.ErrIDRequired
	}

	resp, err := c.httpClient.Get(ctx, "/users/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return decode[shipapi.User](resp, "user")
}

// Update implements shipapi.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, id string, request *shipapi.UserUpdateRequest) (*shipapi.User, error) {
	if id == "" {
		return nil, shipapi.ErrIDRequired
	}

	resp, err := c.httpClient.Put(ctx, "/users/"+id, &userEnvelope[*shipapi.UserUpdateRequest]{User: request})
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return decode[shipapi.User](resp, "user")
}
