package client

import (
	"context"
	"encoding/json"
	"fmt"
)

// UserInput is the payload for creating or updating an account.
// Registration is an anonymous endpoint; the bearer header is simply absent
// (or ignored by the server) when no session exists yet.
type UserInput struct {
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	Role        string `json:"role,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Email       string `json:"email,omitempty"`
}

// FetchCurrentUser retrieves the profile of the logged-in account.
func (c *Client) FetchCurrentUser(ctx context.Context) (UserProfile, error) {
	body, err := c.Get(ctx, "/user/me", RequestOptions{})
	if err != nil {
		return UserProfile{}, err
	}

	var profile UserProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return UserProfile{}, fmt.Errorf("failed to parse user profile: %w", err)
	}
	return profile, nil
}

// RegisterUser creates a new account.
func (c *Client) RegisterUser(ctx context.Context, input UserInput) (UserProfile, error) {
	body, err := c.Post(ctx, "/user/register", RequestOptions{Body: input})
	if err != nil {
		return UserProfile{}, err
	}

	var profile UserProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return UserProfile{}, fmt.Errorf("failed to parse registered user: %w", err)
	}
	return profile, nil
}

// UpdateUser applies a partial update to an account.
func (c *Client) UpdateUser(ctx context.Context, id string, input UserInput) (UserProfile, error) {
	body, err := c.Patch(ctx, "/user/"+id, RequestOptions{Body: input})
	if err != nil {
		return UserProfile{}, err
	}

	var profile UserProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return UserProfile{}, fmt.Errorf("failed to parse updated user: %w", err)
	}
	return profile, nil
}

// ChangePassword updates the password of an account.
func (c *Client) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	_, err := c.Put(ctx, "/user/"+id+"/password", RequestOptions{
		Body: map[string]string{
			"oldPassword": oldPassword,
			"newPassword": newPassword,
		},
	})
	return err
}
