package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Session endpoint paths. These three calls are always issued with
// NoRecovery: a failed authenticate is a credentials problem, and a failed
// refresh is already the terminal case, so neither may trigger the recovery
// policy.
const (
	authenticatePath = "/user/authenticate"
	refreshTokenPath = "/user/refreshToken"
	logoutPath       = "/user/logout"
)

// UserProfile is the account payload returned by the authenticate endpoint
// and by /user/me.
type UserProfile struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Email       string `json:"email,omitempty"`
}

// AuthResult is the successful response of the authenticate endpoint.
type AuthResult struct {
	AccessToken string      `json:"accessToken"`
	User        UserProfile `json:"user"`
}

// PerformAuthenticate exchanges a username and password for a bearer token
// and the user's profile. The response also sets the renewal cookie on the
// client's jar.
func (c *Client) PerformAuthenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	body, err := c.Post(ctx, authenticatePath, RequestOptions{
		Body: map[string]string{
			"username": username,
			"password": password,
		},
		NoRecovery: true,
	})
	if err != nil {
		return nil, err
	}

	var result AuthResult
	if err := json.Unmarshal(body, &result); err != nil {
		log.Error().Err(err).Str("body_preview", string(body[:min(len(body), 200)])).Msg("Failed to parse authenticate response")
		return nil, fmt.Errorf("failed to parse authenticate response: %w", err)
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("authenticate response did not contain an access token")
	}
	return &result, nil
}

// PerformTokenRefresh exchanges the renewal cookie for a new bearer token.
// The cookie travels automatically on the jar; the request has no body.
func (c *Client) PerformTokenRefresh(ctx context.Context) (string, error) {
	body, err := c.Post(ctx, refreshTokenPath, RequestOptions{NoRecovery: true})
	if err != nil {
		return "", err
	}

	var result struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		log.Error().Err(err).Str("body_preview", string(body[:min(len(body), 200)])).Msg("Failed to parse refresh response")
		return "", fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("refresh response did not contain an access token")
	}
	return result.AccessToken, nil
}

// PerformLogout asks the server to invalidate the renewal cookie. Local
// state is not touched here; the auth service clears the credential store
// regardless of this call's outcome.
func (c *Client) PerformLogout(ctx context.Context) error {
	if _, err := c.Post(ctx, logoutPath, RequestOptions{NoRecovery: true}); err != nil {
		return err
	}
	return nil
}
