package auth

import (
	"context"
	"fmt"

	"github.com/decoutkhanqindev/motelctl/client"
	"github.com/decoutkhanqindev/motelctl/db"
	"github.com/rs/zerolog/log"
)

// Service coordinates the session lifecycle: it is the only writer of the
// credential store. The resilient client reads the store on every request
// and calls back into this service (through its recoverer hook) when a
// credential is rejected.
type Service struct {
	Storer    CredentialStorer
	Transport SessionTransport
}

// NewService is the constructor for the auth service.
func NewService(storer CredentialStorer, transport SessionTransport) *Service {
	return &Service{
		Storer:    storer,
		Transport: transport,
	}
}

// Login exchanges credentials for a session. On success the bearer token is
// stored and the user's profile returned. A failure from the authenticate
// endpoint propagates verbatim and nothing is stored.
func (s *Service) Login(ctx context.Context, username, password string) (*client.UserProfile, error) {
	result, err := s.Transport.PerformAuthenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	cred := &db.Credential{Token: result.AccessToken, Username: result.User.Username}
	if err := s.Storer.Set(ctx, cred); err != nil {
		return nil, fmt.Errorf("failed to save credential: %w", err)
	}
	log.Info().Str("username", result.User.Username).Msg("Login successful, credential saved")
	return &result.User, nil
}

// Refresh renews the bearer token using the renewal cookie. On success the
// new token replaces the stored one. On failure the session is over: the
// store is cleared and the error propagates so the caller can force logout.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	token, err := s.Transport.PerformTokenRefresh(ctx)
	if err != nil {
		if clearErr := s.Storer.Clear(ctx); clearErr != nil {
			log.Error().Err(clearErr).Msg("Failed to clear credential after refresh failure")
		}
		return "", fmt.Errorf("failed to refresh session: %w", err)
	}

	cred, getErr := s.Storer.Get(ctx)
	if getErr != nil {
		log.Warn().Err(getErr).Msg("Could not read stored credential, saving refreshed token without username")
	}
	username := ""
	if cred != nil {
		username = cred.Username
	}
	if err := s.Storer.Set(ctx, &db.Credential{Token: token, Username: username}); err != nil {
		return "", fmt.Errorf("failed to save refreshed credential: %w", err)
	}
	log.Info().Msg("Token refreshed and saved successfully.")
	return token, nil
}

// Logout ends the session. The store is cleared unconditionally, even when
// the server round-trip fails: the user's intent is to end the session
// locally. A server error still propagates after the clear so the caller
// can decide whether to mention it.
func (s *Service) Logout(ctx context.Context) error {
	logoutErr := s.Transport.PerformLogout(ctx)

	if err := s.Storer.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to clear stored credential")
		return fmt.Errorf("failed to clear stored credential: %w", err)
	}
	log.Info().Msg("Credential cleared")

	if logoutErr != nil {
		return fmt.Errorf("server logout failed (local session cleared): %w", logoutErr)
	}
	return nil
}
