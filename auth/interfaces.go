package auth

import (
	"context"

	"github.com/decoutkhanqindev/motelctl/client"
	"github.com/decoutkhanqindev/motelctl/db"
)

// CredentialStorer defines the contract for any component that can store and retrieve the session credential.
type CredentialStorer interface {
	Get(ctx context.Context) (*db.Credential, error)
	Set(ctx context.Context, cred *db.Credential) error
	Clear(ctx context.Context) error
}

// SessionTransport defines the contract for the three session round-trips
// against the server: authenticate, refresh, and logout.
type SessionTransport interface {
	PerformAuthenticate(ctx context.Context, username, password string) (*client.AuthResult, error)
	PerformTokenRefresh(ctx context.Context) (string, error)
	PerformLogout(ctx context.Context) error
}
