package cmd

import (
	"context"

	"github.com/decoutkhanqindev/motelctl/auth"
)

// sessionRecoverer adapts the auth service to the client.SessionRecoverer interface.
type sessionRecoverer struct{ service *auth.Service }

func (r *sessionRecoverer) RefreshSession(ctx context.Context) error {
	_, err := r.service.Refresh(ctx)
	return err
}

func (r *sessionRecoverer) ForceLogout(ctx context.Context) error {
	return r.service.Logout(ctx)
}
