package session

import (
	"context"
	"fmt"

	"archivedb/internal/common"
)

// Authorizer gates mutating operations on the current session's role.
type Authorizer interface {
	RequireAdmin(ctx context.Context) error
}

// Guard is the production Authorizer, backed by the session manager.
// Repositories call it before every mutation, so access control is enforced
// in one place instead of at each entry point.
type Guard struct {
	sessions *Manager
}

func NewGuard(sessions *Manager) *Guard {
	return &Guard{sessions: sessions}
}

// RequireAdmin fails with common.ErrAccessDenied unless the current session
// carries admin rights.
func (g *Guard) RequireAdmin(ctx context.Context) error {
	if !g.sessions.IsAdmin(ctx) {
		return fmt.Errorf("operation requires admin session: %w", common.ErrAccessDenied)
	}
	return nil
}

// AllowAll is an Authorizer that permits everything. Used in tests.
type AllowAll struct{}

func (AllowAll) RequireAdmin(context.Context) error { return nil }
