package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type SessionState int

const (
	// StateUnknown is the initial state, before the first session probe
	// has resolved.
	StateUnknown SessionState = iota
	StateAuthenticated
	StateAnonymous
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// AuthResult is the user-facing outcome of a session operation. Message
// is displayable as-is; it is never a raw transport error.
type AuthResult struct {
	OK       bool
	Message  string
	Identity domain.Identity
}

type Session interface {
	// Start resolves the initial state for the given route. Routes
	// outside the variant's protected prefix resolve to anonymous
	// without touching the network.
	Start(ctx context.Context, route string)

	CheckAuth(ctx context.Context) (domain.Identity, bool)
	Login(ctx context.Context, creds domain.Credentials) AuthResult
	Register(ctx context.Context, reg domain.Registration) (AuthResult, error)
	UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (AuthResult, error)
	Logout(ctx context.Context)

	State() SessionState
	Identity() (domain.Identity, bool)
	Mirror() (domain.Identity, bool)
}
