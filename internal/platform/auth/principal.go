package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller attached to every request: who they
// are and which role they hold. It is resolved once by the auth middleware
// and passed explicitly into every service operation.
type Principal struct {
	ID   uuid.UUID
	Role string
	Name string
}

// WithPrincipal returns a context carrying the given principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext extracts the authenticated principal from the request
// context. The zero Principal is returned when no auth middleware ran.
func PrincipalFromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(principalKey).(Principal)
	return p
}
