package person

import (
	"context"
	"errors"
	"fmt"
)

// Resolver turns loosely-typed identifiers into person records. Every
// workflow operation that names a patient or staff member goes through it.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve looks a person up by any accepted identifier shape. Internal keys
// are tried first; a miss falls through to the role-id/login-id lookup
// rather than erroring, so a role id that happens to look like an internal
// key still resolves.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*Person, error) {
	ident := ParseIdentifier(raw)
	if ident.Kind == ByInternalKey {
		p, err := r.repo.GetByID(ctx, ident.Key)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("resolve person by key: %w", err)
		}
	}

	p, err := r.repo.GetByRoleOrLoginID(ctx, raw)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resolve person by role/login id: %w", err)
	}
	return p, nil
}

// ResolveStaff resolves an identifier like Resolve but only accepts matches
// holding one of the required roles; anything else is treated as not found.
// The internal-key lookup is only attempted when the identifier is
// structurally a valid key, so malformed input can never surface as a
// lookup error.
func (r *Resolver) ResolveStaff(ctx context.Context, raw string, required ...Role) (*Person, error) {
	p, err := r.Resolve(ctx, raw)
	if err != nil {
		return nil, err
	}
	for _, role := range required {
		if p.Role == role {
			return p, nil
		}
	}
	return nil, ErrNotFound
}
