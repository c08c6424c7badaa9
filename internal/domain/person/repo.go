package person

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no person matches the given identifier.
var ErrNotFound = errors.New("person not found")

type Repository interface {
	Create(ctx context.Context, p *Person) error
	GetByID(ctx context.Context, id uuid.UUID) (*Person, error)
	// GetByRoleOrLoginID matches the human-readable role id or login id.
	GetByRoleOrLoginID(ctx context.Context, identifier string) (*Person, error)
	// RoleIDExists is used by the id generator's retry-until-unique loop.
	RoleIDExists(ctx context.Context, roleID string) (bool, error)
}
