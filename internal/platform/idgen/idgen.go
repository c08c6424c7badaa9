// Package idgen mints the human-readable role IDs people quote to each
// other at the counter, e.g. PAT-348812.
package idgen

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/careport/careport/internal/domain/person"
)

// ErrExhausted means the generator could not find a free ID within the
// retry budget. With a six-digit space this signals a nearly full prefix.
var ErrExhausted = errors.New("could not generate a unique role id")

const maxAttempts = 10

var prefixes = map[person.Role]string{
	person.RolePatient:       "PAT",
	person.RoleDoctor:        "DOC",
	person.RoleLabTechnician: "LAB",
	person.RolePharmacist:    "PHAR",
}

// UniquenessChecker is satisfied by person.Repository.
type UniquenessChecker interface {
	RoleIDExists(ctx context.Context, roleID string) (bool, error)
}

type Generator struct {
	people UniquenessChecker
	randFn func() int
}

func New(people UniquenessChecker) *Generator {
	return &Generator{people: people, randFn: func() int { return rand.Intn(900000) + 100000 }}
}

// Generate returns a fresh `<PREFIX>-<6 digits>` role ID, retrying on
// collisions. Unknown roles fall back to the USR prefix.
func (g *Generator) Generate(ctx context.Context, role person.Role) (string, error) {
	prefix, ok := prefixes[role]
	if !ok {
		prefix = "USR"
	}

	for i := 0; i < maxAttempts; i++ {
		candidate := fmt.Sprintf("%s-%06d", prefix, g.randFn())
		exists, err := g.people.RoleIDExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check role id: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}
