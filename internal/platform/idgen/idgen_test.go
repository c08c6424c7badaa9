package idgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/careport/careport/internal/domain/person"
)

type mockChecker struct {
	taken map[string]bool
}

func (m *mockChecker) RoleIDExists(ctx context.Context, roleID string) (bool, error) {
	return m.taken[roleID], nil
}

func TestGenerate_RolePrefixes(t *testing.T) {
	g := New(&mockChecker{})

	cases := []struct {
		role   person.Role
		prefix string
	}{
		{person.RolePatient, "PAT-"},
		{person.RoleDoctor, "DOC-"},
		{person.RoleLabTechnician, "LAB-"},
		{person.RolePharmacist, "PHAR-"},
		{person.RoleAdmin, "USR-"},
	}
	for _, tc := range cases {
		id, err := g.Generate(context.Background(), tc.role)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.role, err)
		}
		if !strings.HasPrefix(id, tc.prefix) {
			t.Errorf("%s: id %q missing prefix %s", tc.role, id, tc.prefix)
		}
		digits := strings.TrimPrefix(id, tc.prefix)
		if len(digits) != 6 {
			t.Errorf("%s: id %q should carry 6 digits", tc.role, id)
		}
	}
}

func TestGenerate_RetriesOnCollision(t *testing.T) {
	g := New(&mockChecker{taken: map[string]bool{"PAT-111111": true}})
	seq := []int{111111, 222222}
	g.randFn = func() int {
		n := seq[0]
		if len(seq) > 1 {
			seq = seq[1:]
		}
		return n
	}

	id, err := g.Generate(context.Background(), person.RolePatient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "PAT-222222" {
		t.Errorf("id = %s, want PAT-222222", id)
	}
}

func TestGenerate_GivesUpAfterMaxAttempts(t *testing.T) {
	g := New(&mockChecker{taken: map[string]bool{"PAT-111111": true}})
	g.randFn = func() int { return 111111 }

	_, err := g.Generate(context.Background(), person.RolePatient)
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}
