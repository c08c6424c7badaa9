package person

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// -- Mock repository --

type mockRepo struct {
	people  map[uuid.UUID]*Person
	byIDErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{people: make(map[uuid.UUID]*Person)}
}

func (m *mockRepo) add(p *Person) *Person {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.people[p.ID] = p
	return p
}

func (m *mockRepo) Create(_ context.Context, p *Person) error {
	m.add(p)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Person, error) {
	if m.byIDErr != nil {
		return nil, m.byIDErr
	}
	p, ok := m.people[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) GetByRoleOrLoginID(_ context.Context, identifier string) (*Person, error) {
	for _, p := range m.people {
		if p.RoleID == identifier || p.LoginID == identifier {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) RoleIDExists(_ context.Context, roleID string) (bool, error) {
	for _, p := range m.people {
		if p.RoleID == roleID {
			return true, nil
		}
	}
	return false, nil
}

// -- ParseIdentifier --

func TestParseIdentifier(t *testing.T) {
	key := uuid.New()
	ident := ParseIdentifier(key.String())
	if ident.Kind != ByInternalKey || ident.Key != key {
		t.Errorf("expected internal key identifier, got %+v", ident)
	}

	for _, raw := range []string{"PAT-348812", "john.doe", "not-a-uuid", ""} {
		ident := ParseIdentifier(raw)
		if ident.Kind != ByRoleOrLoginID || ident.Text != raw {
			t.Errorf("%q: expected role/login identifier, got %+v", raw, ident)
		}
	}
}

// -- Resolver --

func TestResolve_ByInternalKey(t *testing.T) {
	repo := newMockRepo()
	p := repo.add(&Person{Role: RolePatient, RoleID: "PAT-111111", LoginID: "pat1", FullName: "Pat One"})

	got, err := NewResolver(repo).Resolve(context.Background(), p.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("expected %s, got %s", p.ID, got.ID)
	}
}

func TestResolve_ByRoleID(t *testing.T) {
	repo := newMockRepo()
	p := repo.add(&Person{Role: RolePatient, RoleID: "PAT-222222", LoginID: "pat2"})

	got, err := NewResolver(repo).Resolve(context.Background(), "PAT-222222")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("resolved wrong person")
	}
}

func TestResolve_ByLoginID(t *testing.T) {
	repo := newMockRepo()
	p := repo.add(&Person{Role: RoleDoctor, RoleID: "DOC-333333", LoginID: "dr.roe"})

	got, err := NewResolver(repo).Resolve(context.Background(), "dr.roe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("resolved wrong person")
	}
}

// A key-shaped identifier that matches no record must fall through to the
// role-id/login-id lookup instead of failing.
func TestResolve_KeyMissFallsThrough(t *testing.T) {
	repo := newMockRepo()
	key := uuid.New()
	p := repo.add(&Person{Role: RolePatient, RoleID: "PAT-444444", LoginID: key.String()})

	got, err := NewResolver(repo).Resolve(context.Background(), key.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("expected fallthrough to login id lookup")
	}
}

func TestResolve_NotFound(t *testing.T) {
	repo := newMockRepo()
	_, err := NewResolver(repo).Resolve(context.Background(), "PAT-999999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_RepoErrorPropagates(t *testing.T) {
	repo := newMockRepo()
	repo.byIDErr = errors.New("connection refused")

	_, err := NewResolver(repo).Resolve(context.Background(), uuid.New().String())
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected storage error to propagate, got %v", err)
	}
}

func TestResolveStaff_RoleMatch(t *testing.T) {
	repo := newMockRepo()
	lab := repo.add(&Person{Role: RoleLabTechnician, RoleID: "LAB-100001", LoginID: "lab1"})
	repo.add(&Person{Role: RoleDoctor, RoleID: "DOC-100002", LoginID: "doc1"})

	r := NewResolver(repo)

	got, err := r.ResolveStaff(context.Background(), "LAB-100001", RoleLabTechnician, RolePharmacist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != lab.ID {
		t.Errorf("resolved wrong person")
	}

	// A doctor is not staff: treated as not found, not as a role error.
	if _, err := r.ResolveStaff(context.Background(), "DOC-100002", RoleLabTechnician, RolePharmacist); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for wrong role, got %v", err)
	}
}

func TestRole_Staff(t *testing.T) {
	if !RoleLabTechnician.Staff() || !RolePharmacist.Staff() {
		t.Error("lab technician and pharmacist are staff roles")
	}
	if RoleDoctor.Staff() || RolePatient.Staff() || RoleAdmin.Staff() {
		t.Error("doctor, patient and admin are not staff roles")
	}
}

func TestSummarize_OmitsSensitiveFields(t *testing.T) {
	email := "p@example.com"
	age := 41
	p := &Person{Role: RolePatient, RoleID: "PAT-555555", FullName: "Pat Five", Email: &email, Age: &age}

	s := p.Summarize()
	if s.FullName != "Pat Five" || s.RoleID != "PAT-555555" {
		t.Errorf("summary missing display fields: %+v", s)
	}
	if s.Age == nil || *s.Age != 41 {
		t.Errorf("patient summary should carry age")
	}
	if s.HospitalName != nil || s.LabName != nil || s.PharmacyName != nil {
		t.Errorf("patient summary should not carry staff fields")
	}
}
