package labreport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/domain/request"
	"github.com/careport/careport/internal/platform/auth"
)

type mockRepo struct {
	items map[uuid.UUID]*LabReport
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[uuid.UUID]*LabReport{}}
}

func (m *mockRepo) Create(ctx context.Context, r *LabReport) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	cp := *r
	m.items[r.ID] = &cp
	return nil
}

func (m *mockRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*LabReport, error) {
	var out []*LabReport
	for _, r := range m.items {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRepo) ListByLabSince(ctx context.Context, labID uuid.UUID, since time.Time) ([]*LabReport, error) {
	var out []*LabReport
	for _, r := range m.items {
		if r.LabID == labID && !r.CreatedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRepo) ListRecentByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*LabReport, error) {
	out, _ := m.ListByPatient(ctx, patientID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockDirectory struct {
	people map[string]*person.Person
}

func (m *mockDirectory) Resolve(ctx context.Context, identifier string) (*person.Person, error) {
	p, ok := m.people[identifier]
	if !ok {
		return nil, person.ErrNotFound
	}
	return p, nil
}

type mockLedger struct {
	requests    map[uuid.UUID]*request.Request
	completed   []uuid.UUID
	synthesized []*request.Request
	completeErr error
}

func newMockLedger() *mockLedger {
	return &mockLedger{requests: map[uuid.UUID]*request.Request{}}
}

func (m *mockLedger) Complete(ctx context.Context, actor auth.Principal, id uuid.UUID) (*request.Request, error) {
	if m.completeErr != nil {
		return nil, m.completeErr
	}
	req, ok := m.requests[id]
	if !ok {
		return nil, request.ErrNotFound
	}
	req.Status = request.StatusCompleted
	m.completed = append(m.completed, id)
	return req, nil
}

func (m *mockLedger) SynthesizeCompleted(ctx context.Context, actor auth.Principal, patientID uuid.UUID, kind request.Kind, details string, links request.ArtifactLinks) (*request.Request, error) {
	req := &request.Request{
		ID:          uuid.New(),
		DoctorID:    actor.ID,
		PatientID:   patientID,
		Kind:        kind,
		Details:     details,
		Status:      request.StatusCompleted,
		LabReportID: links.LabReportID,
	}
	m.synthesized = append(m.synthesized, req)
	return req, nil
}

type fixture struct {
	svc     *Service
	repo    *mockRepo
	ledger  *mockLedger
	lab     auth.Principal
	patient *person.Person
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	patient := &person.Person{ID: uuid.New(), Role: person.RolePatient, RoleID: "PAT-000202", FullName: "Ravi Nair"}
	f := &fixture{
		repo:    newMockRepo(),
		ledger:  newMockLedger(),
		lab:     auth.Principal{ID: uuid.New(), Role: string(person.RoleLabTechnician), Name: "Kiran Das"},
		patient: patient,
		now:     time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC),
	}
	dir := &mockDirectory{people: map[string]*person.Person{
		patient.ID.String(): patient,
		patient.RoleID:      patient,
	}}
	f.svc = NewService(f.repo, dir, f.ledger)
	f.svc.SetClock(func() time.Time { return f.now })
	return f
}

func TestRecord_StoresReport(t *testing.T) {
	f := newFixture(t)

	rep, err := f.svc.Record(context.Background(), f.lab, RecordInput{
		PatientID:  "PAT-000202",
		Title:      "CBC Panel",
		ReportType: "Blood",
		FileURL:    "/uploads/cbc.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.PatientID != f.patient.ID {
		t.Error("patient id not resolved to internal key")
	}
	if rep.LabID != f.lab.ID {
		t.Error("lab id not taken from the acting principal")
	}
	if rep.Status != StatusCompleted {
		t.Errorf("status = %s, want Completed", rep.Status)
	}
	if len(f.ledger.completed) != 0 {
		t.Error("no request should be completed without a link")
	}
}

func TestRecord_CompletesLinkedRequest(t *testing.T) {
	f := newFixture(t)

	doctorID := uuid.New()
	reqID := uuid.New()
	f.ledger.requests[reqID] = &request.Request{
		ID:        reqID,
		DoctorID:  doctorID,
		PatientID: f.patient.ID,
		Kind:      request.KindLabReport,
		Status:    request.StatusAccepted,
	}

	rep, err := f.svc.Record(context.Background(), f.lab, RecordInput{
		PatientID: f.patient.ID.String(),
		Title:     "Lipid Profile",
		FileURL:   "/uploads/lipid.pdf",
		RequestID: &reqID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.ledger.completed) != 1 || f.ledger.completed[0] != reqID {
		t.Error("linked request was not completed")
	}
	if rep.DoctorID == nil || *rep.DoctorID != doctorID {
		t.Error("report not attributed to the requesting doctor")
	}
}

func TestRecord_LinkedRequestFailureStillKeepsReport(t *testing.T) {
	f := newFixture(t)
	f.ledger.completeErr = request.ErrForbidden

	reqID := uuid.New()
	rep, err := f.svc.Record(context.Background(), f.lab, RecordInput{
		PatientID: f.patient.RoleID,
		Title:     "X-Ray",
		FileURL:   "/uploads/xray.png",
		RequestID: &reqID,
	})
	if !errors.Is(err, request.ErrForbidden) {
		t.Fatalf("expected the completion failure to surface, got %v", err)
	}
	if rep == nil {
		t.Fatal("the report itself should survive the failed completion")
	}
	if len(f.repo.items) != 1 {
		t.Errorf("expected 1 stored report, got %d", len(f.repo.items))
	}
}

func TestRecord_UnknownPatient(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Record(context.Background(), f.lab, RecordInput{
		PatientID: "PAT-999999",
		Title:     "CBC Panel",
		FileURL:   "/uploads/cbc.pdf",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecord_RequiresFields(t *testing.T) {
	f := newFixture(t)

	cases := []RecordInput{
		{Title: "CBC", FileURL: "/uploads/cbc.pdf"},
		{PatientID: f.patient.RoleID, FileURL: "/uploads/cbc.pdf"},
		{PatientID: f.patient.RoleID, Title: "CBC"},
	}
	for i, in := range cases {
		if _, err := f.svc.Record(context.Background(), f.lab, in); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestManualIssue_CreatesReportAndHistoryEntry(t *testing.T) {
	f := newFixture(t)

	rep, err := f.svc.ManualIssue(context.Background(), f.lab, ManualIssueInput{
		PatientID: "PAT-000202",
		Title:     "Thyroid Panel",
		FileURL:   "/uploads/thyroid.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.repo.items) != 1 {
		t.Fatalf("expected exactly 1 report, got %d", len(f.repo.items))
	}
	if len(f.ledger.synthesized) != 1 {
		t.Fatalf("expected exactly 1 synthesized request, got %d", len(f.ledger.synthesized))
	}
	if rep.ReportType != "Manual" {
		t.Errorf("report type = %q, want Manual", rep.ReportType)
	}

	req := f.ledger.synthesized[0]
	if req.Kind != request.KindLabReport {
		t.Errorf("kind = %s, want Lab Report", req.Kind)
	}
	if req.Status != request.StatusCompleted {
		t.Errorf("status = %s, want Completed", req.Status)
	}
	if req.LabReportID == nil || *req.LabReportID != rep.ID {
		t.Error("synthesized request not linked back to the report")
	}
	if req.Details != "Manual Report: Thyroid Panel" {
		t.Errorf("default details = %q", req.Details)
	}
	if req.DoctorID != f.lab.ID {
		t.Error("synthesized request not self-attributed to the technician")
	}
}

func TestManualIssue_UnknownPatient(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ManualIssue(context.Background(), f.lab, ManualIssueInput{
		PatientID: "nobody",
		Title:     "Thyroid Panel",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(f.repo.items) != 0 {
		t.Error("no report should be stored for an unknown patient")
	}
}
