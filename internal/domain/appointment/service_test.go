package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	created []*Appointment
}

func (m *mockRepo) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.created = append(m.created, a)
	return nil
}

func (m *mockRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	return m.created, nil
}

func (m *mockRepo) ListScheduledByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error) {
	return m.created, nil
}

func TestSchedule_CreatesScheduledVisit(t *testing.T) {
	repo := &mockRepo{}
	s := NewScheduler(repo)

	patientID := uuid.New()
	doctorID := uuid.New()
	at := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)

	a, err := s.Schedule(context.Background(), patientID, doctorID, at, "Follow-up")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Status != StatusScheduled {
		t.Errorf("status = %s, want Scheduled", a.Status)
	}
	if a.PatientID != patientID || a.DoctorID != doctorID {
		t.Error("appointment not attributed to the given patient and doctor")
	}
	if !a.ScheduledAt.Equal(at) {
		t.Errorf("scheduled_at = %v, want %v", a.ScheduledAt, at)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored appointment, got %d", len(repo.created))
	}
}
