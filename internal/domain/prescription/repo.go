package prescription

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	// MarkCompleted flags a prescription as delivered. A missing id is a
	// silent no-op, matching the manual-issue shortcut semantics.
	MarkCompleted(ctx context.Context, id uuid.UUID) error

	// ListValidByPatient returns unexpired prescriptions, newest first.
	ListValidByPatient(ctx context.Context, patientID uuid.UUID, now time.Time) ([]*Prescription, error)
	// ListByDoctorSince returns prescriptions a doctor wrote at or after
	// the given instant, newest first.
	ListByDoctorSince(ctx context.Context, doctorID uuid.UUID, since time.Time) ([]*Prescription, error)
	// ListRecentByPatient returns the patient's latest prescriptions
	// regardless of validity, newest first.
	ListRecentByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*Prescription, error)
}
