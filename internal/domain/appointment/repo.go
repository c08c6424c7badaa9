package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	// ListByPatient returns all appointments for a patient, soonest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)
	// ListScheduledByDoctor returns a doctor's Scheduled appointments,
	// soonest first.
	ListScheduledByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error)
}
