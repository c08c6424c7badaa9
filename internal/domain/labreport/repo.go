package labreport

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *LabReport) error
	// ListByPatient returns a patient's reports, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*LabReport, error)
	// ListByLabSince returns reports a lab created at or after the given
	// instant, newest first.
	ListByLabSince(ctx context.Context, labID uuid.UUID, since time.Time) ([]*LabReport, error)
	// ListRecentByPatient returns the patient's latest reports, newest first.
	ListRecentByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*LabReport, error)
}
