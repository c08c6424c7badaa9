package vitals

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	// LatestByPatient returns the most recent record, or nil when the
	// patient has none.
	LatestByPatient(ctx context.Context, patientID uuid.UUID) (*Record, error)
}
