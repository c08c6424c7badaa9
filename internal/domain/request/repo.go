package request

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/careport/careport/internal/domain/person"
)

type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)
	// AcceptPending atomically moves a Pending request to Accepted and pins
	// the target to the acceptor. Returns false when the request was no
	// longer Pending, so a second concurrent Accept cannot also win.
	AcceptPending(ctx context.Context, id, staffID uuid.UUID, at time.Time) (bool, error)
	// MarkCompleted moves a not-yet-completed request to Completed. Returns
	// false when the request was already Completed.
	MarkCompleted(ctx context.Context, id, staffID uuid.UUID, at time.Time) (bool, error)

	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Request, error)
	ListCompletedByPatient(ctx context.Context, patientID uuid.UUID) ([]*Request, error)
	ListCompletedForPatients(ctx context.Context, patientIDs []uuid.UUID) ([]*Request, error)
	// ListActiveForStaff returns Pending and Accepted requests visible to
	// the given staff member: matching role, and either untargeted or
	// targeted at them.
	ListActiveForStaff(ctx context.Context, role person.Role, staffID uuid.UUID) ([]*Request, error)
	ListCompletedByStaffSince(ctx context.Context, staffID uuid.UUID, since time.Time) ([]*Request, error)
}
