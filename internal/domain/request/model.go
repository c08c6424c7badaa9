package request

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/careport/careport/internal/domain/person"
)

// Kind is what the doctor is asking for.
type Kind string

const (
	KindLabReport Kind = "Lab Report"
	KindMedicine  Kind = "Medicine"
)

func (k Kind) Valid() bool {
	return k == KindLabReport || k == KindMedicine
}

// Status is the request lifecycle state. Transitions only move forward:
// Pending -> Accepted -> Completed. Completed is terminal. Manual issue
// paths enter directly at Completed for history uniformity.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusAccepted  Status = "Accepted"
	StatusCompleted Status = "Completed"
)

var (
	// ErrNotFound means the request id does not resolve.
	ErrNotFound = errors.New("request not found")
	// ErrForbidden means the caller's role or identity does not match the
	// request's target.
	ErrForbidden = errors.New("not authorized for this request")
	// ErrInvalidTarget means the named target staff exists but holds the
	// wrong role for the request.
	ErrInvalidTarget = errors.New("target staff role does not match request")
	// ErrConflict means the request already moved past the state the
	// transition expected, e.g. a second Accept losing the race.
	ErrConflict = errors.New("request state changed")
	// ErrValidation means the input itself is malformed.
	ErrValidation = errors.New("invalid request input")
)

// Request routes a clinical task from a doctor to lab or pharmacy staff.
// TargetStaffID nil means the request is open to any staff holding
// TargetRole; accepting pins it to the acceptor.
type Request struct {
	ID             uuid.UUID   `json:"id"`
	DoctorID       uuid.UUID   `json:"doctor_id"`
	PatientID      uuid.UUID   `json:"patient_id"`
	TargetRole     person.Role `json:"target_role"`
	TargetStaffID  *uuid.UUID  `json:"target_staff_id,omitempty"`
	PrescriptionID *uuid.UUID  `json:"prescription_id,omitempty"`
	LabReportID    *uuid.UUID  `json:"lab_report_id,omitempty"`
	Kind           Kind        `json:"kind"`
	Details        string      `json:"details"`
	Status         Status      `json:"status"`
	AcceptedAt     *time.Time  `json:"accepted_at,omitempty"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty"`
	CompletedBy    *uuid.UUID  `json:"completed_by,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`

	// Display fields populated by list queries for dashboards. Never
	// written back.
	PatientName     string `json:"patient_name,omitempty"`
	PatientRoleID   string `json:"patient_role_id,omitempty"`
	DoctorName      string `json:"doctor_name,omitempty"`
	CompletedByName string `json:"completed_by_name,omitempty"`
}

// ArtifactLinks are the optional cross-references a synthesized request
// carries to the artifact that fulfilled it.
type ArtifactLinks struct {
	PrescriptionID *uuid.UUID
	LabReportID    *uuid.UUID
}
