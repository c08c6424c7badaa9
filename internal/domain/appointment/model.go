package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Appointment is a scheduled visit between a patient and a doctor.
// Prescriptions can bundle-create one for the next visit.
type Appointment struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Display fields populated by list queries.
	PatientName   string `json:"patient_name,omitempty"`
	PatientRoleID string `json:"patient_role_id,omitempty"`
	DoctorName    string `json:"doctor_name,omitempty"`
}
