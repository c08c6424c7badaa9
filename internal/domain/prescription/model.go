package prescription

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
)

var (
	ErrNotFound   = errors.New("prescription not found")
	ErrValidation = errors.New("invalid prescription input")
)

// Medicine is one line on a prescription. All fields are free text exactly
// as the doctor entered them.
type Medicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Prescription is issued by a doctor for a patient. It stays visible on the
// patient's dashboard only while ValidUntil is in the future; a pharmacist's
// manual delivery marks it Completed.
type Prescription struct {
	ID         uuid.UUID  `json:"id"`
	PatientID  uuid.UUID  `json:"patient_id"`
	DoctorID   uuid.UUID  `json:"doctor_id"`
	Medicines  []Medicine `json:"medicines"`
	Diagnosis  string     `json:"diagnosis"`
	Notes      string     `json:"notes"`
	FileURLs   []string   `json:"file_urls"`
	Status     Status     `json:"status"`
	ValidUntil time.Time  `json:"valid_until"`
	CreatedAt  time.Time  `json:"created_at"`

	// Display fields populated by list queries.
	PatientName   string `json:"patient_name,omitempty"`
	PatientRoleID string `json:"patient_role_id,omitempty"`
	DoctorName    string `json:"doctor_name,omitempty"`
}
