package labreport

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

var (
	ErrNotFound   = errors.New("lab report not found")
	ErrValidation = errors.New("invalid lab report input")
)

// LabReport is a result document uploaded by a lab technician. DoctorID is
// set when the report answers a doctor's request; walk-in reports leave it
// empty.
type LabReport struct {
	ID         uuid.UUID  `json:"id"`
	PatientID  uuid.UUID  `json:"patient_id"`
	LabID      uuid.UUID  `json:"lab_id"`
	DoctorID   *uuid.UUID `json:"doctor_id,omitempty"`
	Title      string     `json:"title"`
	ReportType string     `json:"report_type"`
	FileURL    string     `json:"file_url"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`

	// Display fields populated by list queries.
	PatientName   string `json:"patient_name,omitempty"`
	PatientRoleID string `json:"patient_role_id,omitempty"`
	LabName       string `json:"lab_name,omitempty"`
}
