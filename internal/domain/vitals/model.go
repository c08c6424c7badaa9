package vitals

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("invalid vitals input")

// Record is one set of measurements a doctor took during a visit. All
// measurement fields are free text so units travel with the value.
type Record struct {
	ID            uuid.UUID `json:"id"`
	PatientID     uuid.UUID `json:"patient_id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	BloodPressure string    `json:"blood_pressure,omitempty"`
	SugarLevel    string    `json:"sugar_level,omitempty"`
	HeartRate     string    `json:"heart_rate,omitempty"`
	Weight        string    `json:"weight,omitempty"`
	Temperature   string    `json:"temperature,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// Empty reports whether no measurement was supplied at all.
func (r *Record) Empty() bool {
	return r.BloodPressure == "" && r.SugarLevel == "" && r.HeartRate == "" &&
		r.Weight == "" && r.Temperature == ""
}
