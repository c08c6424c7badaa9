package person

import (
	"time"

	"github.com/google/uuid"
)

// Role tags what a person can do in the portal. Roles are assigned at
// registration and never change afterwards.
type Role string

const (
	RolePatient       Role = "patient"
	RoleDoctor        Role = "doctor"
	RoleLabTechnician Role = "labTechnician"
	RolePharmacist    Role = "pharmacist"
	RoleAdmin         Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleLabTechnician, RolePharmacist, RoleAdmin:
		return true
	}
	return false
}

// Staff reports whether r is a fulfillment role (lab technician or
// pharmacist).
func (r Role) Staff() bool {
	return r == RoleLabTechnician || r == RolePharmacist
}

// Person is a portal participant. RoleID is the human-readable identifier
// (e.g. PAT-348812) and LoginID the identifier the person signs in with;
// both are unique across all people.
type Person struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Role     Role      `db:"role" json:"role"`
	RoleID   string    `db:"role_id" json:"role_id"`
	LoginID  string    `db:"login_id" json:"login_id"`
	FullName string    `db:"full_name" json:"full_name"`
	Email    *string   `db:"email" json:"email,omitempty"`
	Phone    *string   `db:"phone" json:"phone,omitempty"`

	// doctor
	Specialization  *string `db:"specialization" json:"specialization,omitempty"`
	HospitalName    *string `db:"hospital_name" json:"hospital_name,omitempty"`
	ExperienceYears *int    `db:"experience_years" json:"experience_years,omitempty"`

	// patient
	Age        *int    `db:"age" json:"age,omitempty"`
	Gender     *string `db:"gender" json:"gender,omitempty"`
	BloodGroup *string `db:"blood_group" json:"blood_group,omitempty"`
	Allergies  *string `db:"allergies" json:"allergies,omitempty"`

	// lab technician
	LabName           *string `db:"lab_name" json:"lab_name,omitempty"`
	LabRegistrationNo *string `db:"lab_registration_no" json:"lab_registration_no,omitempty"`

	// pharmacist
	PharmacyName *string `db:"pharmacy_name" json:"pharmacy_name,omitempty"`
	LicenseNo    *string `db:"license_no" json:"license_no,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Summary is the safe subset of Person exposed to other roles when
// validating an identifier. It never carries clinical or contact details
// beyond what the calling workflow needs to display.
type Summary struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	RoleID       string    `json:"role_id"`
	Age          *int      `json:"age,omitempty"`
	Gender       *string   `json:"gender,omitempty"`
	HospitalName *string   `json:"hospital_name,omitempty"`
	LabName      *string   `json:"lab_name,omitempty"`
	PharmacyName *string   `json:"pharmacy_name,omitempty"`
}

// Summarize strips a person down to display fields.
func (p *Person) Summarize() Summary {
	s := Summary{
		ID:       p.ID,
		FullName: p.FullName,
		Role:     p.Role,
		RoleID:   p.RoleID,
	}
	switch p.Role {
	case RolePatient:
		s.Age = p.Age
		s.Gender = p.Gender
	case RoleDoctor:
		s.HospitalName = p.HospitalName
	case RoleLabTechnician:
		s.LabName = p.LabName
	case RolePharmacist:
		s.PharmacyName = p.PharmacyName
	}
	return s
}
