package dashboard

import (
	"github.com/careport/careport/internal/domain/appointment"
	"github.com/careport/careport/internal/domain/labreport"
	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/domain/prescription"
	"github.com/careport/careport/internal/domain/request"
	"github.com/careport/careport/internal/domain/vitals"
)

// PatientDashboard is everything the patient landing page shows in one
// response.
type PatientDashboard struct {
	Appointments      []*appointment.Appointment   `json:"appointments"`
	Prescriptions     []*prescription.Prescription `json:"prescriptions"`
	LabReports        []*labreport.LabReport       `json:"lab_reports"`
	LatestVitals      *vitals.Record               `json:"latest_vitals,omitempty"`
	CompletedRequests []*request.Request           `json:"completed_requests"`
}

// DoctorDashboard is the doctor's day view: today's output, the scheduled
// visits, and the requests they have in flight.
type DoctorDashboard struct {
	Doctor              person.Summary               `json:"doctor"`
	TodaysPrescriptions []*prescription.Prescription `json:"todays_prescriptions"`
	Appointments        []*appointment.Appointment   `json:"appointments"`
	Requests            []*request.Request           `json:"requests"`
	// ManualItems are walk-in fulfillments for patients this doctor is
	// seeing today, so over-the-counter work shows up next to the visit.
	ManualItems []*request.Request `json:"manual_items"`
	Totals      DoctorTotals       `json:"totals"`
}

type DoctorTotals struct {
	PrescriptionsToday int `json:"prescriptions_today"`
	AppointmentsOpen   int `json:"appointments_open"`
	RequestsOpen       int `json:"requests_open"`
}

// StaffDashboard is the lab technician / pharmacist work queue. Attended
// counts different units per role: labs count reports they created today,
// pharmacists count requests they completed today.
type StaffDashboard struct {
	ActiveRequests []*request.Request `json:"active_requests"`
	CompletedToday int                `json:"completed_today"`

	// Exactly one of these is populated, matching the role.
	AttendedReports  []*labreport.LabReport `json:"attended_reports,omitempty"`
	AttendedRequests []*request.Request     `json:"attended_requests,omitempty"`
}

// PatientSummary is the staff-facing patient card: identity plus recent
// clinical history.
type PatientSummary struct {
	Patient             person.Summary               `json:"patient"`
	RecentPrescriptions []*prescription.Prescription `json:"recent_prescriptions"`
	RecentLabReports    []*labreport.LabReport       `json:"recent_lab_reports"`
}
