package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careport/careport/internal/domain/appointment"
	"github.com/careport/careport/internal/domain/labreport"
	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/domain/prescription"
	"github.com/careport/careport/internal/domain/request"
	"github.com/careport/careport/internal/domain/vitals"
	"github.com/careport/careport/internal/platform/auth"
)

const recentHistoryLimit = 5

// PersonDirectory resolves loosely-typed person identifiers.
// *person.Resolver satisfies it.
type PersonDirectory interface {
	Resolve(ctx context.Context, identifier string) (*person.Person, error)
}

// Service composes read views over the clinical stores. It owns no state
// and never writes; every view takes the reference instant explicitly so
// "today" is the caller's decision.
type Service struct {
	people        person.Repository
	directory     PersonDirectory
	requests      request.Repository
	prescriptions prescription.Repository
	reports       labreport.Repository
	vitals        vitals.Repository
	appointments  appointment.Repository
}

func NewService(
	people person.Repository,
	directory PersonDirectory,
	requests request.Repository,
	prescriptions prescription.Repository,
	reports labreport.Repository,
	vitalsRepo vitals.Repository,
	appointments appointment.Repository,
) *Service {
	return &Service{
		people:        people,
		directory:     directory,
		requests:      requests,
		prescriptions: prescriptions,
		reports:       reports,
		vitals:        vitalsRepo,
		appointments:  appointments,
	}
}

// startOfDay is local midnight of the given instant.
func startOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// PatientView assembles the patient landing page.
func (s *Service) PatientView(ctx context.Context, patient auth.Principal, now time.Time) (*PatientDashboard, error) {
	appts, err := s.appointments.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	prescriptions, err := s.prescriptions.ListValidByPatient(ctx, patient.ID, now)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	reports, err := s.reports.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("list lab reports: %w", err)
	}
	latest, err := s.vitals.LatestByPatient(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("latest vitals: %w", err)
	}
	completed, err := s.requests.ListCompletedByPatient(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("list completed requests: %w", err)
	}

	return &PatientDashboard{
		Appointments:      appts,
		Prescriptions:     prescriptions,
		LabReports:        reports,
		LatestVitals:      latest,
		CompletedRequests: completed,
	}, nil
}

// DoctorView assembles the doctor's day view.
func (s *Service) DoctorView(ctx context.Context, doctor auth.Principal, now time.Time) (*DoctorDashboard, error) {
	doc, err := s.people.GetByID(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	today := startOfDay(now)
	prescriptions, err := s.prescriptions.ListByDoctorSince(ctx, doctor.ID, today)
	if err != nil {
		return nil, fmt.Errorf("list today's prescriptions: %w", err)
	}
	appts, err := s.appointments.ListScheduledByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	requests, err := s.requests.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	// Manual work only matters for the patients on today's plate.
	patientSet := map[uuid.UUID]struct{}{}
	for _, p := range prescriptions {
		patientSet[p.PatientID] = struct{}{}
	}
	for _, a := range appts {
		patientSet[a.PatientID] = struct{}{}
	}
	var manual []*request.Request
	if len(patientSet) > 0 {
		ids := make([]uuid.UUID, 0, len(patientSet))
		for id := range patientSet {
			ids = append(ids, id)
		}
		manual, err = s.requests.ListCompletedForPatients(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list manual items: %w", err)
		}
	}

	openRequests := 0
	for _, r := range requests {
		if r.Status != request.StatusCompleted {
			openRequests++
		}
	}

	return &DoctorDashboard{
		Doctor:              doc.Summarize(),
		TodaysPrescriptions: prescriptions,
		Appointments:        appts,
		Requests:            requests,
		ManualItems:         manual,
		Totals: DoctorTotals{
			PrescriptionsToday: len(prescriptions),
			AppointmentsOpen:   len(appts),
			RequestsOpen:       openRequests,
		},
	}, nil
}

// StaffView assembles the lab technician / pharmacist work queue.
func (s *Service) StaffView(ctx context.Context, staff auth.Principal, now time.Time) (*StaffDashboard, error) {
	role := person.Role(staff.Role)
	if !role.Staff() {
		return nil, fmt.Errorf("role %s has no staff dashboard", staff.Role)
	}

	active, err := s.requests.ListActiveForStaff(ctx, role, staff.ID)
	if err != nil {
		return nil, fmt.Errorf("list active requests: %w", err)
	}

	view := &StaffDashboard{ActiveRequests: active}
	today := startOfDay(now)
	switch role {
	case person.RoleLabTechnician:
		reports, err := s.reports.ListByLabSince(ctx, staff.ID, today)
		if err != nil {
			return nil, fmt.Errorf("list today's reports: %w", err)
		}
		view.AttendedReports = reports
		view.CompletedToday = len(reports)
	case person.RolePharmacist:
		done, err := s.requests.ListCompletedByStaffSince(ctx, staff.ID, today)
		if err != nil {
			return nil, fmt.Errorf("list today's completions: %w", err)
		}
		view.AttendedRequests = done
		view.CompletedToday = len(done)
	}
	return view, nil
}

// PatientSummaryFor builds the staff-facing patient card. The identifier
// goes through the same loose resolution as everywhere else; a match that
// is not a patient reads as not found.
func (s *Service) PatientSummaryFor(ctx context.Context, identifier string) (*PatientSummary, error) {
	p, err := s.directory.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if p.Role != person.RolePatient {
		return nil, person.ErrNotFound
	}

	prescriptions, err := s.prescriptions.ListRecentByPatient(ctx, p.ID, recentHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent prescriptions: %w", err)
	}
	reports, err := s.reports.ListRecentByPatient(ctx, p.ID, recentHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent reports: %w", err)
	}

	return &PatientSummary{
		Patient:             p.Summarize(),
		RecentPrescriptions: prescriptions,
		RecentLabReports:    reports,
	}, nil
}

// IsNotFound reports whether a view error is the person lookup missing.
func IsNotFound(err error) bool {
	return errors.Is(err, person.ErrNotFound)
}
