package prescription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careport/careport/internal/domain/appointment"
	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/domain/request"
	"github.com/careport/careport/internal/platform/auth"
)

// PersonDirectory resolves loosely-typed person identifiers.
// *person.Resolver satisfies it.
type PersonDirectory interface {
	Resolve(ctx context.Context, identifier string) (*person.Person, error)
}

// VisitScheduler books follow-up appointments bundled with a prescription.
// *appointment.Scheduler satisfies it.
type VisitScheduler interface {
	Schedule(ctx context.Context, patientID, doctorID uuid.UUID, at time.Time, notes string) (*appointment.Appointment, error)
}

// RequestLedger records fulfillments into the request history.
// *request.Service satisfies it.
type RequestLedger interface {
	SynthesizeCompleted(ctx context.Context, actor auth.Principal, patientID uuid.UUID, kind request.Kind, details string, links request.ArtifactLinks) (*request.Request, error)
}

type Service struct {
	repo      Repository
	people    PersonDirectory
	visits    VisitScheduler
	ledger    RequestLedger
	validDays int
	nowFn     func() time.Time
}

func NewService(repo Repository, people PersonDirectory, visits VisitScheduler, ledger RequestLedger, validDays int) *Service {
	if validDays <= 0 {
		validDays = 5
	}
	return &Service{repo: repo, people: people, visits: visits, ledger: ledger, validDays: validDays, nowFn: time.Now}
}

// SetClock overrides the service clock. Tests only.
func (s *Service) SetClock(now func() time.Time) { s.nowFn = now }

type RecordInput struct {
	PatientID string     `json:"patient_id"`
	Medicines []Medicine `json:"medicines"`
	Diagnosis string     `json:"diagnosis"`
	Notes     string     `json:"notes"`
	FileURLs  []string   `json:"file_urls"`

	// Validity window in days. Zero means the configured default.
	DurationDays int `json:"duration_days"`

	// Optional follow-up visit, booked atomically with the prescription.
	NextVisitAt *time.Time `json:"next_visit_at,omitempty"`
	VisitNotes  string     `json:"visit_notes,omitempty"`
}

// Record writes a prescription from a doctor. Validity runs from the issue
// instant for the requested number of days, so the prescription ages out of
// the patient's dashboard after the window closes.
func (s *Service) Record(ctx context.Context, actor auth.Principal, in RecordInput) (*Prescription, error) {
	if in.PatientID == "" {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}
	if len(in.Medicines) == 0 {
		return nil, fmt.Errorf("%w: at least one medicine is required", ErrValidation)
	}
	for _, m := range in.Medicines {
		if m.Name == "" {
			return nil, fmt.Errorf("%w: medicine name is required", ErrValidation)
		}
	}

	patient, err := s.people.Resolve(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return nil, fmt.Errorf("patient: %w", ErrNotFound)
		}
		return nil, err
	}

	days := in.DurationDays
	if days <= 0 {
		days = s.validDays
	}

	now := s.nowFn()
	p := &Prescription{
		PatientID:  patient.ID,
		DoctorID:   actor.ID,
		Medicines:  in.Medicines,
		Diagnosis:  in.Diagnosis,
		Notes:      in.Notes,
		FileURLs:   in.FileURLs,
		Status:     StatusActive,
		ValidUntil: now.Add(time.Duration(days) * 24 * time.Hour),
		CreatedAt:  now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create prescription: %w", err)
	}

	if in.NextVisitAt != nil {
		if _, err := s.visits.Schedule(ctx, patient.ID, actor.ID, *in.NextVisitAt, in.VisitNotes); err != nil {
			return nil, fmt.Errorf("schedule follow-up visit: %w", err)
		}
	}
	return p, nil
}

type ManualIssueInput struct {
	PatientID      uuid.UUID  `json:"patient_id"`
	PrescriptionID *uuid.UUID `json:"prescription_id,omitempty"`
	Details        string     `json:"details"`
}

// ManualIssue records a walk-in medicine delivery by a pharmacist. The
// patient reference is stored as given rather than re-resolved; the walk-in
// flow trusts whatever the pharmacist scanned. When a prescription id is
// supplied that prescription is closed out, and either way the delivery
// lands in the request history as a born-Completed entry.
func (s *Service) ManualIssue(ctx context.Context, actor auth.Principal, in ManualIssueInput) (*request.Request, error) {
	if in.PatientID == uuid.Nil {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}

	if in.PrescriptionID != nil {
		if err := s.repo.MarkCompleted(ctx, *in.PrescriptionID); err != nil {
			return nil, fmt.Errorf("complete prescription: %w", err)
		}
	}

	details := in.Details
	if details == "" {
		details = "Manual issue by pharmacist"
	}
	req, err := s.ledger.SynthesizeCompleted(ctx, actor, in.PatientID, request.KindMedicine, details,
		request.ArtifactLinks{PrescriptionID: in.PrescriptionID})
	if err != nil {
		return nil, fmt.Errorf("record manual issue: %w", err)
	}
	return req, nil
}
