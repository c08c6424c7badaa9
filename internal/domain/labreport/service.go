package labreport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/domain/request"
	"github.com/careport/careport/internal/platform/auth"
)

// PersonDirectory resolves loosely-typed person identifiers.
// *person.Resolver satisfies it.
type PersonDirectory interface {
	Resolve(ctx context.Context, identifier string) (*person.Person, error)
}

// RequestLedger moves requests through their lifecycle and records walk-in
// work. *request.Service satisfies it.
type RequestLedger interface {
	Complete(ctx context.Context, actor auth.Principal, id uuid.UUID) (*request.Request, error)
	SynthesizeCompleted(ctx context.Context, actor auth.Principal, patientID uuid.UUID, kind request.Kind, details string, links request.ArtifactLinks) (*request.Request, error)
}

type Service struct {
	repo   Repository
	people PersonDirectory
	ledger RequestLedger
	nowFn  func() time.Time
}

func NewService(repo Repository, people PersonDirectory, ledger RequestLedger) *Service {
	return &Service{repo: repo, people: people, ledger: ledger, nowFn: time.Now}
}

// SetClock overrides the service clock. Tests only.
func (s *Service) SetClock(now func() time.Time) { s.nowFn = now }

type RecordInput struct {
	PatientID  string `json:"patient_id"`
	Title      string `json:"title"`
	ReportType string `json:"report_type"`
	FileURL    string `json:"file_url"`

	// Optional doctor request this report answers.
	RequestID *uuid.UUID `json:"request_id,omitempty"`
}

// Record stores an uploaded report and, when it answers a doctor's request,
// completes that request under the acting technician's authority. The
// report is kept even if the linked request turns out to be untouchable;
// the document is the primary artifact.
func (s *Service) Record(ctx context.Context, actor auth.Principal, in RecordInput) (*LabReport, error) {
	if in.PatientID == "" {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.FileURL == "" {
		return nil, fmt.Errorf("%w: file_url is required", ErrValidation)
	}

	patient, err := s.people.Resolve(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return nil, fmt.Errorf("patient: %w", ErrNotFound)
		}
		return nil, err
	}

	rep := &LabReport{
		PatientID:  patient.ID,
		LabID:      actor.ID,
		Title:      in.Title,
		ReportType: in.ReportType,
		FileURL:    in.FileURL,
		Status:     StatusCompleted,
		CreatedAt:  s.nowFn(),
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("create lab report: %w", err)
	}

	if in.RequestID != nil {
		if req, err := s.ledger.Complete(ctx, actor, *in.RequestID); err == nil {
			rep.DoctorID = &req.DoctorID
		} else {
			return rep, fmt.Errorf("complete linked request: %w", err)
		}
	}
	return rep, nil
}

type ManualIssueInput struct {
	PatientID string `json:"patient_id"`
	Title     string `json:"title"`
	FileURL   string `json:"file_url"`
	Details   string `json:"details"`
}

// ManualIssue records a walk-in report for a patient who came without a
// doctor's request. The persisted report is always typed Manual so the
// walk-in path stays distinguishable from uploads, and the delivery is
// mirrored into the request history as a born-Completed entry linked back
// to the report.
func (s *Service) ManualIssue(ctx context.Context, actor auth.Principal, in ManualIssueInput) (*LabReport, error) {
	if in.PatientID == "" {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	patient, err := s.people.Resolve(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return nil, fmt.Errorf("patient: %w", ErrNotFound)
		}
		return nil, err
	}

	rep := &LabReport{
		PatientID:  patient.ID,
		LabID:      actor.ID,
		Title:      in.Title,
		ReportType: "Manual",
		FileURL:    in.FileURL,
		Status:     StatusCompleted,
		CreatedAt:  s.nowFn(),
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("create lab report: %w", err)
	}

	details := in.Details
	if details == "" {
		details = "Manual Report: " + in.Title
	}
	if _, err := s.ledger.SynthesizeCompleted(ctx, actor, patient.ID, request.KindLabReport, details,
		request.ArtifactLinks{LabReportID: &rep.ID}); err != nil {
		return rep, fmt.Errorf("record manual report: %w", err)
	}
	return rep, nil
}
