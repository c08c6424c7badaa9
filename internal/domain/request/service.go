package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/platform/auth"
)

// PersonDirectory resolves loosely-typed person identifiers.
// *person.Resolver satisfies it.
type PersonDirectory interface {
	Resolve(ctx context.Context, identifier string) (*person.Person, error)
}

// Service is the transition engine for clinical requests.
type Service struct {
	repo   Repository
	people PersonDirectory
	nowFn  func() time.Time
}

func NewService(repo Repository, people PersonDirectory) *Service {
	return &Service{repo: repo, people: people, nowFn: time.Now}
}

// SetClock overrides the service clock. Tests only.
func (s *Service) SetClock(now func() time.Time) { s.nowFn = now }

type CreateInput struct {
	PatientID     string      `json:"patient_id"`
	TargetRole    person.Role `json:"target_role"`
	TargetStaffID string      `json:"target_staff_id,omitempty"`
	Kind          Kind        `json:"kind"`
	Details       string      `json:"details"`
}

// Create opens a new Pending request from a doctor. The patient must
// resolve; a target staff identifier is optional — when it resolves to the
// wrong role the create is rejected, but when it resolves to nothing the
// request simply goes out untargeted.
func (s *Service) Create(ctx context.Context, actor auth.Principal, in CreateInput) (*Request, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrValidation, in.Kind)
	}
	if !in.TargetRole.Staff() {
		return nil, fmt.Errorf("%w: target role must be labTechnician or pharmacist", ErrValidation)
	}
	if in.PatientID == "" {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}

	patient, err := s.people.Resolve(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return nil, fmt.Errorf("patient: %w", ErrNotFound)
		}
		return nil, err
	}

	var targetStaffID *uuid.UUID
	if in.TargetStaffID != "" {
		staff, err := s.people.Resolve(ctx, in.TargetStaffID)
		switch {
		case errors.Is(err, person.ErrNotFound):
			// Unresolvable target leaves the request generic.
		case err != nil:
			return nil, err
		case staff.Role != in.TargetRole:
			return nil, fmt.Errorf("%w: %s is a %s", ErrInvalidTarget, staff.RoleID, staff.Role)
		default:
			targetStaffID = &staff.ID
		}
	}

	req := &Request{
		DoctorID:      actor.ID,
		PatientID:     patient.ID,
		TargetRole:    in.TargetRole,
		TargetStaffID: targetStaffID,
		Kind:          in.Kind,
		Details:       in.Details,
		Status:        StatusPending,
		CreatedAt:     s.nowFn(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

// authorize checks that the acting staff member may touch the request:
// matching role, and either an untargeted request or one targeted at them.
func authorize(req *Request, actor auth.Principal) error {
	if req.TargetRole != person.Role(actor.Role) {
		return fmt.Errorf("%w: request targets role %s", ErrForbidden, req.TargetRole)
	}
	if req.TargetStaffID != nil && *req.TargetStaffID != actor.ID {
		return fmt.Errorf("%w: request assigned to another staff member", ErrForbidden)
	}
	return nil
}

// Accept pins a Pending request to the accepting staff member. The
// transition is a conditional update on Pending status, so when two staff
// race only one acceptance lands; the loser gets ErrConflict.
func (s *Service) Accept(ctx context.Context, actor auth.Principal, id uuid.UUID) (*Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(req, actor); err != nil {
		return nil, err
	}

	now := s.nowFn()
	ok, err := s.repo.AcceptPending(ctx, id, actor.ID, now)
	if err != nil {
		return nil, fmt.Errorf("accept request: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: request is no longer pending", ErrConflict)
	}

	req.Status = StatusAccepted
	req.TargetStaffID = &actor.ID
	req.AcceptedAt = &now
	return req, nil
}

// Complete moves a request to its terminal state. Role and target are
// re-validated here independently of Accept, so a fulfillment path that
// completes without a prior Accept is held to the same targeting rules.
func (s *Service) Complete(ctx context.Context, actor auth.Principal, id uuid.UUID) (*Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(req, actor); err != nil {
		return nil, err
	}
	if req.Status == StatusCompleted {
		return nil, fmt.Errorf("%w: request already completed", ErrConflict)
	}

	now := s.nowFn()
	ok, err := s.repo.MarkCompleted(ctx, id, actor.ID, now)
	if err != nil {
		return nil, fmt.Errorf("complete request: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: request already completed", ErrConflict)
	}

	req.Status = StatusCompleted
	req.CompletedAt = &now
	req.CompletedBy = &actor.ID
	return req, nil
}

// SynthesizeCompleted records a walk-in fulfillment as a request that was
// born Completed, so manual work shows up in the same history views as
// doctor-initiated work. The doctor field is self-attributed to the acting
// staff member purely for origin tracking.
func (s *Service) SynthesizeCompleted(ctx context.Context, actor auth.Principal, patientID uuid.UUID, kind Kind, details string, links ArtifactLinks) (*Request, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrValidation, kind)
	}
	targetRole := person.RolePharmacist
	if kind == KindLabReport {
		targetRole = person.RoleLabTechnician
	}

	now := s.nowFn()
	staffID := actor.ID
	req := &Request{
		DoctorID:       staffID,
		PatientID:      patientID,
		TargetRole:     targetRole,
		TargetStaffID:  &staffID,
		PrescriptionID: links.PrescriptionID,
		LabReportID:    links.LabReportID,
		Kind:           kind,
		Details:        details,
		Status:         StatusCompleted,
		CompletedAt:    &now,
		CompletedBy:    &staffID,
		CreatedAt:      now,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("synthesize completed request: %w", err)
	}
	return req, nil
}
