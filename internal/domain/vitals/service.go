package vitals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/platform/auth"
)

// PersonDirectory resolves loosely-typed person identifiers.
// *person.Resolver satisfies it.
type PersonDirectory interface {
	Resolve(ctx context.Context, identifier string) (*person.Person, error)
}

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

type RecordInput struct {
	PatientID     string `json:"patient_id"`
	BloodPressure string `json:"blood_pressure"`
	SugarLevel    string `json:"sugar_level"`
	HeartRate     string `json:"heart_rate"`
	Weight        string `json:"weight"`
	Temperature   string `json:"temperature"`
	Notes         string `json:"notes"`
}

func (s *Service) Record(ctx context.Context, actor auth.Principal, in RecordInput) (*Record, error) {
	if in.PatientID == "" {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}

	patient, err := s.people.Resolve(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return nil, fmt.Errorf("patient: %w", person.ErrNotFound)
		}
		return nil, err
	}

	now := s.nowFn()
	rec := &Record{
		PatientID:     patient.ID,
		DoctorID:      actor.ID,
		BloodPressure: in.BloodPressure,
		SugarLevel:    in.SugarLevel,
		HeartRate:     in.HeartRate,
		Weight:        in.Weight,
		Temperature:   in.Temperature,
		Notes:         in.Notes,
		RecordedAt:    now,
		CreatedAt:     now,
	}
	if rec.Empty() {
		return nil, fmt.Errorf("%w: at least one measurement is required", ErrValidation)
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create vitals record: %w", err)
	}
	return rec, nil
}
