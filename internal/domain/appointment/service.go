package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Scheduler creates appointments on behalf of other workflows, e.g. the
// next-visit bundled into a prescription.
type Scheduler struct {
	repo Repository
}

func NewScheduler(repo Repository) *Scheduler {
	return &Scheduler{repo: repo}
}

func (s *Scheduler) Schedule(ctx context.Context, patientID, doctorID uuid.UUID, at time.Time, notes string) (*Appointment, error) {
	a := &Appointment{
		PatientID:   patientID,
		DoctorID:    doctorID,
		ScheduledAt: at,
		Status:      StatusScheduled,
		Notes:       notes,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
