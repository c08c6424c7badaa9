package appointment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &appointmentRepoPG{pool: pool}
}

const appointmentCols = `a.id, a.patient_id, a.doctor_id, a.scheduled_at, a.status, a.notes, a.created_at,
	COALESCE(pat.full_name, ''), COALESCE(pat.role_id, ''), COALESCE(doc.full_name, '')`

const appointmentJoins = `
	LEFT JOIN person pat ON pat.id = a.patient_id
	LEFT JOIN person doc ON doc.id = a.doctor_id`

func collectAppointments(rows pgx.Rows) ([]*Appointment, error) {
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.ScheduledAt, &a.Status, &a.Notes, &a.CreatedAt,
			&a.PatientName, &a.PatientRoleID, &a.DoctorName); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, scheduled_at, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.PatientID, a.DoctorID, a.ScheduledAt, a.Status, a.Notes)
	return err
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentCols+` FROM appointment a`+appointmentJoins+`
		WHERE a.patient_id = $1
		ORDER BY a.scheduled_at ASC`, patientID)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (r *appointmentRepoPG) ListScheduledByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentCols+` FROM appointment a`+appointmentJoins+`
		WHERE a.doctor_id = $1 AND a.status = $2
		ORDER BY a.scheduled_at ASC`, doctorID, StatusScheduled)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}
