package request

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careport/careport/internal/domain/person"
)

type requestRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &requestRepoPG{pool: pool}
}

const requestCols = `r.id, r.doctor_id, r.patient_id, r.target_role, r.target_staff_id,
	r.prescription_id, r.lab_report_id, r.kind, r.details, r.status,
	r.accepted_at, r.completed_at, r.completed_by, r.created_at, r.updated_at`

const requestJoins = `
	LEFT JOIN person pat ON pat.id = r.patient_id
	LEFT JOIN person doc ON doc.id = r.doctor_id
	LEFT JOIN person cb ON cb.id = r.completed_by`

const requestDisplayCols = requestCols + `,
	COALESCE(pat.full_name, ''), COALESCE(pat.role_id, ''),
	COALESCE(doc.full_name, ''), COALESCE(cb.full_name, '')`

func scanRequest(row pgx.Row) (*Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.DoctorID, &r.PatientID, &r.TargetRole, &r.TargetStaffID,
		&r.PrescriptionID, &r.LabReportID, &r.Kind, &r.Details, &r.Status,
		&r.AcceptedAt, &r.CompletedAt, &r.CompletedBy, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanRequestWithNames(row pgx.Row) (*Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.DoctorID, &r.PatientID, &r.TargetRole, &r.TargetStaffID,
		&r.PrescriptionID, &r.LabReportID, &r.Kind, &r.Details, &r.Status,
		&r.AcceptedAt, &r.CompletedAt, &r.CompletedBy, &r.CreatedAt, &r.UpdatedAt,
		&r.PatientName, &r.PatientRoleID, &r.DoctorName, &r.CompletedByName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func collectRequests(rows pgx.Rows) ([]*Request, error) {
	defer rows.Close()
	var items []*Request
	for rows.Next() {
		r, err := scanRequestWithNames(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

func (p *requestRepoPG) Create(ctx context.Context, r *Request) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO request (id, doctor_id, patient_id, target_role, target_staff_id,
			prescription_id, lab_report_id, kind, details, status,
			accepted_at, completed_at, completed_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		r.ID, r.DoctorID, r.PatientID, r.TargetRole, r.TargetStaffID,
		r.PrescriptionID, r.LabReportID, r.Kind, r.Details, r.Status,
		r.AcceptedAt, r.CompletedAt, r.CompletedBy)
	return err
}

func (p *requestRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	return scanRequest(p.pool.QueryRow(ctx,
		`SELECT `+requestCols+` FROM request r WHERE r.id = $1`, id))
}

func (p *requestRepoPG) AcceptPending(ctx context.Context, id, staffID uuid.UUID, at time.Time) (bool, error) {
	tag, err := p.pool.Exec(ctx, `
		UPDATE request
		SET status = $3, target_staff_id = $2, accepted_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5`,
		id, staffID, StatusAccepted, at, StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (p *requestRepoPG) MarkCompleted(ctx context.Context, id, staffID uuid.UUID, at time.Time) (bool, error) {
	tag, err := p.pool.Exec(ctx, `
		UPDATE request
		SET status = $3, completed_by = $2, completed_at = $4, updated_at = NOW()
		WHERE id = $1 AND status <> $3`,
		id, staffID, StatusCompleted, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (p *requestRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Request, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+requestDisplayCols+` FROM request r`+requestJoins+`
		WHERE r.doctor_id = $1
		ORDER BY r.created_at DESC`, doctorID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (p *requestRepoPG) ListCompletedByPatient(ctx context.Context, patientID uuid.UUID) ([]*Request, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+requestDisplayCols+` FROM request r`+requestJoins+`
		WHERE r.patient_id = $1 AND r.status = $2
		ORDER BY r.completed_at DESC`, patientID, StatusCompleted)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (p *requestRepoPG) ListCompletedForPatients(ctx context.Context, patientIDs []uuid.UUID) ([]*Request, error) {
	if len(patientIDs) == 0 {
		return nil, nil
	}
	rows, err := p.pool.Query(ctx, `
		SELECT `+requestDisplayCols+` FROM request r`+requestJoins+`
		WHERE r.patient_id = ANY($1) AND r.status = $2
		ORDER BY r.completed_at DESC`, patientIDs, StatusCompleted)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (p *requestRepoPG) ListActiveForStaff(ctx context.Context, role person.Role, staffID uuid.UUID) ([]*Request, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+requestDisplayCols+` FROM request r`+requestJoins+`
		WHERE r.target_role = $1
		  AND r.status IN ($2, $3)
		  AND (r.target_staff_id IS NULL OR r.target_staff_id = $4)
		ORDER BY r.created_at ASC`, role, StatusPending, StatusAccepted, staffID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (p *requestRepoPG) ListCompletedByStaffSince(ctx context.Context, staffID uuid.UUID, since time.Time) ([]*Request, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+requestDisplayCols+` FROM request r`+requestJoins+`
		WHERE r.completed_by = $1 AND r.status = $2 AND r.completed_at >= $3
		ORDER BY r.completed_at DESC`, staffID, StatusCompleted, since)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}
