package labreport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type labReportRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &labReportRepoPG{pool: pool}
}

const labReportCols = `r.id, r.patient_id, r.lab_id, r.doctor_id, r.title, r.report_type,
	r.file_url, r.status, r.created_at,
	COALESCE(pat.full_name, ''), COALESCE(pat.role_id, ''), COALESCE(lab.lab_name, lab.full_name, '')`

const labReportJoins = `
	LEFT JOIN person pat ON pat.id = r.patient_id
	LEFT JOIN person lab ON lab.id = r.lab_id`

func scanLabReport(row pgx.Row) (*LabReport, error) {
	var r LabReport
	err := row.Scan(&r.ID, &r.PatientID, &r.LabID, &r.DoctorID, &r.Title, &r.ReportType,
		&r.FileURL, &r.Status, &r.CreatedAt,
		&r.PatientName, &r.PatientRoleID, &r.LabName)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func collectLabReports(rows pgx.Rows) ([]*LabReport, error) {
	defer rows.Close()
	var items []*LabReport
	for rows.Next() {
		r, err := scanLabReport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

func (r *labReportRepoPG) Create(ctx context.Context, rep *LabReport) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lab_report (id, patient_id, lab_id, doctor_id, title, report_type, file_url, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		rep.ID, rep.PatientID, rep.LabID, rep.DoctorID, rep.Title, rep.ReportType, rep.FileURL, rep.Status)
	return err
}

func (r *labReportRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*LabReport, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+labReportCols+` FROM lab_report r`+labReportJoins+`
		WHERE r.patient_id = $1
		ORDER BY r.created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	return collectLabReports(rows)
}

func (r *labReportRepoPG) ListByLabSince(ctx context.Context, labID uuid.UUID, since time.Time) ([]*LabReport, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+labReportCols+` FROM lab_report r`+labReportJoins+`
		WHERE r.lab_id = $1 AND r.created_at >= $2
		ORDER BY r.created_at DESC`, labID, since)
	if err != nil {
		return nil, err
	}
	return collectLabReports(rows)
}

func (r *labReportRepoPG) ListRecentByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*LabReport, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+labReportCols+` FROM lab_report r`+labReportJoins+`
		WHERE r.patient_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2`, patientID, limit)
	if err != nil {
		return nil, err
	}
	return collectLabReports(rows)
}
