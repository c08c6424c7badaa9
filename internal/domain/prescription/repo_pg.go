package prescription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type prescriptionRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &prescriptionRepoPG{pool: pool}
}

const prescriptionCols = `p.id, p.patient_id, p.doctor_id, p.medicines, p.diagnosis, p.notes,
	p.file_urls, p.status, p.valid_until, p.created_at,
	COALESCE(pat.full_name, ''), COALESCE(pat.role_id, ''), COALESCE(doc.full_name, '')`

const prescriptionJoins = `
	LEFT JOIN person pat ON pat.id = p.patient_id
	LEFT JOIN person doc ON doc.id = p.doctor_id`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.PatientID, &p.DoctorID, &p.Medicines, &p.Diagnosis, &p.Notes,
		&p.FileURLs, &p.Status, &p.ValidUntil, &p.CreatedAt,
		&p.PatientName, &p.PatientRoleID, &p.DoctorName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPrescriptions(rows pgx.Rows) ([]*Prescription, error) {
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Medicines == nil {
		p.Medicines = []Medicine{}
	}
	if p.FileURLs == nil {
		p.FileURLs = []string{}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO prescription (id, patient_id, doctor_id, medicines, diagnosis, notes, file_urls, status, valid_until)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.PatientID, p.DoctorID, p.Medicines, p.Diagnosis, p.Notes, p.FileURLs, p.Status, p.ValidUntil)
	return err
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return scanPrescription(r.pool.QueryRow(ctx, `
		SELECT `+prescriptionCols+` FROM prescription p`+prescriptionJoins+`
		WHERE p.id = $1`, id))
}

func (r *prescriptionRepoPG) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE prescription SET status = $2 WHERE id = $1`, id, StatusCompleted)
	return err
}

func (r *prescriptionRepoPG) ListValidByPatient(ctx context.Context, patientID uuid.UUID, now time.Time) ([]*Prescription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+prescriptionCols+` FROM prescription p`+prescriptionJoins+`
		WHERE p.patient_id = $1 AND p.valid_until > $2
		ORDER BY p.created_at DESC`, patientID, now)
	if err != nil {
		return nil, err
	}
	return collectPrescriptions(rows)
}

func (r *prescriptionRepoPG) ListByDoctorSince(ctx context.Context, doctorID uuid.UUID, since time.Time) ([]*Prescription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+prescriptionCols+` FROM prescription p`+prescriptionJoins+`
		WHERE p.doctor_id = $1 AND p.created_at >= $2
		ORDER BY p.created_at DESC`, doctorID, since)
	if err != nil {
		return nil, err
	}
	return collectPrescriptions(rows)
}

func (r *prescriptionRepoPG) ListRecentByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*Prescription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+prescriptionCols+` FROM prescription p`+prescriptionJoins+`
		WHERE p.patient_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2`, patientID, limit)
	if err != nil {
		return nil, err
	}
	return collectPrescriptions(rows)
}
