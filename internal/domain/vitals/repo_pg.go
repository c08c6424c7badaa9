package vitals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type vitalsRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &vitalsRepoPG{pool: pool}
}

func (r *vitalsRepoPG) Create(ctx context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vitals (id, patient_id, doctor_id, blood_pressure, sugar_level, heart_rate, weight, temperature, notes, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rec.ID, rec.PatientID, rec.DoctorID, rec.BloodPressure, rec.SugarLevel, rec.HeartRate,
		rec.Weight, rec.Temperature, rec.Notes, rec.RecordedAt)
	return err
}

func (r *vitalsRepoPG) LatestByPatient(ctx context.Context, patientID uuid.UUID) (*Record, error) {
	var rec Record
	err := r.pool.QueryRow(ctx, `
		SELECT id, patient_id, doctor_id, COALESCE(blood_pressure, ''), COALESCE(sugar_level, ''),
			COALESCE(heart_rate, ''), COALESCE(weight, ''), COALESCE(temperature, ''),
			COALESCE(notes, ''), recorded_at, created_at
		FROM vitals
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, patientID).Scan(
		&rec.ID, &rec.PatientID, &rec.DoctorID, &rec.BloodPressure, &rec.SugarLevel,
		&rec.HeartRate, &rec.Weight, &rec.Temperature, &rec.Notes, &rec.RecordedAt, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
