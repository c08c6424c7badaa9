package person

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type personRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &personRepoPG{pool: pool}
}

const personCols = `id, role, role_id, login_id, full_name, email, phone,
	specialization, hospital_name, experience_years,
	age, gender, blood_group, allergies,
	lab_name, lab_registration_no, pharmacy_name, license_no,
	created_at, updated_at`

func scanPerson(row pgx.Row) (*Person, error) {
	var p Person
	err := row.Scan(&p.ID, &p.Role, &p.RoleID, &p.LoginID, &p.FullName, &p.Email, &p.Phone,
		&p.Specialization, &p.HospitalName, &p.ExperienceYears,
		&p.Age, &p.Gender, &p.BloodGroup, &p.Allergies,
		&p.LabName, &p.LabRegistrationNo, &p.PharmacyName, &p.LicenseNo,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *personRepoPG) Create(ctx context.Context, p *Person) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO person (id, role, role_id, login_id, full_name, email, phone,
			specialization, hospital_name, experience_years,
			age, gender, blood_group, allergies,
			lab_name, lab_registration_no, pharmacy_name, license_no)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		p.ID, p.Role, p.RoleID, p.LoginID, p.FullName, p.Email, p.Phone,
		p.Specialization, p.HospitalName, p.ExperienceYears,
		p.Age, p.Gender, p.BloodGroup, p.Allergies,
		p.LabName, p.LabRegistrationNo, p.PharmacyName, p.LicenseNo)
	return err
}

func (r *personRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Person, error) {
	return scanPerson(r.pool.QueryRow(ctx, `SELECT `+personCols+` FROM person WHERE id = $1`, id))
}

func (r *personRepoPG) GetByRoleOrLoginID(ctx context.Context, identifier string) (*Person, error) {
	return scanPerson(r.pool.QueryRow(ctx,
		`SELECT `+personCols+` FROM person WHERE role_id = $1 OR login_id = $1`, identifier))
}

func (r *personRepoPG) RoleIDExists(ctx context.Context, roleID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM person WHERE role_id = $1)`, roleID).Scan(&exists)
	return exists, err
}
