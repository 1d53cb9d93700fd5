package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/orphanage-admin/internal/domain"
)

// StaffRepository handles persistence for staff profiles.
type StaffRepository interface {
	Create(ctx context.Context, profile *domain.StaffProfile) error
	Update(ctx context.Context, profile *domain.StaffProfile) error
	GetByID(ctx context.Context, id int64) (*domain.StaffProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.StaffProfile, error)
	List(ctx context.Context) ([]domain.StaffProfile, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

type staffRepository struct {
	db DB
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(db DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, profile *domain.StaffProfile) error {
	const query = `
        INSERT INTO staff_profiles (user_id, name, email, phone_number, position)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Email,
		profile.PhoneNumber,
		profile.Position,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *staffRepository) Update(ctx context.Context, profile *domain.StaffProfile) error {
	const query = `
        UPDATE staff_profiles
        SET name=$1, email=$2, phone_number=$3, position=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`

	return r.db.QueryRow(ctx, query,
		profile.Name,
		profile.Email,
		profile.PhoneNumber,
		profile.Position,
		profile.ID,
	).Scan(&profile.UpdatedAt)
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*domain.StaffProfile, error) {
	const query = `
        SELECT id, user_id, name, email, phone_number, position, created_at, updated_at
        FROM staff_profiles WHERE id=$1`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *staffRepository) GetByUserID(ctx context.Context, userID int64) (*domain.StaffProfile, error) {
	const query = `
        SELECT id, user_id, name, email, phone_number, position, created_at, updated_at
        FROM staff_profiles WHERE user_id=$1`

	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

func (r *staffRepository) List(ctx context.Context) ([]domain.StaffProfile, error) {
	const query = `
        SELECT id, user_id, name, email, phone_number, position, created_at, updated_at
        FROM staff_profiles ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffProfile
	for rows.Next() {
		var profile domain.StaffProfile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.Name,
			&profile.Email,
			&profile.PhoneNumber,
			&profile.Position,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}

func (r *staffRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM staff_profiles WHERE id=$1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteByUserID removes the profile bound to userID, if any. Zero rows is not
// an error; most users never get a profile.
func (r *staffRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	const query = `DELETE FROM staff_profiles WHERE user_id=$1`

	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *staffRepository) scanOne(row pgx.Row) (*domain.StaffProfile, error) {
	var profile domain.StaffProfile
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Email,
		&profile.PhoneNumber,
		&profile.Position,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}
