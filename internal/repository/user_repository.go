package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixware/repairdesk/internal/domain"
)

const userColumns = `uid, name, email, phone, street, city, state, zip_code, created_at, updated_at`

// UserProfileRepository defines persistence access for customer profiles.
type UserProfileRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) error
	Update(ctx context.Context, profile *domain.UserProfile) error
	Delete(ctx context.Context, uid string) error
	GetByID(ctx context.Context, uid string) (*domain.UserProfile, error)
	ListAll(ctx context.Context) ([]domain.UserProfile, error)
}

type userProfileRepository struct {
	pool *pgxpool.Pool
}

// NewUserProfileRepository returns a Postgres-backed implementation.
func NewUserProfileRepository(pool *pgxpool.Pool) UserProfileRepository {
	return &userProfileRepository{pool: pool}
}

func (r *userProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
        INSERT INTO users (uid, name, email, phone, street, city, state, zip_code)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		profile.UID,
		profile.Name,
		profile.Email,
		profile.Phone,
		profile.Address.Street,
		profile.Address.City,
		profile.Address.State,
		profile.Address.ZipCode,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *userProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
        UPDATE users SET name=$1, email=$2, phone=$3, street=$4, city=$5, state=$6, zip_code=$7,
            updated_at=NOW()
        WHERE uid=$8`
	cmd, err := r.pool.Exec(ctx, query,
		profile.Name,
		profile.Email,
		profile.Phone,
		profile.Address.Street,
		profile.Address.City,
		profile.Address.State,
		profile.Address.ZipCode,
		profile.UID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the profile row only. Service requests referencing the uid
// and the credentials account stay behind.
func (r *userProfileRepository) Delete(ctx context.Context, uid string) error {
	const query = `DELETE FROM users WHERE uid=$1`
	cmd, err := r.pool.Exec(ctx, query, uid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userProfileRepository) GetByID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid=$1`
	var profile domain.UserProfile
	if err := r.pool.QueryRow(ctx, query, uid).Scan(userScanTargets(&profile)...); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userProfileRepository) ListAll(ctx context.Context) ([]domain.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UserProfile
	for rows.Next() {
		var profile domain.UserProfile
		if err := rows.Scan(userScanTargets(&profile)...); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}

func userScanTargets(profile *domain.UserProfile) []any {
	return []any{
		&profile.UID,
		&profile.Name,
		&profile.Email,
		&profile.Phone,
		&profile.Address.Street,
		&profile.Address.City,
		&profile.Address.State,
		&profile.Address.ZipCode,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	}
}
