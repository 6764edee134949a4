package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository"
)

const userColumns = `id, email, full_name, driver_license_no, status, roles, password_hash, created_on, updated_on`

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Status == "" {
		u.Status = domain.UserStatusActive
	}
	if len(u.Roles) == 0 {
		u.Roles = []domain.UserRole{domain.UserRoleUser}
	}
	now := time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.FullName, u.DriverLicenseNo, u.Status,
		pq.Array(rolesToStrings(u.Roles)), u.PasswordHash, now, now)
	return mapStoreError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET email=$1, full_name=$2, driver_license_no=$3, status=$4, roles=$5, updated_on=$6
		 WHERE id = $7`,
		u.Email, u.FullName, u.DriverLicenseNo, u.Status,
		pq.Array(rolesToStrings(u.Roles)), time.Now(), u.ID)
	if err != nil {
		return mapStoreError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var roles pq.StringArray
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.DriverLicenseNo, &u.Status,
		&roles, &u.PasswordHash, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, mapStoreError(err)
	}
	u.Roles = stringsToRoles(roles)
	return u, nil
}

func rolesToStrings(roles []domain.UserRole) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func stringsToRoles(ss []string) []domain.UserRole {
	out := make([]domain.UserRole, len(ss))
	for i, s := range ss {
		out[i] = domain.UserRole(s)
	}
	return out
}
