package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

// Constraint names from migrations/0001_init.sql. The partial unique indexes
// on active rentals are the store-level guard against double booking.
const (
	constraintActiveCar  = "uq_rentals_active_car"
	constraintActiveUser = "uq_rentals_active_user"
	constraintCode       = "uq_rentals_reservation_code"
)

const rentalColumns = `id, car_id, user_id, start_date, end_date, total_price_cents, status, reservation_code, created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

// CreateWithCarHold inserts the rental and flips the car to RENTED in one
// transaction. The car row is locked for the duration of the check and
// insert, and the partial unique indexes catch any racing insert that
// slipped past the lock via a different car or user row.
func (r *rentalRepository) CreateWithCarHold(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapStoreError(err)
	}
	defer tx.Rollback()

	var carStatus domain.CarStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM cars WHERE id = $1 FOR UPDATE`, rt.CarID,
	).Scan(&carStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return mapStoreError(err)
	}
	if carStatus != domain.CarStatusAvailable {
		// A non-AVAILABLE car at this point means an occupying rental holds
		// it. When we blocked on the row lock behind a racing create, the
		// winner flipped the car before we got here, so this is the losing
		// side of a race, not a validity failure.
		return fmt.Errorf("%w: car is %s", domain.ErrConflict, carStatus)
	}

	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	now := time.Now()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO rentals (`+rentalColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rt.ID, rt.CarID, rt.UserID, rt.StartDate, rt.EndDate,
		rt.TotalPriceCents, rt.Status, rt.ReservationCode, now, now)
	if err != nil {
		return mapStoreError(err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE cars SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`,
		domain.CarStatusRented, now, rt.CarID, domain.CarStatusAvailable)
	if err != nil {
		return mapStoreError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Cannot happen while we hold the row lock; refuse to commit anyway.
		return domain.ErrConflict
	}

	if err := tx.Commit(); err != nil {
		return mapStoreError(err)
	}

	rt.CreatedOn = now.Format(time.RFC3339Nano)
	rt.UpdatedOn = rt.CreatedOn
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id))
}

// GetActiveByCar returns the rental occupying the car's slot, or nil when
// the car is free.
func (r *rentalRepository) GetActiveByCar(ctx context.Context, carID string) (*domain.Rental, error) {
	rt, err := r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals
		 WHERE car_id = $1 AND status IN ($2, $3)`,
		carID, domain.RentalStatusReserved, domain.RentalStatusActive))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return rt, err
}

func (r *rentalRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.Rental, error) {
	rt, err := r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals
		 WHERE user_id = $1 AND status IN ($2, $3)`,
		userID, domain.RentalStatusReserved, domain.RentalStatusActive))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return rt, err
}

// TransitionStatus performs the CAS on the rental row and the companion car
// flip in one transaction. Zero rows on the CAS means another operation won
// the race; the caller sees domain.ErrStaleStatus, never a silent no-op.
func (r *rentalRepository) TransitionStatus(ctx context.Context, rentalID string, from, to domain.RentalStatus, carStatus domain.CarStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapStoreError(err)
	}
	defer tx.Rollback()

	now := time.Now()
	var carID string
	err = tx.QueryRowContext(ctx,
		`UPDATE rentals SET status = $1, updated_on = $2
		 WHERE id = $3 AND status = $4
		 RETURNING car_id`,
		to, now, rentalID, from).Scan(&carID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrStaleStatus
	}
	if err != nil {
		return mapStoreError(err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE cars SET status = $1, updated_on = $2 WHERE id = $3`,
		carStatus, now, carID)
	if err != nil {
		return mapStoreError(err)
	}

	if err := tx.Commit(); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func (r *rentalRepository) ActivateDue(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`UPDATE rentals SET status = $1, updated_on = $2
		 WHERE status = $3 AND start_date <= $4
		 RETURNING id`,
		domain.RentalStatusActive, time.Now(), domain.RentalStatusReserved, now)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID string, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1`
	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, mapStoreError(err)
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapStoreError(err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) ListEndingBefore(ctx context.Context, cutoff time.Time) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals
		 WHERE status = $1 AND end_date <= $2`,
		domain.RentalStatusActive, cutoff)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRental(row rowScanner, rt *domain.Rental) error {
	return row.Scan(&rt.ID, &rt.CarID, &rt.UserID, &rt.StartDate, &rt.EndDate,
		&rt.TotalPriceCents, &rt.Status, &rt.ReservationCode, &rt.CreatedOn, &rt.UpdatedOn)
}

func (r *rentalRepository) scanOne(row *sql.Row) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := scanRental(row, rt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, mapStoreError(err)
	}
	return rt, nil
}

// mapStoreError translates driver-level failures into the domain vocabulary.
// Unique violations on the active-slot indexes become ErrConflict, a
// reservation-code collision becomes ErrDuplicateCode so the engine can
// retry with a fresh code, and context deadline expiry becomes ErrTimeout.
func mapStoreError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case constraintActiveCar, constraintActiveUser:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Constraint)
		case constraintCode:
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Constraint)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrTimeout
	}
	logger.Debug("store error passed through unmapped", "error", err)
	return err
}
