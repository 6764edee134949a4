package repos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository/postgres"
)

func newRental() *domain.Rental {
	return &domain.Rental{
		CarID:           "car-1",
		UserID:          "user-1",
		StartDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC),
		TotalPriceCents: 15000,
		Status:          domain.RentalStatusReserved,
		ReservationCode: "CAR-ABCDEFGH2",
	}
}

func TestRentalRepository_CreateWithCarHold(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rt := newRental()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM cars").
			WithArgs(rt.CarID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("AVAILABLE"))
		mock.ExpectExec("INSERT INTO rentals").
			WithArgs(sqlmock.AnyArg(), rt.CarID, rt.UserID, rt.StartDate, rt.EndDate,
				rt.TotalPriceCents, rt.Status, rt.ReservationCode, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE cars SET status").
			WithArgs(domain.CarStatusRented, sqlmock.AnyArg(), rt.CarID, domain.CarStatusAvailable).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateWithCarHold(ctx, rt)
		assert.NoError(t, err)
		assert.NotEmpty(t, rt.ID, "an id must be assigned on insert")
		assert.NotEmpty(t, rt.CreatedOn, "timestamps must be set on the returned rental")
		assert.Equal(t, rt.CreatedOn, rt.UpdatedOn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CarNotFound", func(t *testing.T) {
		rt := newRental()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM cars").
			WithArgs(rt.CarID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))
		mock.ExpectRollback()

		err := repo.CreateWithCarHold(ctx, rt)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RentedCarUnderLockBecomesConflict", func(t *testing.T) {
		// The locked row reading RENTED means a racing create committed
		// first; the loser reports a conflict, not a validity failure.
		rt := newRental()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM cars").
			WithArgs(rt.CarID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("RENTED"))
		mock.ExpectRollback()

		err := repo.CreateWithCarHold(ctx, rt)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ActiveSlotViolationBecomesConflict", func(t *testing.T) {
		rt := newRental()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM cars").
			WithArgs(rt.CarID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("AVAILABLE"))
		mock.ExpectExec("INSERT INTO rentals").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_rentals_active_user"})
		mock.ExpectRollback()

		err := repo.CreateWithCarHold(ctx, rt)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CodeViolationBecomesDuplicateCode", func(t *testing.T) {
		rt := newRental()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM cars").
			WithArgs(rt.CarID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("AVAILABLE"))
		mock.ExpectExec("INSERT INTO rentals").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_rentals_reservation_code"})
		mock.ExpectRollback()

		err := repo.CreateWithCarHold(ctx, rt)
		assert.ErrorIs(t, err, domain.ErrDuplicateCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_TransitionStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE rentals SET status").
			WithArgs(domain.RentalStatusReturned, sqlmock.AnyArg(), "rental-1", domain.RentalStatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"car_id"}).AddRow("car-1"))
		mock.ExpectExec("UPDATE cars SET status").
			WithArgs(domain.CarStatusAvailable, sqlmock.AnyArg(), "car-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.TransitionStatus(ctx, "rental-1",
			domain.RentalStatusActive, domain.RentalStatusReturned, domain.CarStatusAvailable)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StaleStatus", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE rentals SET status").
			WithArgs(domain.RentalStatusReturned, sqlmock.AnyArg(), "rental-1", domain.RentalStatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"car_id"}))
		mock.ExpectRollback()

		err := repo.TransitionStatus(ctx, "rental-1",
			domain.RentalStatusActive, domain.RentalStatusReturned, domain.CarStatusAvailable)
		assert.ErrorIs(t, err, domain.ErrStaleStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_ActivateDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("UPDATE rentals SET status").
		WithArgs(domain.RentalStatusActive, sqlmock.AnyArg(), domain.RentalStatusReserved, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rental-1").AddRow("rental-2"))

	ids, err := repo.ActivateDue(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, []string{"rental-1", "rental-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_GetActiveByCar(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	cols := []string{"id", "car_id", "user_id", "start_date", "end_date",
		"total_price_cents", "status", "reservation_code", "created_on", "updated_on"}

	t.Run("Occupied", func(t *testing.T) {
		start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 3)
		mock.ExpectQuery("SELECT (.+) FROM rentals").
			WithArgs("car-1", domain.RentalStatusReserved, domain.RentalStatusActive).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("rental-1", "car-1", "user-1", start, end,
					int64(15000), "RESERVED", "CAR-ABCDEFGH2", "2026-03-30", "2026-03-30"))

		rt, err := repo.GetActiveByCar(ctx, "car-1")
		assert.NoError(t, err)
		assert.NotNil(t, rt)
		assert.Equal(t, domain.RentalStatusReserved, rt.Status)
	})

	t.Run("ContextExpiryBecomesTimeout", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals").
			WithArgs("rental-1").
			WillReturnError(context.Canceled)

		_, err := repo.GetByID(ctx, "rental-1")
		assert.ErrorIs(t, err, domain.ErrTimeout)

		mock.ExpectQuery("SELECT (.+) FROM rentals").
			WithArgs("rental-1").
			WillReturnError(context.DeadlineExceeded)

		_, err = repo.GetByID(ctx, "rental-1")
		assert.ErrorIs(t, err, domain.ErrTimeout)
	})

	t.Run("Free", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals").
			WithArgs("car-1", domain.RentalStatusReserved, domain.RentalStatusActive).
			WillReturnRows(sqlmock.NewRows(cols))

		rt, err := repo.GetActiveByCar(ctx, "car-1")
		assert.NoError(t, err)
		assert.Nil(t, rt, "a free car is a normal outcome, not an error")
	})
}
