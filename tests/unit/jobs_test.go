package unit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/jobs"
	"car-rental-backend/internal/repository/postgres"
)

func TestJobRunner_ActivateDueRentals(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	rentalRepo.On("ActivateDue", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]string{"rental-1", "rental-2"}, nil)

	store := &postgres.Store{RentalRepository: rentalRepo}
	jr := jobs.NewJobRunner(nil, store, &jobs.Services{}, nil)

	jr.ActivateDueRentals()
	rentalRepo.AssertExpectations(t)
}

func TestJobRunner_SendReturnReminders(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	userRepo := new(MockUserRepo)
	carRepo := new(MockCarRepo)
	emailSvc := new(MockEmailService)

	endDate := time.Now().Add(12 * time.Hour)
	rentalRepo.On("ListEndingBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]domain.Rental{{
			ID:      "rental-1",
			CarID:   "car-1",
			UserID:  "user-1",
			EndDate: endDate,
			Status:  domain.RentalStatusActive,
		}}, nil)
	userRepo.On("GetByID", mock.Anything, "user-1").
		Return(&domain.User{ID: "user-1", Email: "renter@test.com", FullName: "Renter"}, nil)
	carRepo.On("GetByID", mock.Anything, "car-1").
		Return(&domain.Car{ID: "car-1", Brand: "Toyota", Model: "Corolla"}, nil)
	emailSvc.On("SendReturnReminder", mock.Anything, "renter@test.com", "Renter", "Toyota Corolla", endDate).
		Return(nil)

	store := &postgres.Store{
		RentalRepository: rentalRepo,
		UserRepository:   userRepo,
		CarRepository:    carRepo,
	}
	jr := jobs.NewJobRunner(nil, store, &jobs.Services{Email: emailSvc}, nil)

	jr.SendReturnReminders()
	emailSvc.AssertExpectations(t)
}
