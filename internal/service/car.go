package service

import (
	"context"
	"fmt"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

type carService struct {
	carRepo    repository.CarRepository
	rentalRepo repository.RentalRepository
}

func NewCarService(carRepo repository.CarRepository, rentalRepo repository.RentalRepository) CarService {
	return &carService{carRepo: carRepo, rentalRepo: rentalRepo}
}

func (s *carService) CreateCar(ctx context.Context, brand, model string, dailyPriceCents int64, imageURL string) (*domain.Car, error) {
	if dailyPriceCents < 0 {
		return nil, fmt.Errorf("%w: daily price must be non-negative", domain.ErrNotEligible)
	}
	car := &domain.Car{
		Brand:           brand,
		Model:           model,
		DailyPriceCents: dailyPriceCents,
		Status:          domain.CarStatusAvailable,
		ImageURL:        imageURL,
	}
	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}
	logger.Info("car created", "car_id", car.ID, "brand", brand, "model", model)
	return car, nil
}

func (s *carService) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) ListAvailableCars(ctx context.Context, minPriceCents, maxPriceCents int64) ([]domain.Car, error) {
	return s.carRepo.ListAvailable(ctx, minPriceCents, maxPriceCents)
}

// DeleteCar refuses to delete a car that still holds an active rental.
func (s *carService) DeleteCar(ctx context.Context, id string) error {
	active, err := s.rentalRepo.GetActiveByCar(ctx, id)
	if err != nil {
		return err
	}
	if active != nil {
		return fmt.Errorf("%w: car has an active rental", domain.ErrConflict)
	}
	return s.carRepo.Delete(ctx, id)
}

func (s *carService) SetCarImage(ctx context.Context, id, imageURL string) error {
	return s.carRepo.SetImageURL(ctx, id, imageURL)
}
