package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository"
)

const carColumns = `id, brand, model, daily_price_cents, status, image_url, created_on, updated_on`

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = domain.CarStatusAvailable
	}
	now := time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cars (`+carColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Brand, c.Model, c.DailyPriceCents, c.Status, c.ImageURL, now, now)
	return mapStoreError(err)
}

func (r *carRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	c := &domain.Car{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+carColumns+` FROM cars WHERE id = $1`, id,
	).Scan(&c.ID, &c.Brand, &c.Model, &c.DailyPriceCents, &c.Status, &c.ImageURL, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, mapStoreError(err)
	}
	return c, nil
}

func (r *carRepository) ListAvailable(ctx context.Context, minPriceCents, maxPriceCents int64) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE status = $1`
	args := []interface{}{domain.CarStatusAvailable}
	if minPriceCents > 0 {
		args = append(args, minPriceCents)
		query += ` AND daily_price_cents >= $2`
	}
	if maxPriceCents > 0 {
		args = append(args, maxPriceCents)
		if minPriceCents > 0 {
			query += ` AND daily_price_cents <= $3`
		} else {
			query += ` AND daily_price_cents <= $2`
		}
	}
	query += ` ORDER BY daily_price_cents ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.Brand, &c.Model, &c.DailyPriceCents, &c.Status, &c.ImageURL, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *carRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM cars WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, mapStoreError(err)
	}
	return exists, nil
}

func (r *carRepository) SetImageURL(ctx context.Context, id, imageURL string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cars SET image_url = $1, updated_on = $2 WHERE id = $3`,
		imageURL, time.Now(), id)
	if err != nil {
		return mapStoreError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *carRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return mapStoreError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
