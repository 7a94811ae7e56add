package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"unirent-backend/internal/domain"
	"unirent-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, brand, model, plate, vin, year, color, fuel_type, mileage, daily_rate, status, created_at, updated_at`

func scanVehicle(row interface{ Scan(...any) error }) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(&v.ID, &v.Brand, &v.Model, &v.Plate, &v.VIN, &v.Year, &v.Color, &v.FuelType, &v.Mileage, &v.DailyRate, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	query := `INSERT INTO vehicles (brand, model, plate, vin, year, color, fuel_type, mileage, daily_rate, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_at, updated_at`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, v.Brand, v.Model, v.Plate, v.VIN, v.Year, v.Color, v.FuelType, v.Mileage, v.DailyRate, v.Status, now, now).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("a vehicle with this plate or VIN already exists")
		}
		return err
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("vehicle")
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET brand=$1, model=$2, plate=$3, vin=$4, year=$5, color=$6, fuel_type=$7, mileage=GREATEST(mileage, $8), daily_rate=$9, updated_at=$10 WHERE id=$11`
	res, err := r.db.ExecContext(ctx, query, v.Brand, v.Model, v.Plate, v.VIN, v.Year, v.Color, v.FuelType, v.Mileage, v.DailyRate, time.Now(), v.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("vehicle")
	}
	return nil
}

// UpdateStatus is a single conditional UPDATE so concurrent requests cannot
// both move the vehicle out of the same state.
func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.VehicleStatus) error {
	if err := from.CanTransition(to); err != nil {
		return err
	}
	query := `UPDATE vehicles SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the vehicle is gone or its status moved under us.
		var current domain.VehicleStatus
		err := r.db.QueryRowContext(ctx, `SELECT status FROM vehicles WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError("vehicle")
		}
		if err != nil {
			return err
		}
		return &domain.StateError{Entity: "vehicle", From: string(current), To: string(to)}
	}
	return nil
}

func (r *vehicleRepository) BumpMileage(ctx context.Context, id int64, mileage int64) error {
	query := `UPDATE vehicles SET mileage=GREATEST(mileage, $1), updated_at=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, mileage, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("vehicle")
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, status string, page, pageSize int) ([]domain.Vehicle, int, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	countQuery := `SELECT count(*) FROM vehicles`

	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		countQuery += ` WHERE status = $1`
		args = append(args, status)
	} else {
		// Archived vehicles are excluded from all active listings.
		query += ` WHERE status <> 'archived'`
		countQuery += ` WHERE status <> 'archived'`
	}

	var count int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY brand, model LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, count, rows.Err()
}

func (r *vehicleRepository) ListCatalog(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE status <> 'archived' ORDER BY brand, model`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}
