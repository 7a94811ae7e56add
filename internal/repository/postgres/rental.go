package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"unirent-backend/internal/availability"
	"unirent-backend/internal/domain"
	"unirent-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, vehicle_id, client_id, start_date, planned_end_date, actual_end_date, mileage_start, mileage_end, fuel_level_start, fuel_level_end, rate_type, rate_amount, total_amount, deposit_amount, payment_method, payment_status, status, notes, created_at, updated_at`

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.VehicleID, &rt.ClientID, &rt.StartDate, &rt.PlannedEndDate, &rt.ActualEndDate,
		&rt.MileageStart, &rt.MileageEnd, &rt.FuelLevelStart, &rt.FuelLevelEnd,
		&rt.RateType, &rt.RateAmount, &rt.TotalAmount, &rt.DepositAmount,
		&rt.PaymentMethod, &rt.PaymentStatus, &rt.Status, &rt.Notes, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// markVehicleRented flips an available vehicle to rented inside tx. The
// conditional UPDATE closes the check-then-act race: of two concurrent
// creations for the same vehicle, only one sees an affected row.
func markVehicleRented(ctx context.Context, tx *sql.Tx, vehicleID int64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE vehicles SET status='rented', updated_at=$1 WHERE id=$2 AND status='available'`,
		time.Now(), vehicleID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var current domain.VehicleStatus
		err := tx.QueryRowContext(ctx, `SELECT status FROM vehicles WHERE id = $1`, vehicleID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError("vehicle")
		}
		if err != nil {
			return err
		}
		return &domain.StateError{Entity: "vehicle", From: string(current), To: string(domain.VehicleStatusRented)}
	}
	return nil
}

func (r *rentalRepository) CreateActive(ctx context.Context, rt *domain.Rental) error {
	return execTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := markVehicleRented(ctx, tx, rt.VehicleID); err != nil {
			return err
		}

		rt.Status = domain.RentalStatusActive
		rt.PaymentStatus = domain.PaymentStatusUnpaid
		query := `INSERT INTO rentals (vehicle_id, client_id, start_date, planned_end_date, mileage_start, fuel_level_start, rate_type, rate_amount, total_amount, deposit_amount, payment_method, payment_status, status, notes, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id, created_at, updated_at`
		now := time.Now()
		return tx.QueryRowContext(ctx, query,
			rt.VehicleID, rt.ClientID, rt.StartDate, rt.PlannedEndDate, rt.MileageStart, rt.FuelLevelStart,
			rt.RateType, rt.RateAmount, rt.TotalAmount, rt.DepositAmount, rt.PaymentMethod, rt.PaymentStatus,
			rt.Status, rt.Notes, now, now).
			Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
	})
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("rental")
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET planned_end_date=$1, rate_type=$2, rate_amount=$3, total_amount=$4, deposit_amount=$5, payment_method=$6, notes=$7, updated_at=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query,
		rt.PlannedEndDate, rt.RateType, rt.RateAmount, rt.TotalAmount, rt.DepositAmount, rt.PaymentMethod, rt.Notes, time.Now(), rt.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("rental")
	}
	return nil
}

func (r *rentalRepository) Complete(ctx context.Context, id int64, mileageEnd int64, fuelLevelEnd *int, actualEnd time.Time) (*domain.Rental, error) {
	var completed *domain.Rental
	err := execTx(ctx, r.db, func(tx *sql.Tx) error {
		// Guarded on status so a double-complete loses the race cleanly.
		query := `UPDATE rentals SET status='completed', payment_status='paid', actual_end_date=$1, mileage_end=$2, fuel_level_end=$3, updated_at=$4
		          WHERE id=$5 AND status='active' RETURNING ` + rentalColumns
		rt, err := scanRental(tx.QueryRowContext(ctx, query, actualEnd, mileageEnd, fuelLevelEnd, time.Now(), id))
		if errors.Is(err, sql.ErrNoRows) {
			return rentalStateOrNotFound(ctx, tx, id, domain.RentalStatusCompleted)
		}
		if err != nil {
			return err
		}

		// Free the vehicle; GREATEST keeps the odometer monotonic even if a
		// stale reading slips through.
		_, err = tx.ExecContext(ctx,
			`UPDATE vehicles SET status='available', mileage=GREATEST(mileage, $1), updated_at=$2 WHERE id=$3`,
			mileageEnd, time.Now(), rt.VehicleID)
		if err != nil {
			return err
		}
		completed = rt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

func (r *rentalRepository) Cancel(ctx context.Context, id int64, reason string) (*domain.Rental, error) {
	var cancelled *domain.Rental
	err := execTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `UPDATE rentals SET status='cancelled', actual_end_date=$1, notes=TRIM(BOTH ' ' FROM notes || ' ' || $2), updated_at=$3
		          WHERE id=$4 AND status='active' RETURNING ` + rentalColumns
		rt, err := scanRental(tx.QueryRowContext(ctx, query, time.Now(), reason, time.Now(), id))
		if errors.Is(err, sql.ErrNoRows) {
			return rentalStateOrNotFound(ctx, tx, id, domain.RentalStatusCancelled)
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE vehicles SET status='available', updated_at=$1 WHERE id=$2 AND status='rented'`,
			time.Now(), rt.VehicleID)
		if err != nil {
			return err
		}
		cancelled = rt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// rentalStateOrNotFound distinguishes a missing rental from one whose status
// guard failed.
func rentalStateOrNotFound(ctx context.Context, tx *sql.Tx, id int64, to domain.RentalStatus) error {
	var current domain.RentalStatus
	err := tx.QueryRowContext(ctx, `SELECT status FROM rentals WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError("rental")
	}
	if err != nil {
		return err
	}
	return &domain.StateError{Entity: "rental", From: string(current), To: string(to)}
}

func (r *rentalRepository) List(ctx context.Context, status string, vehicleID, clientID int64, page, pageSize int) ([]domain.Rental, int, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE 1=1`

	var args []interface{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if vehicleID != 0 {
		args = append(args, vehicleID)
		query += fmt.Sprintf(" AND vehicle_id = $%d", len(args))
	}
	if clientID != 0 {
		args = append(args, clientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}

	var count int
	countQuery := `SELECT count(*) FROM (` + query + `) AS sub`
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) ActiveIntervals(ctx context.Context, vehicleID int64) ([]availability.Interval, error) {
	query := `SELECT start_date, COALESCE(actual_end_date, planned_end_date) FROM rentals WHERE vehicle_id = $1 AND status = 'active'`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intervals []availability.Interval
	for rows.Next() {
		var iv availability.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}

func (r *rentalRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = 'active' AND planned_end_date < $1 ORDER BY planned_end_date`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}
