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
	"unirent-backend/internal/utils"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, vehicle_id, rental_id, reference_code, customer_name, customer_email, customer_phone, start_date, end_date, message, admin_notes, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.BookingRequest, error) {
	req := &domain.BookingRequest{}
	err := row.Scan(&req.ID, &req.VehicleID, &req.RentalID, &req.ReferenceCode,
		&req.CustomerName, &req.CustomerEmail, &req.CustomerPhone,
		&req.StartDate, &req.EndDate, &req.Message, &req.AdminNotes,
		&req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *bookingRepository) Create(ctx context.Context, req *domain.BookingRequest) error {
	req.Status = domain.BookingStatusPending
	query := `INSERT INTO booking_requests (vehicle_id, reference_code, customer_name, customer_email, customer_phone, start_date, end_date, message, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at, updated_at`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		req.VehicleID, req.ReferenceCode, req.CustomerName, req.CustomerEmail, req.CustomerPhone,
		req.StartDate, req.EndDate, req.Message, req.Status, now, now).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("reference code already in use")
		}
		return err
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	query := `SELECT ` + bookingColumns + ` FROM booking_requests WHERE id = $1`
	req, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("booking request")
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *bookingRepository) GetByReference(ctx context.Context, code string) (*domain.BookingRequest, error) {
	query := `SELECT ` + bookingColumns + ` FROM booking_requests WHERE reference_code = $1`
	req, err := scanBooking(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("booking request")
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *bookingRepository) Confirm(ctx context.Context, params repository.ConfirmBookingParams) (*domain.BookingRequest, *domain.Rental, error) {
	var confirmed *domain.BookingRequest
	var rental *domain.Rental

	err := execTx(ctx, r.db, func(tx *sql.Tx) error {
		// Guarded on pending so a second confirm aborts here, before any
		// vehicle or rental write.
		query := `UPDATE booking_requests SET status='confirmed', admin_notes=$1, updated_at=$2
		          WHERE id=$3 AND status='pending' RETURNING ` + bookingColumns
		req, err := scanBooking(tx.QueryRowContext(ctx, query, params.AdminNotes, time.Now(), params.BookingID))
		if errors.Is(err, sql.ErrNoRows) {
			return missingPendingBooking(ctx, tx, params.BookingID)
		}
		if err != nil {
			return err
		}

		if params.CreateRental {
			var exists bool
			if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`, params.ClientID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return domain.NotFoundError("client")
			}

			// Flip the vehicle and snapshot its daily rate and odometer in
			// the same statement.
			var dailyRate float64
			var mileage int64
			err := tx.QueryRowContext(ctx,
				`UPDATE vehicles SET status='rented', updated_at=$1 WHERE id=$2 AND status='available' RETURNING daily_rate, mileage`,
				time.Now(), req.VehicleID).Scan(&dailyRate, &mileage)
			if errors.Is(err, sql.ErrNoRows) {
				var current domain.VehicleStatus
				err := tx.QueryRowContext(ctx, `SELECT status FROM vehicles WHERE id = $1`, req.VehicleID).Scan(&current)
				if errors.Is(err, sql.ErrNoRows) {
					return domain.NotFoundError("vehicle")
				}
				if err != nil {
					return err
				}
				return &domain.StateError{Entity: "vehicle", From: string(current), To: string(domain.VehicleStatusRented)}
			}
			if err != nil {
				return err
			}

			total, err := utils.CalculateRentalTotal(domain.RateTypeDaily, dailyRate, req.StartDate, req.EndDate)
			if err != nil {
				return err
			}

			rt := &domain.Rental{
				VehicleID:      req.VehicleID,
				ClientID:       params.ClientID,
				StartDate:      req.StartDate,
				PlannedEndDate: req.EndDate,
				MileageStart:   mileage,
				FuelLevelStart: 100,
				RateType:       domain.RateTypeDaily,
				RateAmount:     dailyRate,
				TotalAmount:    total,
				PaymentMethod:  "cash",
				PaymentStatus:  domain.PaymentStatusUnpaid,
				Status:         domain.RentalStatusActive,
				Notes:          fmt.Sprintf("from booking request %s", req.ReferenceCode),
			}
			now := time.Now()
			insert := `INSERT INTO rentals (vehicle_id, client_id, start_date, planned_end_date, mileage_start, fuel_level_start, rate_type, rate_amount, total_amount, deposit_amount, payment_method, payment_status, status, notes, created_at, updated_at)
			           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id, created_at, updated_at`
			if err := tx.QueryRowContext(ctx, insert,
				rt.VehicleID, rt.ClientID, rt.StartDate, rt.PlannedEndDate, rt.MileageStart, rt.FuelLevelStart,
				rt.RateType, rt.RateAmount, rt.TotalAmount, rt.DepositAmount, rt.PaymentMethod, rt.PaymentStatus,
				rt.Status, rt.Notes, now, now).
				Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, `UPDATE booking_requests SET rental_id=$1, updated_at=$2 WHERE id=$3`, rt.ID, time.Now(), req.ID); err != nil {
				return err
			}
			req.RentalID = &rt.ID
			rental = rt
		}

		confirmed = req
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return confirmed, rental, nil
}

func (r *bookingRepository) Reject(ctx context.Context, id int64, adminNotes string) (*domain.BookingRequest, error) {
	query := `UPDATE booking_requests SET status='rejected', admin_notes=$1, updated_at=$2
	          WHERE id=$3 AND status='pending' RETURNING ` + bookingColumns
	req, err := scanBooking(r.db.QueryRowContext(ctx, query, adminNotes, time.Now(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, missingPendingBooking(ctx, r.db, id)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *bookingRepository) Complete(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	query := `UPDATE booking_requests SET status='completed', updated_at=$1
	          WHERE id=$2 AND status='confirmed' RETURNING ` + bookingColumns
	req, err := scanBooking(r.db.QueryRowContext(ctx, query, time.Now(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.stateOrNotFound(ctx, id, domain.BookingStatusCompleted)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *bookingRepository) stateOrNotFound(ctx context.Context, id int64, to domain.BookingStatus) error {
	var current domain.BookingStatus
	err := r.db.QueryRowContext(ctx, `SELECT status FROM booking_requests WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError("booking request")
	}
	if err != nil {
		return err
	}
	return &domain.StateError{Entity: "booking request", From: string(current), To: string(to)}
}

// A request that is no longer pending is invisible to confirm and reject:
// whether the row is gone or already decided, both callers get not found.
func missingPendingBooking(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, id int64) error {
	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM booking_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.NotFoundError("booking request")
	}
	return domain.NotFoundError("pending booking request")
}

func (r *bookingRepository) List(ctx context.Context, status string, page, pageSize int) ([]domain.BookingRequest, int, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM booking_requests`
	countQuery := `SELECT count(*) FROM booking_requests`

	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		countQuery += ` WHERE status = $1`
		args = append(args, status)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []domain.BookingRequest
	for rows.Next() {
		req, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *req)
	}
	return requests, count, rows.Err()
}

func (r *bookingRepository) ListPending(ctx context.Context) ([]domain.BookingRequest, error) {
	query := `SELECT ` + bookingColumns + ` FROM booking_requests WHERE status = 'pending' ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.BookingRequest
	for rows.Next() {
		req, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *bookingRepository) HeldIntervals(ctx context.Context, vehicleID int64) ([]availability.Interval, error) {
	query := `SELECT start_date, end_date FROM booking_requests WHERE vehicle_id = $1 AND status IN ('pending', 'confirmed')`
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
