package repository

import (
	"context"
	"time"

	"unirent-backend/internal/availability"
	"unirent-backend/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	// UpdateStatus flips the vehicle status with a single conditional UPDATE
	// and fails with a StateError when the vehicle is no longer in `from`.
	UpdateStatus(ctx context.Context, id int64, from, to domain.VehicleStatus) error
	// BumpMileage raises the odometer to at least the given reading; it never
	// decreases it.
	BumpMileage(ctx context.Context, id int64, mileage int64) error
	List(ctx context.Context, status string, page, pageSize int) ([]domain.Vehicle, int, error)
	// ListCatalog returns all non-archived vehicles for the public site.
	ListCatalog(ctx context.Context) ([]domain.Vehicle, error)
}

type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, query string, page, pageSize int) ([]domain.Client, int, error)
}

// ConfirmBookingParams carries the admin's confirmation decision into the
// booking repository transaction.
type ConfirmBookingParams struct {
	BookingID    int64
	AdminNotes   string
	CreateRental bool
	ClientID     int64
}

type RentalRepository interface {
	// CreateActive inserts the rental and flips the vehicle to rented in one
	// transaction. The vehicle flip is a conditional UPDATE guarded on
	// status='available'; zero affected rows aborts with ErrNotFound or a
	// StateError depending on whether the vehicle exists.
	CreateActive(ctx context.Context, rt *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	Update(ctx context.Context, rt *domain.Rental) error
	// Complete terminates an active rental and frees the vehicle, clamping
	// the odometer with GREATEST so it never regresses.
	Complete(ctx context.Context, id int64, mileageEnd int64, fuelLevelEnd *int, actualEnd time.Time) (*domain.Rental, error)
	// Cancel terminates an active rental without payment capture and frees
	// the vehicle.
	Cancel(ctx context.Context, id int64, reason string) (*domain.Rental, error)
	List(ctx context.Context, status string, vehicleID, clientID int64, page, pageSize int) ([]domain.Rental, int, error)
	// ActiveIntervals returns the date ranges of active rentals for a vehicle.
	ActiveIntervals(ctx context.Context, vehicleID int64) ([]availability.Interval, error)
	// ListOverdue returns active rentals whose planned end has passed.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error)
}

type BookingRepository interface {
	// Create inserts a pending request; a reference-code collision surfaces
	// as a ConflictError so the caller can regenerate and retry.
	Create(ctx context.Context, req *domain.BookingRequest) error
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	GetByReference(ctx context.Context, code string) (*domain.BookingRequest, error)
	// Confirm transitions pending→confirmed and, when requested, spawns an
	// active rental at the vehicle's daily rate and current mileage, all in
	// one transaction.
	Confirm(ctx context.Context, params ConfirmBookingParams) (*domain.BookingRequest, *domain.Rental, error)
	// Reject transitions pending→rejected with a conditional UPDATE.
	Reject(ctx context.Context, id int64, adminNotes string) (*domain.BookingRequest, error)
	// Complete closes out a confirmed request.
	Complete(ctx context.Context, id int64) (*domain.BookingRequest, error)
	List(ctx context.Context, status string, page, pageSize int) ([]domain.BookingRequest, int, error)
	ListPending(ctx context.Context) ([]domain.BookingRequest, error)
	// HeldIntervals returns the date ranges of pending and confirmed requests
	// for a vehicle; these are soft holds on the calendar.
	HeldIntervals(ctx context.Context, vehicleID int64) ([]availability.Interval, error)
}

type MaintenanceRepository interface {
	// Create inserts the record, bumps the vehicle odometer (GREATEST) and,
	// when the record takes the vehicle out of service, flips an available
	// vehicle to maintenance — one transaction.
	Create(ctx context.Context, rec *domain.MaintenanceRecord) error
	List(ctx context.Context, vehicleID int64, page, pageSize int) ([]domain.MaintenanceRecord, int, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, id int64) (*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, vehicleID int64, page, pageSize int) ([]domain.Expense, int, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
