package service

import (
	"context"
	"time"

	"unirent-backend/internal/domain"
)

// CreateRentalInput carries the admin's rental creation request.
type CreateRentalInput struct {
	VehicleID      int64
	ClientID       int64
	StartDate      time.Time
	PlannedEndDate time.Time
	MileageStart   int64
	FuelLevelStart int
	RateType       domain.RateType
	RateAmount     float64
	DepositAmount  float64
	PaymentMethod  string
	Notes          string
}

// UpdateRentalInput holds the mutable rental fields; nil means unchanged.
// The start date is fixed for the life of the contract.
type UpdateRentalInput struct {
	PlannedEndDate *time.Time
	RateType       *domain.RateType
	RateAmount     *float64
	DepositAmount  *float64
	PaymentMethod  *string
	Notes          *string
}

type CompleteRentalInput struct {
	MileageEnd    int64
	FuelLevelEnd  *int
	ActualEndDate *time.Time
}

type RentalService interface {
	Create(ctx context.Context, input CreateRentalInput) (*domain.Rental, error)
	Get(ctx context.Context, id int64) (*domain.Rental, error)
	Update(ctx context.Context, id int64, input UpdateRentalInput) (*domain.Rental, error)
	Complete(ctx context.Context, id int64, input CompleteRentalInput) (*domain.Rental, error)
	Cancel(ctx context.Context, id int64, reason string) (*domain.Rental, error)
	List(ctx context.Context, status string, vehicleID, clientID int64, page, pageSize int) ([]domain.Rental, int, error)
}

// CreateBookingInput is a reservation submitted through the public site.
type CreateBookingInput struct {
	VehicleID     int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	StartDate     time.Time
	EndDate       time.Time
	Message       string
}

type BookingService interface {
	CreateFromWebsite(ctx context.Context, input CreateBookingInput) (*domain.BookingRequest, error)
	Confirm(ctx context.Context, id int64, clientID int64, createRental bool, adminNotes string) (*domain.BookingRequest, *domain.Rental, error)
	Reject(ctx context.Context, id int64, adminNotes string) (*domain.BookingRequest, error)
	Complete(ctx context.Context, id int64) (*domain.BookingRequest, error)
	Get(ctx context.Context, id int64) (*domain.BookingRequest, error)
	GetByReference(ctx context.Context, code string) (*domain.BookingRequest, error)
	List(ctx context.Context, status string, page, pageSize int) ([]domain.BookingRequest, int, error)
}

type CatalogService interface {
	// ListAvailableCars returns non-archived vehicles whose calendar is free
	// for the whole [from, to) range.
	ListAvailableCars(ctx context.Context, from, to time.Time) ([]domain.Vehicle, error)
	ListCars(ctx context.Context) ([]domain.Vehicle, error)
	GetCar(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type VehicleService interface {
	Add(ctx context.Context, v *domain.Vehicle) error
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Archive(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	SendToMaintenance(ctx context.Context, id int64) error
	ReturnToService(ctx context.Context, id int64) error
	List(ctx context.Context, status string, page, pageSize int) ([]domain.Vehicle, int, error)
}

type ClientService interface {
	Add(ctx context.Context, c *domain.Client) error
	Get(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, query string, page, pageSize int) ([]domain.Client, int, error)
}

type MaintenanceService interface {
	Record(ctx context.Context, rec *domain.MaintenanceRecord) error
	List(ctx context.Context, vehicleID int64, page, pageSize int) ([]domain.MaintenanceRecord, int, error)
}

type ExpenseService interface {
	Add(ctx context.Context, e *domain.Expense) error
	Get(ctx context.Context, id int64) (*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, vehicleID int64, page, pageSize int) ([]domain.Expense, int, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, *domain.User, error) // access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type EmailService interface {
	SendBookingReceived(ctx context.Context, to, customerName, refCode string, vehicle string, start, end time.Time) error
	SendBookingConfirmed(ctx context.Context, to, customerName, refCode string, vehicle string, start, end time.Time) error
	SendBookingRejected(ctx context.Context, to, customerName, refCode string) error
	SendOverdueRentalReport(ctx context.Context, to string, rentals []domain.Rental) error
	SendPendingBookingDigest(ctx context.Context, to string, requests []domain.BookingRequest) error
}
