package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"unirent-backend/internal/availability"
	"unirent-backend/internal/domain"
	"unirent-backend/internal/repository"
)

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.VehicleStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockVehicleRepo) BumpMileage(ctx context.Context, id int64, mileage int64) error {
	args := m.Called(ctx, id, mileage)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context, status string, page, pageSize int) ([]domain.Vehicle, int, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Int(1), args.Error(2)
}
func (m *MockVehicleRepo) ListCatalog(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) Update(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockClientRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockClientRepo) List(ctx context.Context, query string, page, pageSize int) ([]domain.Client, int, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Client), args.Int(1), args.Error(2)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateActive(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) Complete(ctx context.Context, id int64, mileageEnd int64, fuelLevelEnd *int, actualEnd time.Time) (*domain.Rental, error) {
	args := m.Called(ctx, id, mileageEnd, fuelLevelEnd, actualEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Cancel(ctx context.Context, id int64, reason string) (*domain.Rental, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) List(ctx context.Context, status string, vehicleID, clientID int64, page, pageSize int) ([]domain.Rental, int, error) {
	args := m.Called(ctx, status, vehicleID, clientID, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Int(1), args.Error(2)
}
func (m *MockRentalRepo) ActiveIntervals(ctx context.Context, vehicleID int64) ([]availability.Interval, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.Interval), args.Error(1)
}
func (m *MockRentalRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, req *domain.BookingRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}
func (m *MockBookingRepo) GetByReference(ctx context.Context, code string) (*domain.BookingRequest, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}
func (m *MockBookingRepo) Confirm(ctx context.Context, params repository.ConfirmBookingParams) (*domain.BookingRequest, *domain.Rental, error) {
	args := m.Called(ctx, params)
	var req *domain.BookingRequest
	var rental *domain.Rental
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.BookingRequest)
	}
	if args.Get(1) != nil {
		rental = args.Get(1).(*domain.Rental)
	}
	return req, rental, args.Error(2)
}
func (m *MockBookingRepo) Reject(ctx context.Context, id int64, adminNotes string) (*domain.BookingRequest, error) {
	args := m.Called(ctx, id, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}
func (m *MockBookingRepo) Complete(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}
func (m *MockBookingRepo) List(ctx context.Context, status string, page, pageSize int) ([]domain.BookingRequest, int, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.BookingRequest), args.Int(1), args.Error(2)
}
func (m *MockBookingRepo) ListPending(ctx context.Context) ([]domain.BookingRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingRequest), args.Error(1)
}
func (m *MockBookingRepo) HeldIntervals(ctx context.Context, vehicleID int64) ([]availability.Interval, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.Interval), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingReceived(ctx context.Context, to, customerName, refCode string, vehicle string, start, end time.Time) error {
	args := m.Called(ctx, to, customerName, refCode, vehicle, start, end)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingConfirmed(ctx context.Context, to, customerName, refCode string, vehicle string, start, end time.Time) error {
	args := m.Called(ctx, to, customerName, refCode, vehicle, start, end)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRejected(ctx context.Context, to, customerName, refCode string) error {
	args := m.Called(ctx, to, customerName, refCode)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueRentalReport(ctx context.Context, to string, rentals []domain.Rental) error {
	args := m.Called(ctx, to, rentals)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingBookingDigest(ctx context.Context, to string, requests []domain.BookingRequest) error {
	args := m.Called(ctx, to, requests)
	return args.Error(0)
}
