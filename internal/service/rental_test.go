package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"unirent-backend/internal/availability"
	"unirent-backend/internal/domain"
)

func newRentalFixture() (*MockRentalRepo, *MockVehicleRepo, *MockClientRepo, *MockBookingRepo, RentalService) {
	rentalRepo := new(MockRentalRepo)
	vehicleRepo := new(MockVehicleRepo)
	clientRepo := new(MockClientRepo)
	bookingRepo := new(MockBookingRepo)
	svc := NewRentalService(rentalRepo, vehicleRepo, clientRepo, bookingRepo)
	return rentalRepo, vehicleRepo, clientRepo, bookingRepo, svc
}

func TestRentalService_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	input := CreateRentalInput{
		VehicleID:      1,
		ClientID:       2,
		StartDate:      start,
		PlannedEndDate: end,
		MileageStart:   12000,
		RateType:       domain.RateTypeDaily,
		RateAmount:     1000,
	}

	t.Run("Success", func(t *testing.T) {
		rentalRepo, vehicleRepo, clientRepo, bookingRepo, svc := newRentalFixture()

		clientRepo.On("GetByID", ctx, int64(2)).Return(&domain.Client{ID: 2}, nil)
		vehicleRepo.On("GetByID", ctx, int64(1)).Return(&domain.Vehicle{ID: 1, Status: domain.VehicleStatusAvailable}, nil)
		rentalRepo.On("ActiveIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		bookingRepo.On("HeldIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		rentalRepo.On("CreateActive", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rental, err := svc.Create(ctx, input)
		assert.NoError(t, err)
		assert.NotNil(t, rental)
		// 48h daily at 1000 = 2 units
		assert.Equal(t, float64(2000), rental.TotalAmount)
		assert.Equal(t, 100, rental.FuelLevelStart)
		assert.Equal(t, "cash", rental.PaymentMethod)
		rentalRepo.AssertExpectations(t)
	})

	t.Run("VehicleNotAvailable", func(t *testing.T) {
		_, vehicleRepo, clientRepo, _, svc := newRentalFixture()

		clientRepo.On("GetByID", ctx, int64(2)).Return(&domain.Client{ID: 2}, nil)
		vehicleRepo.On("GetByID", ctx, int64(1)).Return(&domain.Vehicle{ID: 1, Status: domain.VehicleStatusMaintenance}, nil)

		rental, err := svc.Create(ctx, input)
		assert.Nil(t, rental)
		var stateErr *domain.StateError
		assert.ErrorAs(t, err, &stateErr)
	})

	t.Run("DatesCollideWithHold", func(t *testing.T) {
		rentalRepo, vehicleRepo, clientRepo, bookingRepo, svc := newRentalFixture()

		clientRepo.On("GetByID", ctx, int64(2)).Return(&domain.Client{ID: 2}, nil)
		vehicleRepo.On("GetByID", ctx, int64(1)).Return(&domain.Vehicle{ID: 1, Status: domain.VehicleStatusAvailable}, nil)
		rentalRepo.On("ActiveIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		// Pending booking overlapping the requested window.
		bookingRepo.On("HeldIntervals", ctx, int64(1)).Return([]availability.Interval{
			{Start: start.Add(24 * time.Hour), End: end.Add(24 * time.Hour)},
		}, nil)

		rental, err := svc.Create(ctx, input)
		assert.Nil(t, rental)
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
		rentalRepo.AssertNotCalled(t, "CreateActive", mock.Anything, mock.Anything)
	})

	t.Run("TouchingHoldIsCompatible", func(t *testing.T) {
		rentalRepo, vehicleRepo, clientRepo, bookingRepo, svc := newRentalFixture()

		clientRepo.On("GetByID", ctx, int64(2)).Return(&domain.Client{ID: 2}, nil)
		vehicleRepo.On("GetByID", ctx, int64(1)).Return(&domain.Vehicle{ID: 1, Status: domain.VehicleStatusAvailable}, nil)
		// Prior hold ends exactly when the new rental starts.
		rentalRepo.On("ActiveIntervals", ctx, int64(1)).Return([]availability.Interval{
			{Start: start.Add(-48 * time.Hour), End: start},
		}, nil)
		bookingRepo.On("HeldIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		rentalRepo.On("CreateActive", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rental, err := svc.Create(ctx, input)
		assert.NoError(t, err)
		assert.NotNil(t, rental)
	})

	t.Run("MissingClient", func(t *testing.T) {
		_, _, clientRepo, _, svc := newRentalFixture()

		clientRepo.On("GetByID", ctx, int64(2)).Return(nil, domain.NotFoundError("client"))

		rental, err := svc.Create(ctx, input)
		assert.Nil(t, rental)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("InvalidRateType", func(t *testing.T) {
		rentalRepo, vehicleRepo, clientRepo, bookingRepo, svc := newRentalFixture()

		clientRepo.On("GetByID", ctx, int64(2)).Return(&domain.Client{ID: 2}, nil)
		vehicleRepo.On("GetByID", ctx, int64(1)).Return(&domain.Vehicle{ID: 1, Status: domain.VehicleStatusAvailable}, nil)
		rentalRepo.On("ActiveIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		bookingRepo.On("HeldIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)

		bad := input
		bad.RateType = "weekly"
		rental, err := svc.Create(ctx, bad)
		assert.Nil(t, rental)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestRentalService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rentalRepo, _, _, _, svc := newRentalFixture()

		active := &domain.Rental{ID: 7, VehicleID: 1, MileageStart: 10000, Status: domain.RentalStatusActive}
		completed := &domain.Rental{ID: 7, VehicleID: 1, MileageStart: 10000, Status: domain.RentalStatusCompleted}
		rentalRepo.On("GetByID", ctx, int64(7)).Return(active, nil)
		rentalRepo.On("Complete", ctx, int64(7), int64(10500), (*int)(nil), mock.AnythingOfType("time.Time")).Return(completed, nil)

		rental, err := svc.Complete(ctx, 7, CompleteRentalInput{MileageEnd: 10500})
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, rental.Status)
	})

	t.Run("MileageRegression", func(t *testing.T) {
		rentalRepo, _, _, _, svc := newRentalFixture()

		active := &domain.Rental{ID: 7, MileageStart: 10000, Status: domain.RentalStatusActive}
		rentalRepo.On("GetByID", ctx, int64(7)).Return(active, nil)

		rental, err := svc.Complete(ctx, 7, CompleteRentalInput{MileageEnd: 9000})
		assert.Nil(t, rental)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		rentalRepo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		rentalRepo, _, _, _, svc := newRentalFixture()

		done := &domain.Rental{ID: 7, MileageStart: 10000, Status: domain.RentalStatusCompleted}
		rentalRepo.On("GetByID", ctx, int64(7)).Return(done, nil)

		rental, err := svc.Complete(ctx, 7, CompleteRentalInput{MileageEnd: 10500})
		assert.Nil(t, rental)
		var stateErr *domain.StateError
		assert.ErrorAs(t, err, &stateErr)
	})
}

func TestRentalService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rentalRepo, _, _, _, svc := newRentalFixture()

		active := &domain.Rental{ID: 9, VehicleID: 3, Status: domain.RentalStatusActive}
		cancelled := &domain.Rental{ID: 9, VehicleID: 3, Status: domain.RentalStatusCancelled}
		rentalRepo.On("GetByID", ctx, int64(9)).Return(active, nil)
		rentalRepo.On("Cancel", ctx, int64(9), "client no-show").Return(cancelled, nil)

		rental, err := svc.Cancel(ctx, 9, "client no-show")
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCancelled, rental.Status)
	})

	t.Run("CancelCancelled", func(t *testing.T) {
		rentalRepo, _, _, _, svc := newRentalFixture()

		rentalRepo.On("GetByID", ctx, int64(9)).Return(&domain.Rental{ID: 9, Status: domain.RentalStatusCancelled}, nil)

		rental, err := svc.Cancel(ctx, 9, "")
		assert.Nil(t, rental)
		var stateErr *domain.StateError
		assert.ErrorAs(t, err, &stateErr)
	})
}

func TestRentalService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("RecomputesTotal", func(t *testing.T) {
		rentalRepo, _, _, _, svc := newRentalFixture()

		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		existing := &domain.Rental{
			ID:             5,
			StartDate:      start,
			PlannedEndDate: start.Add(48 * time.Hour),
			RateType:       domain.RateTypeDaily,
			RateAmount:     1000,
			TotalAmount:    2000,
			Status:         domain.RentalStatusActive,
		}
		rentalRepo.On("GetByID", ctx, int64(5)).Return(existing, nil)
		rentalRepo.On("Update", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		newEnd := start.Add(96 * time.Hour)
		rental, err := svc.Update(ctx, 5, UpdateRentalInput{PlannedEndDate: &newEnd})
		assert.NoError(t, err)
		assert.Equal(t, float64(4000), rental.TotalAmount)
		assert.Equal(t, start, rental.StartDate)
	})
}

func TestRentalService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownStatus", func(t *testing.T) {
		_, _, _, _, svc := newRentalFixture()

		_, _, err := svc.List(ctx, "overdue", 0, 0, 1, 50)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("NormalizesPaging", func(t *testing.T) {
		rentalRepo, _, _, _, svc := newRentalFixture()

		rentalRepo.On("List", ctx, "", int64(0), int64(0), 1, 50).Return([]domain.Rental{}, 0, nil)

		_, _, err := svc.List(ctx, "", 0, 0, 0, 0)
		assert.NoError(t, err)
		rentalRepo.AssertExpectations(t)
	})
}
