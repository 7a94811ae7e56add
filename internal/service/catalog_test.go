package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"unirent-backend/internal/availability"
	"unirent-backend/internal/domain"
)

func TestCatalogService_ListAvailableCars(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(72 * time.Hour)

	t.Run("FiltersHeldAndOutOfServiceVehicles", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		rentalRepo := new(MockRentalRepo)
		bookingRepo := new(MockBookingRepo)
		svc := NewCatalogService(vehicleRepo, rentalRepo, bookingRepo)

		vehicleRepo.On("ListCatalog", ctx).Return([]domain.Vehicle{
			{ID: 1, Status: domain.VehicleStatusAvailable},
			{ID: 2, Status: domain.VehicleStatusAvailable},
			{ID: 3, Status: domain.VehicleStatusMaintenance},
		}, nil)

		// Vehicle 1 is free.
		rentalRepo.On("ActiveIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		bookingRepo.On("HeldIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		// Vehicle 2 has an overlapping booking hold.
		rentalRepo.On("ActiveIntervals", ctx, int64(2)).Return([]availability.Interval{}, nil)
		bookingRepo.On("HeldIntervals", ctx, int64(2)).Return([]availability.Interval{
			{Start: from.Add(24 * time.Hour), End: to.Add(24 * time.Hour)},
		}, nil)
		// Vehicle 3 is in maintenance; even an empty calendar is unavailable.
		rentalRepo.On("ActiveIntervals", ctx, int64(3)).Return([]availability.Interval{}, nil)
		bookingRepo.On("HeldIntervals", ctx, int64(3)).Return([]availability.Interval{}, nil)

		cars, err := svc.ListAvailableCars(ctx, from, to)
		assert.NoError(t, err)
		if assert.Len(t, cars, 1) {
			assert.Equal(t, int64(1), cars[0].ID)
		}
	})

	t.Run("InvalidRange", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		rentalRepo := new(MockRentalRepo)
		bookingRepo := new(MockBookingRepo)
		svc := NewCatalogService(vehicleRepo, rentalRepo, bookingRepo)

		cars, err := svc.ListAvailableCars(ctx, to, from)
		assert.Nil(t, cars)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestCatalogService_GetCar(t *testing.T) {
	ctx := context.Background()

	t.Run("ArchivedIsInvisible", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := NewCatalogService(vehicleRepo, new(MockRentalRepo), new(MockBookingRepo))

		vehicleRepo.On("GetByID", ctx, int64(4)).Return(&domain.Vehicle{ID: 4, Status: domain.VehicleStatusArchived}, nil)

		car, err := svc.GetCar(ctx, 4)
		assert.Nil(t, car)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("RentedIsStillListed", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := NewCatalogService(vehicleRepo, new(MockRentalRepo), new(MockBookingRepo))

		vehicleRepo.On("GetByID", ctx, int64(5)).Return(&domain.Vehicle{ID: 5, Status: domain.VehicleStatusRented}, nil)

		car, err := svc.GetCar(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), car.ID)
	})
}
