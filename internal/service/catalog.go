package service

import (
	"context"
	"time"

	"unirent-backend/internal/availability"
	"unirent-backend/internal/domain"
	"unirent-backend/internal/repository"
)

// catalogService serves the read-only public API of the rental website.
type catalogService struct {
	vehicleRepo repository.VehicleRepository
	rentalRepo  repository.RentalRepository
	bookingRepo repository.BookingRepository
}

func NewCatalogService(
	vehicleRepo repository.VehicleRepository,
	rentalRepo repository.RentalRepository,
	bookingRepo repository.BookingRepository,
) CatalogService {
	return &catalogService{
		vehicleRepo: vehicleRepo,
		rentalRepo:  rentalRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *catalogService) ListAvailableCars(ctx context.Context, from, to time.Time) ([]domain.Vehicle, error) {
	if !to.After(from) {
		return nil, domain.NewValidationError("to", "must be after from")
	}

	vehicles, err := s.vehicleRepo.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}

	candidate := availability.Interval{Start: from, End: to}
	available := make([]domain.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		holds, err := vehicleHolds(ctx, s.rentalRepo, s.bookingRepo, v.ID)
		if err != nil {
			return nil, err
		}
		if availability.IsAvailable(v.Status, holds, candidate) {
			available = append(available, v)
		}
	}
	return available, nil
}

func (s *catalogService) ListCars(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicleRepo.ListCatalog(ctx)
}

func (s *catalogService) GetCar(ctx context.Context, id int64) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle.Status == domain.VehicleStatusArchived {
		return nil, domain.NotFoundError("vehicle")
	}
	return vehicle, nil
}
