package service

import (
	"context"
	"time"

	"unirent-backend/internal/availability"
	"unirent-backend/internal/domain"
	"unirent-backend/internal/logger"
	"unirent-backend/internal/repository"
	"unirent-backend/internal/utils"
)

type rentalService struct {
	rentalRepo  repository.RentalRepository
	vehicleRepo repository.VehicleRepository
	clientRepo  repository.ClientRepository
	bookingRepo repository.BookingRepository
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	clientRepo repository.ClientRepository,
	bookingRepo repository.BookingRepository,
) RentalService {
	return &rentalService{
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		clientRepo:  clientRepo,
		bookingRepo: bookingRepo,
	}
}

// vehicleHolds collects every soft hold on a vehicle's calendar: active
// rentals plus pending and confirmed booking requests.
func vehicleHolds(ctx context.Context, rentalRepo repository.RentalRepository, bookingRepo repository.BookingRepository, vehicleID int64) ([]availability.Interval, error) {
	rentalIntervals, err := rentalRepo.ActiveIntervals(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	bookingIntervals, err := bookingRepo.HeldIntervals(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return append(rentalIntervals, bookingIntervals...), nil
}

func (s *rentalService) Create(ctx context.Context, input CreateRentalInput) (*domain.Rental, error) {
	if input.VehicleID == 0 {
		return nil, domain.NewValidationError("vehicle_id", "is required")
	}
	if input.ClientID == 0 {
		return nil, domain.NewValidationError("client_id", "is required")
	}
	if input.MileageStart < 0 {
		return nil, domain.NewValidationError("mileage_start", "must not be negative")
	}

	if _, err := s.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, &domain.StateError{Entity: "vehicle", From: string(vehicle.Status), To: string(domain.VehicleStatusRented)}
	}

	// Same predicate as the public path: status alone is not enough, the
	// requested dates must not collide with existing holds.
	holds, err := vehicleHolds(ctx, s.rentalRepo, s.bookingRepo, input.VehicleID)
	if err != nil {
		return nil, err
	}
	candidate := availability.Interval{Start: input.StartDate, End: input.PlannedEndDate}
	if !availability.IsAvailable(vehicle.Status, holds, candidate) {
		return nil, domain.NewConflictError("vehicle is not available for the requested dates")
	}

	total, err := utils.CalculateRentalTotal(input.RateType, input.RateAmount, input.StartDate, input.PlannedEndDate)
	if err != nil {
		return nil, err
	}

	fuel := input.FuelLevelStart
	if fuel == 0 {
		fuel = 100
	}
	rental := &domain.Rental{
		VehicleID:      input.VehicleID,
		ClientID:       input.ClientID,
		StartDate:      input.StartDate,
		PlannedEndDate: input.PlannedEndDate,
		MileageStart:   input.MileageStart,
		FuelLevelStart: fuel,
		RateType:       input.RateType,
		RateAmount:     input.RateAmount,
		TotalAmount:    total,
		DepositAmount:  input.DepositAmount,
		PaymentMethod:  input.PaymentMethod,
		Notes:          input.Notes,
	}
	if rental.PaymentMethod == "" {
		rental.PaymentMethod = "cash"
	}

	if err := s.rentalRepo.CreateActive(ctx, rental); err != nil {
		return nil, err
	}

	logger.Info("Rental created", "rental_id", rental.ID, "vehicle_id", rental.VehicleID, "client_id", rental.ClientID, "total", rental.TotalAmount)
	return rental, nil
}

func (s *rentalService) Get(ctx context.Context, id int64) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) Update(ctx context.Context, id int64, input UpdateRentalInput) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PlannedEndDate != nil {
		rental.PlannedEndDate = *input.PlannedEndDate
	}
	if input.RateType != nil {
		rental.RateType = *input.RateType
	}
	if input.RateAmount != nil {
		rental.RateAmount = *input.RateAmount
	}
	if input.DepositAmount != nil {
		rental.DepositAmount = *input.DepositAmount
	}
	if input.PaymentMethod != nil {
		rental.PaymentMethod = *input.PaymentMethod
	}
	if input.Notes != nil {
		rental.Notes = *input.Notes
	}

	// The start date never moves; the total follows the current end date and
	// rate.
	total, err := utils.CalculateRentalTotal(rental.RateType, rental.RateAmount, rental.StartDate, rental.PlannedEndDate)
	if err != nil {
		return nil, err
	}
	rental.TotalAmount = total

	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) Complete(ctx context.Context, id int64, input CompleteRentalInput) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rental.Status.CanTransition(domain.RentalStatusCompleted); err != nil {
		return nil, err
	}
	// The odometer cannot run backwards during a rental.
	if input.MileageEnd < rental.MileageStart {
		return nil, domain.NewValidationError("mileage_end", "must not be below the rental's starting mileage")
	}

	actualEnd := time.Now()
	if input.ActualEndDate != nil {
		actualEnd = *input.ActualEndDate
	}

	completed, err := s.rentalRepo.Complete(ctx, id, input.MileageEnd, input.FuelLevelEnd, actualEnd)
	if err != nil {
		return nil, err
	}

	logger.Info("Rental completed", "rental_id", completed.ID, "vehicle_id", completed.VehicleID, "mileage_end", input.MileageEnd)
	return completed, nil
}

func (s *rentalService) Cancel(ctx context.Context, id int64, reason string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rental.Status.CanTransition(domain.RentalStatusCancelled); err != nil {
		return nil, err
	}

	cancelled, err := s.rentalRepo.Cancel(ctx, id, reason)
	if err != nil {
		return nil, err
	}

	logger.Info("Rental cancelled", "rental_id", cancelled.ID, "vehicle_id", cancelled.VehicleID)
	return cancelled, nil
}

func (s *rentalService) List(ctx context.Context, status string, vehicleID, clientID int64, page, pageSize int) ([]domain.Rental, int, error) {
	if status != "" && !domain.RentalStatus(status).Valid() {
		return nil, 0, domain.NewValidationError("status", "unknown rental status")
	}
	return s.rentalRepo.List(ctx, status, vehicleID, clientID, normalizePage(page), normalizePageSize(pageSize))
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePageSize(pageSize int) int {
	if pageSize < 1 || pageSize > 200 {
		return 50
	}
	return pageSize
}
