package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"unirent-backend/internal/availability"
	"unirent-backend/internal/domain"
	"unirent-backend/internal/logger"
	"unirent-backend/internal/repository"
	"unirent-backend/internal/utils"
)

// refCodeAttempts bounds the uniqueness retry loop for reference codes.
const refCodeAttempts = 5

type bookingService struct {
	bookingRepo repository.BookingRepository
	rentalRepo  repository.RentalRepository
	vehicleRepo repository.VehicleRepository
	emailSvc    EmailService
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		emailSvc:    emailSvc,
		now:         time.Now,
	}
}

func (s *bookingService) CreateFromWebsite(ctx context.Context, input CreateBookingInput) (*domain.BookingRequest, error) {
	if input.VehicleID == 0 {
		return nil, domain.NewValidationError("vehicle_id", "is required")
	}
	if input.CustomerName == "" {
		return nil, domain.NewValidationError("customer_name", "is required")
	}
	if input.CustomerEmail == "" && input.CustomerPhone == "" {
		return nil, domain.NewValidationError("customer_email", "an email or phone number is required")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, domain.NewValidationError("end_date", "must be after start date")
	}
	if input.StartDate.Before(s.now()) {
		return nil, domain.NewValidationError("start_date", "must not be in the past")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	// Archived vehicles are invisible to the public site.
	if vehicle.Status == domain.VehicleStatusArchived {
		return nil, domain.NotFoundError("vehicle")
	}

	holds, err := vehicleHolds(ctx, s.rentalRepo, s.bookingRepo, input.VehicleID)
	if err != nil {
		return nil, err
	}
	candidate := availability.Interval{Start: input.StartDate, End: input.EndDate}
	if !availability.IsAvailable(vehicle.Status, holds, candidate) {
		return nil, domain.NewConflictError("vehicle is not available for the requested dates")
	}

	req := &domain.BookingRequest{
		VehicleID:     input.VehicleID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Message:       input.Message,
	}

	// Reference codes are random; regenerate and retry on the rare collision.
	for attempt := 0; ; attempt++ {
		code, err := utils.NewReferenceCode(s.now())
		if err != nil {
			return nil, err
		}
		req.ReferenceCode = code

		err = s.bookingRepo.Create(ctx, req)
		if err == nil {
			break
		}
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) && attempt < refCodeAttempts-1 {
			continue
		}
		return nil, err
	}

	if req.CustomerEmail != "" {
		vehicleName := vehicle.Brand + " " + vehicle.Model
		if err := s.emailSvc.SendBookingReceived(ctx, req.CustomerEmail, req.CustomerName, req.ReferenceCode, vehicleName, req.StartDate, req.EndDate); err != nil {
			logger.Warn("Failed to send booking acknowledgement", "booking_id", req.ID, "error", err)
		}
	}

	logger.Info("Booking request created", "booking_id", req.ID, "reference", req.ReferenceCode, "vehicle_id", req.VehicleID)
	return req, nil
}

func (s *bookingService) Confirm(ctx context.Context, id int64, clientID int64, createRental bool, adminNotes string) (*domain.BookingRequest, *domain.Rental, error) {
	if createRental && clientID == 0 {
		return nil, nil, domain.NewValidationError("client_id", "is required when creating a rental")
	}

	req, rental, err := s.bookingRepo.Confirm(ctx, repository.ConfirmBookingParams{
		BookingID:    id,
		AdminNotes:   adminNotes,
		CreateRental: createRental,
		ClientID:     clientID,
	})
	if err != nil {
		return nil, nil, err
	}

	if req.CustomerEmail != "" {
		vehicleName := ""
		if vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID); err == nil {
			vehicleName = vehicle.Brand + " " + vehicle.Model
		}
		if err := s.emailSvc.SendBookingConfirmed(ctx, req.CustomerEmail, req.CustomerName, req.ReferenceCode, vehicleName, req.StartDate, req.EndDate); err != nil {
			logger.Warn("Failed to send booking confirmation", "booking_id", req.ID, "error", err)
		}
	}

	if rental != nil {
		logger.Info("Booking confirmed with rental", "booking_id", req.ID, "rental_id", rental.ID)
	} else {
		logger.Info("Booking confirmed", "booking_id", req.ID)
	}
	return req, rental, nil
}

func (s *bookingService) Reject(ctx context.Context, id int64, adminNotes string) (*domain.BookingRequest, error) {
	req, err := s.bookingRepo.Reject(ctx, id, adminNotes)
	if err != nil {
		return nil, err
	}

	if req.CustomerEmail != "" {
		if err := s.emailSvc.SendBookingRejected(ctx, req.CustomerEmail, req.CustomerName, req.ReferenceCode); err != nil {
			logger.Warn("Failed to send booking rejection", "booking_id", req.ID, "error", err)
		}
	}

	logger.Info("Booking rejected", "booking_id", req.ID)
	return req, nil
}

func (s *bookingService) Complete(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	return s.bookingRepo.Complete(ctx, id)
}

func (s *bookingService) Get(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// GetByReference looks a request up by the code customers receive in the
// confirmation email. Codes are stored uppercase.
func (s *bookingService) GetByReference(ctx context.Context, code string) (*domain.BookingRequest, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.NewValidationError("reference", "is required")
	}
	return s.bookingRepo.GetByReference(ctx, code)
}

func (s *bookingService) List(ctx context.Context, status string, page, pageSize int) ([]domain.BookingRequest, int, error) {
	if status != "" && !domain.BookingStatus(status).Valid() {
		return nil, 0, domain.NewValidationError("status", "unknown booking status")
	}
	return s.bookingRepo.List(ctx, status, normalizePage(page), normalizePageSize(pageSize))
}
