package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"unirent-backend/internal/availability"
	"unirent-backend/internal/domain"
	"unirent-backend/internal/repository"
)

func newBookingFixture(now time.Time) (*MockBookingRepo, *MockRentalRepo, *MockVehicleRepo, *MockEmailService, BookingService) {
	bookingRepo := new(MockBookingRepo)
	rentalRepo := new(MockRentalRepo)
	vehicleRepo := new(MockVehicleRepo)
	emailSvc := new(MockEmailService)
	svc := NewBookingService(bookingRepo, rentalRepo, vehicleRepo, emailSvc).(*bookingService)
	svc.now = func() time.Time { return now }
	return bookingRepo, rentalRepo, vehicleRepo, emailSvc, svc
}

func TestBookingService_CreateFromWebsite(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)
	end := now.Add(72 * time.Hour)

	input := CreateBookingInput{
		VehicleID:     1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		StartDate:     start,
		EndDate:       end,
	}

	t.Run("Success", func(t *testing.T) {
		bookingRepo, rentalRepo, vehicleRepo, emailSvc, svc := newBookingFixture(now)

		vehicleRepo.On("GetByID", ctx, int64(1)).Return(&domain.Vehicle{ID: 1, Brand: "Fiat", Model: "Panda", Status: domain.VehicleStatusAvailable}, nil)
		rentalRepo.On("ActiveIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		bookingRepo.On("HeldIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.BookingRequest")).Return(nil)
		emailSvc.On("SendBookingReceived", ctx, "ada@example.com", "Ada Lovelace", mock.AnythingOfType("string"), "Fiat Panda", start, end).Return(nil)

		req, err := svc.CreateFromWebsite(ctx, input)
		assert.NoError(t, err)
		assert.NotNil(t, req)
		assert.Regexp(t, `^UNI-2024-[A-Z0-9]{6}$`, req.ReferenceCode)
		emailSvc.AssertExpectations(t)
	})

	t.Run("StartInPast", func(t *testing.T) {
		_, _, _, _, svc := newBookingFixture(now)

		bad := input
		bad.StartDate = now.Add(-time.Hour)
		req, err := svc.CreateFromWebsite(ctx, bad)
		assert.Nil(t, req)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("EndNotAfterStart", func(t *testing.T) {
		_, _, _, _, svc := newBookingFixture(now)

		bad := input
		bad.EndDate = bad.StartDate
		req, err := svc.CreateFromWebsite(ctx, bad)
		assert.Nil(t, req)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("NoContactDetails", func(t *testing.T) {
		_, _, _, _, svc := newBookingFixture(now)

		bad := input
		bad.CustomerEmail = ""
		bad.CustomerPhone = ""
		req, err := svc.CreateFromWebsite(ctx, bad)
		assert.Nil(t, req)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("ArchivedVehicleHidden", func(t *testing.T) {
		_, _, vehicleRepo, _, svc := newBookingFixture(now)

		vehicleRepo.On("GetByID", ctx, int64(1)).Return(&domain.Vehicle{ID: 1, Status: domain.VehicleStatusArchived}, nil)

		req, err := svc.CreateFromWebsite(ctx, input)
		assert.Nil(t, req)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DatesHeld", func(t *testing.T) {
		bookingRepo, rentalRepo, vehicleRepo, _, svc := newBookingFixture(now)

		vehicleRepo.On("GetByID", ctx, int64(1)).Return(&domain.Vehicle{ID: 1, Status: domain.VehicleStatusAvailable}, nil)
		rentalRepo.On("ActiveIntervals", ctx, int64(1)).Return([]availability.Interval{{Start: start, End: end}}, nil)
		bookingRepo.On("HeldIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)

		req, err := svc.CreateFromWebsite(ctx, input)
		assert.Nil(t, req)
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
		bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RetriesOnReferenceCollision", func(t *testing.T) {
		bookingRepo, rentalRepo, vehicleRepo, emailSvc, svc := newBookingFixture(now)

		vehicleRepo.On("GetByID", ctx, int64(1)).Return(&domain.Vehicle{ID: 1, Brand: "Fiat", Model: "Panda", Status: domain.VehicleStatusAvailable}, nil)
		rentalRepo.On("ActiveIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		bookingRepo.On("HeldIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.BookingRequest")).
			Return(domain.NewConflictError("reference code already exists")).Once()
		bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.BookingRequest")).Return(nil).Once()
		emailSvc.On("SendBookingReceived", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		req, err := svc.CreateFromWebsite(ctx, input)
		assert.NoError(t, err)
		assert.NotNil(t, req)
		bookingRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("EmailFailureIsNotFatal", func(t *testing.T) {
		bookingRepo, rentalRepo, vehicleRepo, emailSvc, svc := newBookingFixture(now)

		vehicleRepo.On("GetByID", ctx, int64(1)).Return(&domain.Vehicle{ID: 1, Brand: "Fiat", Model: "Panda", Status: domain.VehicleStatusAvailable}, nil)
		rentalRepo.On("ActiveIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		bookingRepo.On("HeldIntervals", ctx, int64(1)).Return([]availability.Interval{}, nil)
		bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.BookingRequest")).Return(nil)
		emailSvc.On("SendBookingReceived", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		req, err := svc.CreateFromWebsite(ctx, input)
		assert.NoError(t, err)
		assert.NotNil(t, req)
	})
}

func TestBookingService_Confirm(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("ClientRequiredForRental", func(t *testing.T) {
		bookingRepo, _, _, _, svc := newBookingFixture(now)

		req, rental, err := svc.Confirm(ctx, 1, 0, true, "")
		assert.Nil(t, req)
		assert.Nil(t, rental)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		bookingRepo.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
	})

	t.Run("ConfirmWithRental", func(t *testing.T) {
		bookingRepo, _, vehicleRepo, emailSvc, svc := newBookingFixture(now)

		confirmed := &domain.BookingRequest{
			ID: 1, VehicleID: 2, ReferenceCode: "UNI-2024-ABC123",
			CustomerName: "Ada", CustomerEmail: "ada@example.com",
			StartDate: now, EndDate: now.Add(48 * time.Hour),
			Status: domain.BookingStatusConfirmed,
		}
		rental := &domain.Rental{ID: 10, VehicleID: 2, ClientID: 3, Status: domain.RentalStatusActive}

		bookingRepo.On("Confirm", ctx, repository.ConfirmBookingParams{BookingID: 1, CreateRental: true, ClientID: 3}).
			Return(confirmed, rental, nil)
		vehicleRepo.On("GetByID", ctx, int64(2)).Return(&domain.Vehicle{ID: 2, Brand: "Fiat", Model: "Panda"}, nil)
		emailSvc.On("SendBookingConfirmed", ctx, "ada@example.com", "Ada", "UNI-2024-ABC123", "Fiat Panda", confirmed.StartDate, confirmed.EndDate).Return(nil)

		gotReq, gotRental, err := svc.Confirm(ctx, 1, 3, true, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, gotReq.Status)
		assert.Equal(t, int64(10), gotRental.ID)
	})

	t.Run("DoubleConfirm", func(t *testing.T) {
		bookingRepo, _, _, _, svc := newBookingFixture(now)

		bookingRepo.On("Confirm", ctx, mock.AnythingOfType("repository.ConfirmBookingParams")).
			Return(nil, nil, domain.NotFoundError("pending booking request"))

		req, rental, err := svc.Confirm(ctx, 1, 3, false, "")
		assert.Nil(t, req)
		assert.Nil(t, rental)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingService_Reject(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		bookingRepo, _, _, emailSvc, svc := newBookingFixture(now)

		rejected := &domain.BookingRequest{
			ID: 1, ReferenceCode: "UNI-2024-XYZ789",
			CustomerName: "Ada", CustomerEmail: "ada@example.com",
			Status: domain.BookingStatusRejected,
		}
		bookingRepo.On("Reject", ctx, int64(1), "no cars left").Return(rejected, nil)
		emailSvc.On("SendBookingRejected", ctx, "ada@example.com", "Ada", "UNI-2024-XYZ789").Return(nil)

		req, err := svc.Reject(ctx, 1, "no cars left")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusRejected, req.Status)
	})

	t.Run("RejectAfterConfirm", func(t *testing.T) {
		bookingRepo, _, _, _, svc := newBookingFixture(now)

		bookingRepo.On("Reject", ctx, int64(1), "").
			Return(nil, domain.NotFoundError("pending booking request"))

		req, err := svc.Reject(ctx, 1, "")
		assert.Nil(t, req)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingService_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("UnknownStatus", func(t *testing.T) {
		_, _, _, _, svc := newBookingFixture(now)

		_, _, err := svc.List(ctx, "waiting", 1, 50)
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestBookingService_GetByReference(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("NormalizesCode", func(t *testing.T) {
		bookingRepo, _, _, _, svc := newBookingFixture(now)

		bookingRepo.On("GetByReference", ctx, "UNI-2024-ABC123").
			Return(&domain.BookingRequest{ID: 1, ReferenceCode: "UNI-2024-ABC123"}, nil)

		req, err := svc.GetByReference(ctx, "  uni-2024-abc123 ")
		assert.NoError(t, err)
		assert.Equal(t, "UNI-2024-ABC123", req.ReferenceCode)
	})

	t.Run("EmptyCode", func(t *testing.T) {
		bookingRepo, _, _, _, svc := newBookingFixture(now)

		_, err := svc.GetByReference(ctx, "   ")
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		bookingRepo.AssertNotCalled(t, "GetByReference", mock.Anything, mock.Anything)
	})
}
