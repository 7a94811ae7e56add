package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"unirent-backend/internal/service"
)

// PublicHandler serves the unauthenticated website endpoints: the vehicle
// catalog and booking request submission.
type PublicHandler struct {
	bookingService service.BookingService
	catalogService service.CatalogService
}

func NewPublicHandler(bookingService service.BookingService, catalogService service.CatalogService) *PublicHandler {
	return &PublicHandler{bookingService: bookingService, catalogService: catalogService}
}

type createBookingRequest struct {
	VehicleID     int64     `json:"vehicle_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Message       string    `json:"message"`
}

func (h *PublicHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.bookingService.CreateFromWebsite(r.Context(), service.CreateBookingInput{
		VehicleID:     req.VehicleID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Message:       req.Message,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// GetBooking lets a customer check their request using the reference code
// from the confirmation email.
func (h *PublicHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingService.GetByReference(r.Context(), mux.Vars(r)["reference"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *PublicHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.catalogService.ListCars(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cars)
}

func (h *PublicHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	car, err := h.catalogService.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, car)
}

// ListAvailableCars returns vehicles free for the whole requested range.
func (h *PublicHandler) ListAvailableCars(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "from")
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := queryTime(r, "to")
	if err != nil {
		writeError(w, r, err)
		return
	}

	cars, err := h.catalogService.ListAvailableCars(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cars)
}
