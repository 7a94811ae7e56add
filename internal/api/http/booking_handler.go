package http

import (
	"net/http"

	"unirent-backend/internal/domain"
	"unirent-backend/internal/service"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.bookingService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	requests, total, err := h.bookingService.List(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Items: requests, Total: total, Page: page, PageSize: pageSize})
}

type confirmBookingRequest struct {
	ClientID     int64  `json:"client_id"`
	CreateRental bool   `json:"create_rental"`
	AdminNotes   string `json:"admin_notes"`
}

type confirmBookingResponse struct {
	BookingRequest *domain.BookingRequest `json:"booking_request"`
	Rental         *domain.Rental         `json:"rental,omitempty"`
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req confirmBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	booking, rental, err := h.bookingService.Confirm(r.Context(), id, req.ClientID, req.CreateRental, req.AdminNotes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, confirmBookingResponse{BookingRequest: booking, Rental: rental})
}

type rejectBookingRequest struct {
	AdminNotes string `json:"admin_notes"`
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req rejectBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.bookingService.Reject(r.Context(), id, req.AdminNotes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.bookingService.Complete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}
