package http

import (
	"net/http"
	"time"

	"unirent-backend/internal/domain"
	"unirent-backend/internal/service"
)

type RentalHandler struct {
	rentalService service.RentalService
}

func NewRentalHandler(rentalService service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

type createRentalRequest struct {
	VehicleID      int64           `json:"vehicle_id"`
	ClientID       int64           `json:"client_id"`
	StartDate      time.Time       `json:"start_date"`
	PlannedEndDate time.Time       `json:"planned_end_date"`
	MileageStart   int64           `json:"mileage_start"`
	FuelLevelStart int             `json:"fuel_level_start"`
	RateType       domain.RateType `json:"rate_type"`
	RateAmount     float64         `json:"rate_amount"`
	DepositAmount  float64         `json:"deposit_amount"`
	PaymentMethod  string          `json:"payment_method"`
	Notes          string          `json:"notes"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rental, err := h.rentalService.Create(r.Context(), service.CreateRentalInput{
		VehicleID:      req.VehicleID,
		ClientID:       req.ClientID,
		StartDate:      req.StartDate,
		PlannedEndDate: req.PlannedEndDate,
		MileageStart:   req.MileageStart,
		FuelLevelStart: req.FuelLevelStart,
		RateType:       req.RateType,
		RateAmount:     req.RateAmount,
		DepositAmount:  req.DepositAmount,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rental, err := h.rentalService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rental)
}

type updateRentalRequest struct {
	PlannedEndDate *time.Time       `json:"planned_end_date"`
	RateType       *domain.RateType `json:"rate_type"`
	RateAmount     *float64         `json:"rate_amount"`
	DepositAmount  *float64         `json:"deposit_amount"`
	PaymentMethod  *string          `json:"payment_method"`
	Notes          *string          `json:"notes"`
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rental, err := h.rentalService.Update(r.Context(), id, service.UpdateRentalInput{
		PlannedEndDate: req.PlannedEndDate,
		RateType:       req.RateType,
		RateAmount:     req.RateAmount,
		DepositAmount:  req.DepositAmount,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rental)
}

type completeRentalRequest struct {
	MileageEnd    int64      `json:"mileage_end"`
	FuelLevelEnd  *int       `json:"fuel_level_end"`
	ActualEndDate *time.Time `json:"actual_end_date"`
}

func (h *RentalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req completeRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rental, err := h.rentalService.Complete(r.Context(), id, service.CompleteRentalInput{
		MileageEnd:    req.MileageEnd,
		FuelLevelEnd:  req.FuelLevelEnd,
		ActualEndDate: req.ActualEndDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rental)
}

type cancelRentalRequest struct {
	Reason string `json:"reason"`
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req cancelRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rental, err := h.rentalService.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	rentals, total, err := h.rentalService.List(r.Context(),
		r.URL.Query().Get("status"),
		queryInt64(r, "vehicle_id"),
		queryInt64(r, "client_id"),
		page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Items: rentals, Total: total, Page: page, PageSize: pageSize})
}
