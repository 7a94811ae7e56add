package http

import (
	"net/http"

	"unirent-backend/internal/domain"
	"unirent-backend/internal/service"
)

type MaintenanceHandler struct {
	maintenanceService service.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec domain.MaintenanceRecord
	if err := decodeJSON(r, &rec); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.maintenanceService.Record(r.Context(), &rec); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	records, total, err := h.maintenanceService.List(r.Context(), queryInt64(r, "vehicle_id"), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Items: records, Total: total, Page: page, PageSize: pageSize})
}
