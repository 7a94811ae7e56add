package http

import (
	"net/http"

	"unirent-backend/internal/domain"
	"unirent-backend/internal/service"
)

type ExpenseHandler struct {
	expenseService service.ExpenseService
}

func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e domain.Expense
	if err := decodeJSON(r, &e); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.expenseService.Add(r.Context(), &e); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.expenseService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var e domain.Expense
	if err := decodeJSON(r, &e); err != nil {
		writeError(w, r, err)
		return
	}
	e.ID = id

	if err := h.expenseService.Update(r.Context(), &e); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.expenseService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	expenses, total, err := h.expenseService.List(r.Context(), queryInt64(r, "vehicle_id"), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Items: expenses, Total: total, Page: page, PageSize: pageSize})
}
