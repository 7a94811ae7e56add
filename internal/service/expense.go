package service

import (
	"context"
	"time"

	"unirent-backend/internal/domain"
	"unirent-backend/internal/repository"
)

type expenseService struct {
	expenseRepo repository.ExpenseRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo}
}

func (s *expenseService) Add(ctx context.Context, e *domain.Expense) error {
	if e.Category == "" {
		return domain.NewValidationError("category", "is required")
	}
	if e.Amount < 0 {
		return domain.NewValidationError("amount", "must not be negative")
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	return s.expenseRepo.Create(ctx, e)
}

func (s *expenseService) Get(ctx context.Context, id int64) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(ctx, id)
}

func (s *expenseService) Update(ctx context.Context, e *domain.Expense) error {
	if e.Category == "" {
		return domain.NewValidationError("category", "is required")
	}
	if e.Amount < 0 {
		return domain.NewValidationError("amount", "must not be negative")
	}
	return s.expenseRepo.Update(ctx, e)
}

func (s *expenseService) Delete(ctx context.Context, id int64) error {
	return s.expenseRepo.Delete(ctx, id)
}

func (s *expenseService) List(ctx context.Context, vehicleID int64, page, pageSize int) ([]domain.Expense, int, error) {
	return s.expenseRepo.List(ctx, vehicleID, normalizePage(page), normalizePageSize(pageSize))
}
