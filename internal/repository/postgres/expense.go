package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"unirent-backend/internal/domain"
	"unirent-backend/internal/repository"
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `id, vehicle_id, category, description, amount, date, created_at`

func (r *expenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (vehicle_id, category, description, amount, date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, e.VehicleID, e.Category, e.Description, e.Amount, e.Date, time.Now()).
		Scan(&e.ID, &e.CreatedAt)
}

func (r *expenseRepository) GetByID(ctx context.Context, id int64) (*domain.Expense, error) {
	e := &domain.Expense{}
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&e.ID, &e.VehicleID, &e.Category, &e.Description, &e.Amount, &e.Date, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("expense")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *expenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	query := `UPDATE expenses SET vehicle_id=$1, category=$2, description=$3, amount=$4, date=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, e.VehicleID, e.Category, e.Description, e.Amount, e.Date, e.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("expense")
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("expense")
	}
	return nil
}

func (r *expenseRepository) List(ctx context.Context, vehicleID int64, page, pageSize int) ([]domain.Expense, int, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	countQuery := `SELECT count(*) FROM expenses`

	var args []interface{}
	if vehicleID != 0 {
		query += ` WHERE vehicle_id = $1`
		countQuery += ` WHERE vehicle_id = $1`
		args = append(args, vehicleID)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.VehicleID, &e.Category, &e.Description, &e.Amount, &e.Date, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, e)
	}
	return expenses, count, rows.Err()
}
