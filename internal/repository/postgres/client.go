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

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, first_name, last_name, email, phone, license_number, address, notes, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (*domain.Client, error) {
	c := &domain.Client{}
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.LicenseNumber, &c.Address, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (first_name, last_name, email, phone, license_number, address, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone, c.LicenseNumber, c.Address, c.Notes, now, now).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("client")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET first_name=$1, last_name=$2, email=$3, phone=$4, license_number=$5, address=$6, notes=$7, updated_at=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone, c.LicenseNumber, c.Address, c.Notes, time.Now(), c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("client")
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		// Clients referenced by rentals cannot be removed.
		return domain.NewConflictError("client has rentals and cannot be deleted")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("client")
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, query string, page, pageSize int) ([]domain.Client, int, error) {
	offset := (page - 1) * pageSize
	sqlQuery := `SELECT ` + clientColumns + ` FROM clients`
	countQuery := `SELECT count(*) FROM clients`

	var args []interface{}
	if query != "" {
		filter := ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1`
		sqlQuery += filter
		countQuery += filter
		args = append(args, "%"+query+"%")
	}

	var count int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlQuery += fmt.Sprintf(` ORDER BY last_name, first_name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, *c)
	}
	return clients, count, rows.Err()
}
