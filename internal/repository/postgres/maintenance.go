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

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, rec *domain.MaintenanceRecord) error {
	return execTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM vehicles WHERE id = $1)`, rec.VehicleID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.NotFoundError("vehicle")
		}

		query := `INSERT INTO maintenance_records (vehicle_id, type, description, date, mileage, cost, out_of_service, created_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
		if err := tx.QueryRowContext(ctx, query,
			rec.VehicleID, rec.Type, rec.Description, rec.Date, rec.Mileage, rec.Cost, rec.OutOfService, time.Now()).
			Scan(&rec.ID, &rec.CreatedAt); err != nil {
			return err
		}

		// A service record with a higher reading advances the odometer; a
		// stale one is ignored.
		if _, err := tx.ExecContext(ctx,
			`UPDATE vehicles SET mileage=GREATEST(mileage, $1), updated_at=$2 WHERE id=$3`,
			rec.Mileage, time.Now(), rec.VehicleID); err != nil {
			return err
		}

		if rec.OutOfService {
			res, err := tx.ExecContext(ctx,
				`UPDATE vehicles SET status='maintenance', updated_at=$1 WHERE id=$2 AND status='available'`,
				time.Now(), rec.VehicleID)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				var current domain.VehicleStatus
				err := tx.QueryRowContext(ctx, `SELECT status FROM vehicles WHERE id = $1`, rec.VehicleID).Scan(&current)
				if errors.Is(err, sql.ErrNoRows) {
					return domain.NotFoundError("vehicle")
				}
				if err != nil {
					return err
				}
				return &domain.StateError{Entity: "vehicle", From: string(current), To: string(domain.VehicleStatusMaintenance)}
			}
		}
		return nil
	})
}

func (r *maintenanceRepository) List(ctx context.Context, vehicleID int64, page, pageSize int) ([]domain.MaintenanceRecord, int, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, vehicle_id, type, description, date, mileage, cost, out_of_service, created_at FROM maintenance_records`
	countQuery := `SELECT count(*) FROM maintenance_records`

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

	var records []domain.MaintenanceRecord
	for rows.Next() {
		var rec domain.MaintenanceRecord
		if err := rows.Scan(&rec.ID, &rec.VehicleID, &rec.Type, &rec.Description, &rec.Date, &rec.Mileage, &rec.Cost, &rec.OutOfService, &rec.CreatedAt); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, count, rows.Err()
}
