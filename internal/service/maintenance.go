package service

import (
	"context"
	"time"

	"unirent-backend/internal/domain"
	"unirent-backend/internal/logger"
	"unirent-backend/internal/repository"
)

type maintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
}

func NewMaintenanceService(maintenanceRepo repository.MaintenanceRepository) MaintenanceService {
	return &maintenanceService{maintenanceRepo: maintenanceRepo}
}

func (s *maintenanceService) Record(ctx context.Context, rec *domain.MaintenanceRecord) error {
	if rec.VehicleID == 0 {
		return domain.NewValidationError("vehicle_id", "is required")
	}
	if rec.Mileage < 0 {
		return domain.NewValidationError("mileage", "must not be negative")
	}
	if rec.Cost < 0 {
		return domain.NewValidationError("cost", "must not be negative")
	}
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}

	if err := s.maintenanceRepo.Create(ctx, rec); err != nil {
		return err
	}
	logger.Info("Maintenance recorded", "vehicle_id", rec.VehicleID, "type", rec.Type, "out_of_service", rec.OutOfService)
	return nil
}

func (s *maintenanceService) List(ctx context.Context, vehicleID int64, page, pageSize int) ([]domain.MaintenanceRecord, int, error) {
	return s.maintenanceRepo.List(ctx, vehicleID, normalizePage(page), normalizePageSize(pageSize))
}
