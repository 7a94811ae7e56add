package service

import (
	"context"

	"unirent-backend/internal/domain"
	"unirent-backend/internal/logger"
	"unirent-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) Add(ctx context.Context, v *domain.Vehicle) error {
	if v.Brand == "" {
		return domain.NewValidationError("brand", "is required")
	}
	if v.Model == "" {
		return domain.NewValidationError("model", "is required")
	}
	if v.Plate == "" {
		return domain.NewValidationError("plate", "is required")
	}
	if v.Mileage < 0 {
		return domain.NewValidationError("mileage", "must not be negative")
	}
	if v.DailyRate < 0 {
		return domain.NewValidationError("daily_rate", "must not be negative")
	}
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	if !v.Status.Valid() {
		return domain.NewValidationError("status", "unknown vehicle status")
	}
	return s.vehicleRepo.Create(ctx, v)
}

func (s *vehicleService) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) Update(ctx context.Context, v *domain.Vehicle) error {
	if v.Brand == "" {
		return domain.NewValidationError("brand", "is required")
	}
	if v.Plate == "" {
		return domain.NewValidationError("plate", "is required")
	}
	return s.vehicleRepo.Update(ctx, v)
}

// Archive soft-deletes a vehicle. Rented vehicles cannot be archived; the
// conditional status update catches a rental slipping in concurrently.
func (s *vehicleService) Archive(ctx context.Context, id int64) error {
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.vehicleRepo.UpdateStatus(ctx, id, v.Status, domain.VehicleStatusArchived); err != nil {
		return err
	}
	logger.Info("Vehicle archived", "vehicle_id", id)
	return nil
}

func (s *vehicleService) Restore(ctx context.Context, id int64) error {
	return s.vehicleRepo.UpdateStatus(ctx, id, domain.VehicleStatusArchived, domain.VehicleStatusAvailable)
}

// SendToMaintenance takes an available vehicle out of service.
func (s *vehicleService) SendToMaintenance(ctx context.Context, id int64) error {
	return s.vehicleRepo.UpdateStatus(ctx, id, domain.VehicleStatusAvailable, domain.VehicleStatusMaintenance)
}

// ReturnToService brings a vehicle back from maintenance.
func (s *vehicleService) ReturnToService(ctx context.Context, id int64) error {
	return s.vehicleRepo.UpdateStatus(ctx, id, domain.VehicleStatusMaintenance, domain.VehicleStatusAvailable)
}

func (s *vehicleService) List(ctx context.Context, status string, page, pageSize int) ([]domain.Vehicle, int, error) {
	if status != "" && !domain.VehicleStatus(status).Valid() {
		return nil, 0, domain.NewValidationError("status", "unknown vehicle status")
	}
	return s.vehicleRepo.List(ctx, status, normalizePage(page), normalizePageSize(pageSize))
}
