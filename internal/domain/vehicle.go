package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusRented      VehicleStatus = "rented"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusArchived    VehicleStatus = "archived"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusRented, VehicleStatusMaintenance, VehicleStatusArchived:
		return true
	}
	return false
}

// vehicleTransitions lists the defined (from, to) status pairs. A rented
// vehicle can only be freed by completing or cancelling its rental; archiving
// is a soft delete and is reversible.
var vehicleTransitions = map[VehicleStatus][]VehicleStatus{
	VehicleStatusAvailable:   {VehicleStatusRented, VehicleStatusMaintenance, VehicleStatusArchived},
	VehicleStatusRented:      {VehicleStatusAvailable},
	VehicleStatusMaintenance: {VehicleStatusAvailable, VehicleStatusArchived},
	VehicleStatusArchived:    {VehicleStatusAvailable},
}

// CanTransition reports whether the vehicle state machine defines the
// transition, returning a StateError for undefined pairs.
func (s VehicleStatus) CanTransition(to VehicleStatus) error {
	for _, allowed := range vehicleTransitions[s] {
		if allowed == to {
			return nil
		}
	}
	return &StateError{Entity: "vehicle", From: string(s), To: string(to)}
}

type Vehicle struct {
	ID        int64         `json:"id"`
	Brand     string        `json:"brand"`
	Model     string        `json:"model"`
	Plate     string        `json:"plate"`
	VIN       string        `json:"vin"`
	Year      int           `json:"year"`
	Color     string        `json:"color"`
	FuelType  string        `json:"fuel_type"`
	Mileage   int64         `json:"mileage"`
	DailyRate float64       `json:"daily_rate"`
	Status    VehicleStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
