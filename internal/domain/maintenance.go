package domain

import "time"

// MaintenanceRecord is a service event on a vehicle. Recording one may take
// the vehicle out of service; the vehicle's odometer never decreases because
// of a record with a stale mileage reading.
type MaintenanceRecord struct {
	ID           int64     `json:"id"`
	VehicleID    int64     `json:"vehicle_id"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Mileage      int64     `json:"mileage"`
	Cost         float64   `json:"cost"`
	OutOfService bool      `json:"out_of_service"`
	CreatedAt    time.Time `json:"created_at"`
}
