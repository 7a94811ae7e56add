package domain

import "time"

type Expense struct {
	ID          int64     `json:"id"`
	VehicleID   *int64    `json:"vehicle_id,omitempty"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}
