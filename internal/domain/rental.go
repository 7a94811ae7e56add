package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusActive, RentalStatusCompleted, RentalStatusCancelled:
		return true
	}
	return false
}

// Completed and cancelled are terminal.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusActive: {RentalStatusCompleted, RentalStatusCancelled},
}

func (s RentalStatus) CanTransition(to RentalStatus) error {
	for _, allowed := range rentalTransitions[s] {
		if allowed == to {
			return nil
		}
	}
	return &StateError{Entity: "rental", From: string(s), To: string(to)}
}

type RateType string

const (
	RateTypeHourly  RateType = "hourly"
	RateTypeDaily   RateType = "daily"
	RateTypeMonthly RateType = "monthly"
)

func (t RateType) Valid() bool {
	switch t {
	case RateTypeHourly, RateTypeDaily, RateTypeMonthly:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Rental struct {
	ID             int64         `json:"id"`
	VehicleID      int64         `json:"vehicle_id"`
	ClientID       int64         `json:"client_id"`
	StartDate      time.Time     `json:"start_date"`
	PlannedEndDate time.Time     `json:"planned_end_date"`
	ActualEndDate  *time.Time    `json:"actual_end_date,omitempty"`
	MileageStart   int64         `json:"mileage_start"`
	MileageEnd     *int64        `json:"mileage_end,omitempty"`
	FuelLevelStart int           `json:"fuel_level_start"`
	FuelLevelEnd   *int          `json:"fuel_level_end,omitempty"`
	RateType       RateType      `json:"rate_type"`
	RateAmount     float64       `json:"rate_amount"`
	TotalAmount    float64       `json:"total_amount"`
	DepositAmount  float64       `json:"deposit_amount"`
	PaymentMethod  string        `json:"payment_method"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	Status         RentalStatus  `json:"status"`
	Notes          string        `json:"notes"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
