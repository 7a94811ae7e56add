package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}

// Rejected and completed are terminal; confirmed can only be closed out.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusRejected},
	BookingStatusConfirmed: {BookingStatusCompleted},
}

func (s BookingStatus) CanTransition(to BookingStatus) error {
	for _, allowed := range bookingTransitions[s] {
		if allowed == to {
			return nil
		}
	}
	return &StateError{Entity: "booking request", From: string(s), To: string(to)}
}

// BookingRequest is a reservation submitted through the public site. It holds
// the vehicle's calendar while pending or confirmed but only binds a client
// once an admin confirms it with a rental.
type BookingRequest struct {
	ID            int64         `json:"id"`
	VehicleID     int64         `json:"vehicle_id"`
	RentalID      *int64        `json:"rental_id,omitempty"`
	ReferenceCode string        `json:"reference_code"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	CustomerPhone string        `json:"customer_phone"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	Message       string        `json:"message"`
	AdminNotes    string        `json:"admin_notes"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
