// Package availability decides whether a vehicle's calendar is free for a
// candidate date range. The same predicate backs the public car search and
// the admin rental creation path.
package availability

import (
	"time"

	"unirent-backend/internal/domain"
)

// Interval is a half-open [Start, End) hold on a vehicle's calendar.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not count: a rental ending at 10:00 is compatible with one
// starting at 10:00.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// IsAvailable reports whether the candidate range is bookable given the
// vehicle's status and its existing holds (active rentals plus pending and
// confirmed booking requests). Vehicles in maintenance or archived are never
// bookable, regardless of the holds list.
func IsAvailable(status domain.VehicleStatus, holds []Interval, candidate Interval) bool {
	if status != domain.VehicleStatusAvailable && status != domain.VehicleStatusRented {
		return false
	}
	for _, hold := range holds {
		if Overlaps(hold, candidate) {
			return false
		}
	}
	return true
}
