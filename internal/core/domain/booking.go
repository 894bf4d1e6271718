package domain

import (
	"errors"
	"time"
)

var ErrBookingNotFound = errors.New("booking not found")

// ErrEndBeforeStart rejects reservations whose window is empty or inverted.
// Equal timestamps are invalid: the inequality is strict.
var ErrEndBeforeStart = errors.New("end_datetime must be after start_datetime")

// ErrUnknownVehicle is a field-validation failure (the client referenced a
// vehicle id that does not exist), not a lookup failure on the booking itself.
var ErrUnknownVehicle = errors.New("vehicle does not exist")

// Booking reserves one vehicle for one user over a time window.
//
// UserID is assigned server-side from the authenticated caller when the
// booking is created and never changes afterwards. Overlapping bookings on
// the same vehicle are not rejected; double-booking is a known scope
// limitation of the current behavior.
type Booking struct {
	ID            int64     `json:"id" bson:"_id"`
	VehicleID     int64     `json:"vehicle" bson:"vehicle_id"`
	UserID        int64     `json:"user" bson:"user_id"`
	StartDatetime time.Time `json:"start_datetime" bson:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime" bson:"end_datetime"`
}

// ValidatePeriod enforces the strict end-after-start invariant shared by
// booking creation and update.
func ValidatePeriod(start, end time.Time) error {
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	return nil
}
