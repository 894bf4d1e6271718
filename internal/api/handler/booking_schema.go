package handler

import (
	"time"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// createBookingRequest deliberately has no user field: the owner is always
// the authenticated caller, and any client-supplied value is ignored.
type createBookingRequest struct {
	Vehicle       int64     `json:"vehicle"        validate:"required"`
	StartDatetime time.Time `json:"start_datetime" validate:"required"`
	EndDatetime   time.Time `json:"end_datetime"   validate:"required"`
}

type bookingResponse struct {
	ID            int64     `json:"id"`
	Vehicle       int64     `json:"vehicle"`
	User          int64     `json:"user"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		Vehicle:       b.VehicleID,
		User:          b.UserID,
		StartDatetime: b.StartDatetime,
		EndDatetime:   b.EndDatetime,
	}
}

func toBookingListResponse(bookings []*domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}
