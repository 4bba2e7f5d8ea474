package model

import (
	"time"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked-in"
	StatusCheckedOut = "checked-out"
	StatusCancelled  = "cancelled"
)

const (
	RoomStandard     = "standard"
	RoomDeluxe       = "deluxe"
	RoomSuite        = "suite"
	RoomPresidential = "presidential"
)

type Booking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	GuestName       string    `json:"guestName" bson:"guest_name" validate:"required,min=1,max=100"`
	Email           string    `json:"email" bson:"email" validate:"required,email"`
	PhoneNumber     string    `json:"phoneNumber" bson:"phone_number" validate:"required,min=3,max=30"`
	CheckIn         time.Time `json:"checkIn" bson:"check_in" validate:"required"`
	CheckOut        time.Time `json:"checkOut" bson:"check_out" validate:"required"`
	RoomType        string    `json:"roomType" bson:"room_type" validate:"required,oneof=standard deluxe suite presidential"`
	NumberOfGuests  int       `json:"numberOfGuests" bson:"number_of_guests" validate:"required,min=1"`
	TotalAmount     float64   `json:"totalAmount" bson:"total_amount" validate:"min=0"`
	Status          string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed checked-in checked-out cancelled"`
	SpecialRequests string    `json:"specialRequests,omitempty" bson:"special_requests,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at" validate:"omitempty"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updated_at" validate:"omitempty"`
}

// Availability is the result of an overlap query for one room type and date
// range. The check is per room type, not per physical room: a single
// non-cancelled overlapping booking makes the range unavailable.
type Availability struct {
	Available        bool  `json:"available"`
	ExistingBookings int64 `json:"existingBookings"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}
	return false
}

func ValidRoomType(roomType string) bool {
	switch roomType {
	case RoomStandard, RoomDeluxe, RoomSuite, RoomPresidential:
		return true
	}
	return false
}

// TerminalStatus reports whether no further transition can leave the status.
func TerminalStatus(status string) bool {
	return status == StatusCancelled || status == StatusCheckedOut
}

// CanTransition reports whether a booking may move from one status to
// another. The lifecycle is forward-only: pending, confirmed, checked-in,
// checked-out, with cancellation allowed from any non-terminal status.
// A same-status transition is always allowed so that repeated updates stay
// idempotent.
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	if to == StatusCancelled {
		return !TerminalStatus(from)
	}

	switch from {
	case StatusPending:
		return to == StatusConfirmed
	case StatusConfirmed:
		return to == StatusCheckedIn
	case StatusCheckedIn:
		return to == StatusCheckedOut
	}
	return false
}

// Overlaps applies the inclusive interval test used by the availability
// checker: two stays conflict when neither ends strictly before the other
// begins.
func Overlaps(checkIn1, checkOut1, checkIn2, checkOut2 time.Time) bool {
	return !checkIn1.After(checkOut2) && !checkOut1.Before(checkIn2)
}
