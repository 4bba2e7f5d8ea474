package validator

import (
	"errors"
	"io"
	"testing"
	"time"

	"innkeeper/pkg/logger"
	"innkeeper/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
}

func validBooking() *model.Booking {
	return &model.Booking{
		GuestName:      "Jane Guest",
		Email:          "jane@example.com",
		PhoneNumber:    "+15551234567",
		CheckIn:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:       time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		RoomType:       model.RoomDeluxe,
		NumberOfGuests: 2,
		TotalAmount:    499.50,
		Status:         model.StatusPending,
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	v := NewBookingValidator(testLogger())

	if err := v.Validate(validBooking()); err != nil {
		t.Fatalf("Validate() returned error for valid booking: %v", err)
	}
}

func TestValidate_DateOrdering(t *testing.T) {
	v := NewBookingValidator(testLogger())

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		wantErr  bool
	}{
		{
			name:     "check-out after check-in",
			checkIn:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			wantErr:  false,
		},
		{
			name:     "check-out before check-in",
			checkIn:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
			wantErr:  true,
		},
		{
			name:     "check-out equal to check-in",
			checkIn:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			booking.CheckIn = tt.checkIn
			booking.CheckOut = tt.checkOut

			err := v.Validate(booking)
			if tt.wantErr && err == nil {
				t.Fatal("Validate() = nil, want date-ordering error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if tt.wantErr {
				var validationErrs ValidationErrors
				if !errors.As(err, &validationErrs) {
					t.Fatalf("error type = %T, want ValidationErrors", err)
				}
				if len(validationErrs) != 1 || validationErrs[0].Message != "Check-out date must be after check-in date" {
					t.Errorf("unexpected validation errors: %v", validationErrs)
				}
			}
		})
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	v := NewBookingValidator(testLogger())

	tests := []struct {
		name      string
		mutate    func(*model.Booking)
		wantField string
	}{
		{
			name:      "missing guest name",
			mutate:    func(b *model.Booking) { b.GuestName = "" },
			wantField: "GuestName",
		},
		{
			name:      "invalid email",
			mutate:    func(b *model.Booking) { b.Email = "not-an-email" },
			wantField: "Email",
		},
		{
			name:      "unknown room type",
			mutate:    func(b *model.Booking) { b.RoomType = "penthouse" },
			wantField: "RoomType",
		},
		{
			name:      "zero guests",
			mutate:    func(b *model.Booking) { b.NumberOfGuests = 0 },
			wantField: "NumberOfGuests",
		},
		{
			name:      "unknown status",
			mutate:    func(b *model.Booking) { b.Status = "done" },
			wantField: "Status",
		},
		{
			name:      "negative total amount",
			mutate:    func(b *model.Booking) { b.TotalAmount = -1 },
			wantField: "TotalAmount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			tt.mutate(booking)

			err := v.Validate(booking)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}

			var validationErrs ValidationErrors
			if !errors.As(err, &validationErrs) {
				t.Fatalf("error type = %T, want ValidationErrors", err)
			}

			found := false
			for _, ve := range validationErrs {
				if ve.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error for field %s, got %v", tt.wantField, validationErrs)
			}
		})
	}
}
