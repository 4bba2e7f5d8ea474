package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "innkeeper/internal/bookings/errors"
	"innkeeper/internal/bookings/repository"
	"innkeeper/internal/bookings/validator"
	"innkeeper/pkg/config"
	apperrors "innkeeper/pkg/errors"
	"innkeeper/pkg/model"
	"innkeeper/pkg/sanitizer"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	CheckAvailability(ctx context.Context, roomType string, checkIn, checkOut time.Time) (*model.Availability, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	events    EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	events EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

// Create validates and persists a guest submission. Status is always forced
// to pending; clients cannot create a booking in a later lifecycle state.
// The availability check is advisory and deliberately not consulted here:
// create and check-availability are independent round trips, so two
// concurrent overlapping creates both succeed.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.sanitize(booking)
	booking.Status = model.StatusPending

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return validationError(err)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.publishEvent(ctx, EventBookingCreated, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_type", booking.RoomType,
		"check_in", booking.CheckIn,
		"check_out", booking.CheckOut,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "retrieve")
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// UpdateStatus moves a booking along the forward-only lifecycle. Setting the
// current status again is an idempotent no-op returning the stored record
// without a write. A transition the lifecycle table disallows is rejected
// with a conflict and nothing is persisted.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if !model.ValidStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid status value: %s", status))
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "update")
	}

	if existing.Status == status {
		return existing, nil
	}

	if !model.CanTransition(existing.Status, status) {
		return nil, apperrors.Conflict(fmt.Sprintf(
			"Cannot change booking status from %s to %s", existing.Status, status,
		))
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.cfg.Log.Error("Failed to update booking status", "id", id, "status", status, "error", err)
		return nil, s.mapRepoError(err, id, "update")
	}

	s.publishEvent(ctx, EventBookingStatusChanged, updated)

	s.cfg.Log.Info("Booking status updated", "id", id, "from", existing.Status, "to", status)
	return updated, nil
}

// Cancel is a soft-cancel: the booking keeps its record and stops counting
// as an availability conflict.
func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	return s.UpdateStatus(ctx, id, model.StatusCancelled)
}

func (s *bookingService) CheckAvailability(ctx context.Context, roomType string, checkIn, checkOut time.Time) (*model.Availability, error) {
	if !model.ValidRoomType(roomType) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid room type: %s", roomType))
	}

	count, err := s.repo.CountOverlapping(ctx, roomType, checkIn, checkOut)
	if err != nil {
		s.cfg.Log.Error("Failed to check availability",
			"room_type", roomType,
			"check_in", checkIn,
			"check_out", checkOut,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	s.cfg.Log.Debug("Availability check completed",
		"room_type", roomType,
		"conflicts", count,
	)
	return &model.Availability{
		Available:        count == 0,
		ExistingBookings: count,
	}, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.GuestName = sanitizer.NormalizeName(b.GuestName)
	b.Email = sanitizer.NormalizeEmail(b.Email)
	b.PhoneNumber = sanitizer.NormalizePhone(b.PhoneNumber)
	b.SpecialRequests = sanitizer.NormalizeFreeText(b.SpecialRequests)
}

func (s *bookingService) mapRepoError(err error, id string, action string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal(fmt.Sprintf("Failed to %s booking", action), err)
}

// validationError turns the validator's field errors into a 400 whose
// message is the single field message when there is exactly one, so "Check-out
// date must be after check-in date" surfaces directly.
func validationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fields := make(map[string]any, len(validationErrs))
		for _, ve := range validationErrs {
			fields[ve.Field] = ve.Message
		}
		message := "Booking validation failed"
		if len(validationErrs) == 1 {
			message = validationErrs[0].Message
		}
		return apperrors.Validation(message, fields)
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}
