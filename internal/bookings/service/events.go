package service

import (
	"context"
	"encoding/json"
	"time"

	"innkeeper/pkg/kafka"
	"innkeeper/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// EventPublisher is the slice of the Kafka producer the booking service
// needs. A nil publisher disables event publishing entirely.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// BookingEvent is the payload emitted on booking creation and status
// changes. Keyed by booking id so per-booking ordering is preserved.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	RoomType   string    `json:"roomType"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// publishEvent is best-effort: a broker failure is logged and never fails
// the request that triggered it.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.events == nil {
		return
	}

	event := BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		RoomType:   booking.RoomType,
		Status:     booking.Status,
		OccurredAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		s.cfg.Log.Error("Failed to encode booking event", "type", eventType, "id", booking.ID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:       booking.ID,
		Value:     value,
		Timestamp: event.OccurredAt,
	}
	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "type", eventType, "id", booking.ID, "error", err)
	}
}
