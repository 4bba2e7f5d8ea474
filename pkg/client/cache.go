package client

import (
	"context"
	"fmt"
	"sync"

	"innkeeper/pkg/model"
)

// MaxGuestsPerBooking is a client-side cap on party size. The server only
// enforces a minimum of one guest.
const MaxGuestsPerBooking = 4

// BookingCache is an in-memory mirror of the booking store for UI rendering.
// It is populated by Load and kept in sync write-through: every mutation
// issues the API call first and splices the server's authoritative record
// into the mirror only when the call succeeds. A failed call returns an
// error and leaves the mirror untouched. The cache never patches records
// optimistically and is not authoritative.
type BookingCache struct {
	mu       sync.RWMutex
	api      *BookingClient
	bookings []*model.Booking
}

func NewBookingCache(api *BookingClient) *BookingCache {
	return &BookingCache{
		api: api,
	}
}

// Load replaces the mirror with a full list fetch, newest first.
func (c *BookingCache) Load(ctx context.Context) error {
	bookings, err := c.api.GetAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.bookings = bookings
	c.mu.Unlock()
	return nil
}

// Bookings returns a snapshot of the mirror in store order.
func (c *BookingCache) Bookings() []*model.Booking {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*model.Booking, len(c.bookings))
	copy(out, c.bookings)
	return out
}

func (c *BookingCache) Get(id string) (*model.Booking, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, b := range c.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

func (c *BookingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bookings)
}

// Add submits a new booking and prepends the created record. The party-size
// cap is enforced here only; the server accepts any count >= 1.
func (c *BookingCache) Add(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	if booking.NumberOfGuests > MaxGuestsPerBooking {
		return nil, fmt.Errorf("number of guests cannot exceed %d", MaxGuestsPerBooking)
	}

	created, err := c.api.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.bookings = append([]*model.Booking{created}, c.bookings...)
	c.mu.Unlock()
	return created, nil
}

// UpdateStatus asks the store to move the booking to the target status and
// replaces the local record with the server's response.
func (c *BookingCache) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	updated, err := c.api.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	c.replace(updated)
	return updated, nil
}

// Cancel soft-cancels the booking; the record stays in the mirror with its
// status set to cancelled.
func (c *BookingCache) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	cancelled, err := c.api.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	c.replace(cancelled)
	return cancelled, nil
}

func (c *BookingCache) replace(updated *model.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, b := range c.bookings {
		if b.ID == updated.ID {
			c.bookings[i] = updated
			return
		}
	}
	// Not mirrored yet (mutation raced the initial Load); adopt the server
	// record.
	c.bookings = append([]*model.Booking{updated}, c.bookings...)
}
