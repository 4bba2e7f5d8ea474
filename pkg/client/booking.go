package client

import (
	"context"
	"fmt"
	"net/url"

	"innkeeper/pkg/model"
)

// BookingClient is a typed client for the booking endpoints. Responses are
// decoded into model types; non-2xx responses surface as errors carrying the
// server's message.
type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

// SetToken attaches a bearer token for the authenticated endpoints.
func (c *BookingClient) SetToken(token string) {
	c.httpClient.SetToken(token)
}

func (c *BookingClient) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/bookings", booking)
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp)
}

func (c *BookingClient) GetAll(ctx context.Context) ([]*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/bookings")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("list bookings failed: %s", GetErrorMessage(resp))
	}

	var bookings []*model.Booking
	if err := resp.DecodeJSON(&bookings); err != nil {
		return nil, fmt.Errorf("could not decode booking list: %w", err)
	}
	return bookings, nil
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/bookings/id/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp)
}

func (c *BookingClient) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id) + "/status"
	resp, err := c.httpClient.PUT(ctx, path, map[string]string{"status": status})
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp)
}

func (c *BookingClient) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id) + "/cancel"
	resp, err := c.httpClient.POST(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp)
}

func (c *BookingClient) CheckAvailability(ctx context.Context, roomType, checkIn, checkOut string) (*model.Availability, error) {
	q := url.Values{}
	q.Set("roomType", roomType)
	q.Set("checkIn", checkIn)
	q.Set("checkOut", checkOut)

	resp, err := c.httpClient.GET(ctx, "/api/v1/bookings/check-availability?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("availability check failed: %s", GetErrorMessage(resp))
	}

	var availability model.Availability
	if err := resp.DecodeJSON(&availability); err != nil {
		return nil, fmt.Errorf("could not decode availability: %w", err)
	}
	return &availability, nil
}

func decodeBooking(resp *Response) (*model.Booking, error) {
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("booking request failed (%d): %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var booking model.Booking
	if err := resp.DecodeJSON(&booking); err != nil {
		return nil, fmt.Errorf("could not decode booking: %w", err)
	}
	return &booking, nil
}
