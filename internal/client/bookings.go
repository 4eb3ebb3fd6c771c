package client

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
)

// BookingsClient defines the booking operations of the supplier API.
type BookingsClient interface {
	ListBookings(ctx context.Context, params ListParams) ([]Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	SetBookingStatus(ctx context.Context, id, status string) (Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	BulkDeleteBookings(ctx context.Context, ids []string) error
	BulkUpdateBookingStatus(ctx context.Context, ids []string, status string) error
}

type bookingsClient struct {
	client *gophercloud.ServiceClient
}

// NewBookingsClient returns a BookingsClient backed by sc.
func NewBookingsClient(sc *gophercloud.ServiceClient) BookingsClient {
	return &bookingsClient{client: sc}
}

var _ BookingsClient = (*bookingsClient)(nil)

func (c *bookingsClient) ListBookings(ctx context.Context, params ListParams) ([]Booking, error) {
	bookings, err := listAll[Booking](ctx, c.client, c.client.ServiceURL("api", "bookings"), params)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (c *bookingsClient) GetBooking(ctx context.Context, id string) (Booking, error) {
	var b Booking
	if err := getJSON(ctx, c.client, c.client.ServiceURL("api", "bookings", id), nil, &b); err != nil {
		return Booking{}, fmt.Errorf("get booking %s: %w", id, err)
	}
	return b, nil
}

func (c *bookingsClient) SetBookingStatus(ctx context.Context, id, status string) (Booking, error) {
	var b Booking
	body := map[string]string{"status": status}
	if err := patchJSON(ctx, c.client, c.client.ServiceURL("api", "bookings", id, "status"), body, &b); err != nil {
		return Booking{}, fmt.Errorf("set booking %s status: %w", id, err)
	}
	return b, nil
}

func (c *bookingsClient) DeleteBooking(ctx context.Context, id string) error {
	if err := deleteResource(ctx, c.client, c.client.ServiceURL("api", "bookings", id)); err != nil {
		return fmt.Errorf("delete booking %s: %w", id, err)
	}
	return nil
}

func (c *bookingsClient) BulkDeleteBookings(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string][]string{"ids": ids}
	if err := postJSON(ctx, c.client, c.client.ServiceURL("api", "bookings", "bulk-delete"), body, nil); err != nil {
		return fmt.Errorf("bulk delete bookings: %w", err)
	}
	return nil
}

// BulkUpdateBookingStatus moves every booking in ids to status.
func (c *bookingsClient) BulkUpdateBookingStatus(ctx context.Context, ids []string, status string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]any{"ids": ids, "status": status}
	if err := postJSON(ctx, c.client, c.client.ServiceURL("api", "bookings", "bulk-update-status"), body, nil); err != nil {
		return fmt.Errorf("bulk update booking status: %w", err)
	}
	return nil
}
