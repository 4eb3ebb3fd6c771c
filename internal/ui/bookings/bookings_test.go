package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"suptui/internal/client"
	"suptui/internal/table"
	"suptui/internal/ui/common"
	"suptui/internal/ui/uitest"
)

type statusCall struct {
	ids    []string
	status string
}

type mockBookingsClient struct {
	bookings []client.Booking
	single   []statusCall
	bulk     []statusCall
	deleted  []string
}

func (m *mockBookingsClient) ListBookings(ctx context.Context, params client.ListParams) ([]client.Booking, error) {
	return m.bookings, nil
}

func (m *mockBookingsClient) GetBooking(ctx context.Context, id string) (client.Booking, error) {
	return client.Booking{}, nil
}

func (m *mockBookingsClient) SetBookingStatus(ctx context.Context, id, status string) (client.Booking, error) {
	m.single = append(m.single, statusCall{ids: []string{id}, status: status})
	return client.Booking{ID: id, Status: status}, nil
}

func (m *mockBookingsClient) DeleteBooking(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockBookingsClient) BulkDeleteBookings(ctx context.Context, ids []string) error {
	m.deleted = append(m.deleted, ids...)
	return nil
}

func (m *mockBookingsClient) BulkUpdateBookingStatus(ctx context.Context, ids []string, status string) error {
	m.bulk = append(m.bulk, statusCall{ids: ids, status: status})
	return nil
}

func fixture(t *testing.T) (BookingsModel, *mockBookingsClient) {
	t.Helper()
	mc := &mockBookingsClient{bookings: []client.Booking{
		{ID: "b1", Status: "pending", Attendees: 120, TotalAmount: 4500, User: client.BookingUser{Name: "Ada"}, Event: client.BookingEvent{Title: "Wedding", StartDate: "2026-06-01T15:00:00Z"}},
		{ID: "b2", Status: "confirmed", Attendees: 8, TotalAmount: 320.5, User: client.BookingUser{Name: "Max"}, Event: client.BookingEvent{Title: "Dinner"}},
		{ID: "b3", Status: "pending", Attendees: 40, TotalAmount: 900, User: client.BookingUser{Name: "Lin"}, Event: client.BookingEvent{Title: "Launch"}},
	}}
	m := NewBookingsModel(mc, common.Env{})
	for _, msg := range uitest.Collect(m.Init()) {
		next, _ := m.Update(msg)
		m = next.(BookingsModel)
	}
	return m, mc
}

func keys(m BookingsModel, ks ...string) BookingsModel {
	for _, k := range ks {
		next, cmd := m.Update(uitest.Key(k))
		m = next.(BookingsModel)
		for _, msg := range uitest.Collect(cmd) {
			next, _ = m.Update(msg)
			m = next.(BookingsModel)
		}
	}
	return m
}

func TestBookingsRows(t *testing.T) {
	m, _ := fixture(t)
	rows := m.Table().Engine().Filtered()
	require.Len(t, rows, 3)
	require.Equal(t, "2026-06-01", rows[0]["date"])
	require.Equal(t, "$320.50", amount(320.5, nil))

	tabs := m.Table().Engine().Tabs()
	require.Equal(t, "Pending", tabs[1].Label)
	require.Equal(t, 2, tabs[1].Count)
}

func TestBookingsSortByAmount(t *testing.T) {
	m, _ := fixture(t)
	m.Table().Engine().ToggleSort("totalAmount")
	var got []string
	for _, r := range m.Table().Engine().PageRows() {
		got = append(got, r["id"].(string))
	}
	require.Equal(t, []string{"b2", "b3", "b1"}, got)
}

func TestBookingsBulkStatus(t *testing.T) {
	m, mc := fixture(t)
	m = keys(m, "a", "2")
	require.Contains(t, m.View(), "Mark 3 bookings as confirmed?")
	m = keys(m, "y")
	require.Equal(t, []statusCall{{ids: []string{"b1", "b2", "b3"}, status: "confirmed"}}, mc.bulk)
	require.Empty(t, m.Table().Selected())
}

func TestBookingsSingleStatusWithoutSelection(t *testing.T) {
	m, mc := fixture(t)
	m = keys(m, "down", "3", "y")
	require.Equal(t, []statusCall{{ids: []string{"b2"}, status: "cancelled"}}, mc.single)
	require.Empty(t, mc.bulk)
}

func TestBookingsEditStatus(t *testing.T) {
	m, mc := fixture(t)
	m = keys(m, "m", "e")
	require.True(t, m.CapturesInput())

	// An unknown status keeps the form open with the error. Typing is sent
	// without running the cursor blink it schedules.
	next, _ := m.Update(uitest.Key("x"))
	m = keys(next.(BookingsModel), "enter")
	require.True(t, m.CapturesInput())
	require.Contains(t, m.View(), "status must be one of")
	require.Empty(t, mc.single)
}

func TestBookingsDelete(t *testing.T) {
	m, mc := fixture(t)
	keys(m, "m", "d", "y")
	require.Equal(t, []string{"b1"}, mc.deleted)
}

func TestBookingsDetail(t *testing.T) {
	md := Detail(table.Row{"id": "b9", "user": "Ada", "event": "Gala", "totalAmount": 10.0}).Markdown()
	require.Contains(t, md, "# Booking b9")
	require.Contains(t, md, "- **Amount**: $10.00")
	require.Contains(t, md, "## Event")
}
