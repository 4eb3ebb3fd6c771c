package bookings

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"suptui/internal/cache"
	"suptui/internal/client"
	"suptui/internal/table"
	"suptui/internal/ui/common"
	"suptui/internal/ui/uiconst"
)

// Resource is the cache key of the bookings dataset.
const Resource = "bookings"

// Statuses in tab order. The number keys 1-4 apply them.
var Statuses = []string{
	client.BookingPending,
	client.BookingConfirmed,
	client.BookingCancelled,
	client.BookingCompleted,
}

func amount(v any, _ table.Row) string {
	f, ok := v.(float64)
	if !ok {
		return table.FormatValue(v)
	}
	return fmt.Sprintf("$%.2f", f)
}

// Config returns the table configuration of the bookings screen.
func Config() table.Config {
	tabs := []table.StatusTab{{Label: "All", Value: table.AllValue}}
	for _, s := range Statuses {
		tabs = append(tabs, table.StatusTab{Label: strings.ToUpper(s[:1]) + s[1:], Value: s, Color: table.StatusTone(s)})
	}
	return table.Config{
		Title: "Bookings",
		Columns: []table.Column{
			{Key: "id", Label: "Booking", Width: uiconst.ColWidthID},
			{Key: "user", Label: "Customer", Sortable: true, Width: uiconst.ColWidthName},
			{Key: "event", Label: "Event", Sortable: true, Width: uiconst.ColWidthName},
			{Key: "date", Label: "Date", Sortable: true, Width: uiconst.ColWidthDate, Searchable: table.Searchable(false)},
			{Key: "attendees", Label: "Guests", Sortable: true, Width: uiconst.ColWidthCount},
			{Key: "totalAmount", Label: "Amount", Sortable: true, Width: uiconst.ColWidthAmount, Render: amount},
			{Key: "status", Label: "Status", Sortable: true, Width: uiconst.ColWidthCategory},
		},
		Tabs:        tabs,
		StatusField: "status",
	}
}

// Rows converts bookings into table rows.
func Rows(bookings []client.Booking) []table.Row {
	rows := make([]table.Row, 0, len(bookings))
	for _, b := range bookings {
		date := b.Event.StartDate
		if len(date) > 10 {
			date = date[:10]
		}
		rows = append(rows, table.Row{
			"id":          b.ID,
			"user":        b.User.Name,
			"email":       b.User.Email,
			"event":       b.Event.Title,
			"location":    b.Event.Location,
			"date":        date,
			"attendees":   b.Attendees,
			"totalAmount": b.TotalAmount,
			"status":      b.Status,
			"notes":       b.Notes,
		})
	}
	return rows
}

// Fetch returns the loader of the bookings dataset.
func Fetch(bc client.BookingsClient) cache.FetchFunc {
	return func(ctx context.Context) ([]table.Row, error) {
		bookings, err := bc.ListBookings(ctx, client.ListParams{})
		if err != nil {
			return nil, err
		}
		return Rows(bookings), nil
	}
}

// BookingsModel lists reservations and moves them through their statuses.
type BookingsModel struct {
	client client.BookingsClient
	view   common.ResourceView
}

// NewBookingsModel creates the bookings screen.
func NewBookingsModel(bc client.BookingsClient, env common.Env) BookingsModel {
	return BookingsModel{client: bc, view: common.NewResourceView(env, Resource, Config(), Fetch(bc))}
}

func (m BookingsModel) Init() tea.Cmd { return m.view.Init() }

func (m BookingsModel) CapturesInput() bool { return m.view.CapturesInput() }

func (m BookingsModel) Overlay() bool { return m.view.Overlay() }

func (m BookingsModel) Table() common.DataTableModel { return m.view.Table }

// Update handles messages for the model.
func (m BookingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.RowEditMsg:
		return m, m.edit(msg.Row)
	case common.RowActionMsg:
		id := common.Str(msg.Row, "id")
		bc, view := m.client, m.view
		m.view.Ask(fmt.Sprintf("Delete booking %s?", id), func() tea.Cmd {
			return view.Mutate("Deleted booking "+id, func(ctx context.Context) error {
				return bc.DeleteBooking(ctx, id)
			})
		})
		return m, nil
	case tea.KeyMsg:
		if m.view.Overlay() || m.view.CapturesInput() || m.view.Loading() {
			break
		}
		switch k := msg.String(); k {
		case "1", "2", "3", "4":
			m.setStatus(Statuses[k[0]-'1'])
			return m, nil
		case "D":
			m.bulkDelete()
			return m, nil
		case "enter":
			if r, ok := m.view.Table.CursorRow(); ok {
				m.view.ShowDetail(Detail(r))
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// setStatus asks to move the selection, or the row under the cursor when
// nothing is selected, to status.
func (m *BookingsModel) setStatus(status string) {
	bc, view := m.client, m.view
	if sel := m.view.Table.Selected(); len(sel) > 0 {
		ids := common.IDs(sel)
		m.view.Ask(fmt.Sprintf("Mark %d bookings as %s?", len(ids), status), func() tea.Cmd {
			return view.Mutate(fmt.Sprintf("%d bookings %s", len(ids), status), func(ctx context.Context) error {
				return bc.BulkUpdateBookingStatus(ctx, ids, status)
			})
		})
		return
	}
	r, ok := m.view.Table.CursorRow()
	if !ok {
		return
	}
	id := common.Str(r, "id")
	m.view.Ask(fmt.Sprintf("Mark booking %s as %s?", id, status), func() tea.Cmd {
		return view.Mutate(fmt.Sprintf("Booking %s %s", id, status), func(ctx context.Context) error {
			_, err := bc.SetBookingStatus(ctx, id, status)
			return err
		})
	})
}

func (m *BookingsModel) bulkDelete() {
	sel := m.view.Table.Selected()
	if len(sel) == 0 {
		m.view.Status.SetMessage("Select bookings with space first")
		return
	}
	ids := common.IDs(sel)
	bc, view := m.client, m.view
	m.view.Ask(fmt.Sprintf("Delete %d bookings?", len(ids)), func() tea.Cmd {
		return view.Mutate(fmt.Sprintf("Deleted %d bookings", len(ids)), func(ctx context.Context) error {
			return bc.BulkDeleteBookings(ctx, ids)
		})
	})
}

func (m *BookingsModel) edit(r table.Row) tea.Cmd {
	id := common.Str(r, "id")
	fields := []common.FormField{{Key: "status", Label: "Status", Value: common.Str(r, "status")}}
	bc, view := m.client, m.view
	return m.view.OpenForm("Booking "+id, fields, func(v map[string]string) tea.Cmd {
		status := strings.ToLower(v["status"])
		if !slices.Contains(Statuses, status) {
			err := fmt.Errorf("status must be one of %s", strings.Join(Statuses, ", "))
			return func() tea.Msg { return common.MutationDoneMsg{Resource: Resource, Err: err} }
		}
		return view.Mutate(fmt.Sprintf("Booking %s %s", id, status), func(ctx context.Context) error {
			_, err := bc.SetBookingStatus(ctx, id, status)
			return err
		})
	})
}

// Detail builds the detail page of a booking row.
func Detail(r table.Row) common.DetailModel {
	d := common.NewDetail("Booking "+common.Str(r, "id"), []common.Field{
		{Label: "Status", Value: common.Str(r, "status")},
		{Label: "Guests", Value: common.Str(r, "attendees")},
		{Label: "Amount", Value: amount(r["totalAmount"], r)},
		{Label: "Notes", Value: common.Str(r, "notes")},
	})
	d.AddSection("Customer", []common.Field{
		{Label: "Name", Value: common.Str(r, "user")},
		{Label: "Email", Value: common.Str(r, "email")},
	})
	d.AddSection("Event", []common.Field{
		{Label: "Title", Value: common.Str(r, "event")},
		{Label: "Date", Value: common.Str(r, "date")},
		{Label: "Location", Value: common.Str(r, "location")},
	})
	return d
}

func (m BookingsModel) View() string { return m.view.View() }

var _ tea.Model = (*BookingsModel)(nil)
