package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"suptui/internal/cache"
	"suptui/internal/client"
	"suptui/internal/table"
	"suptui/internal/ui/common"
	"suptui/internal/ui/uiconst"
)

// EventTypesResource is the cache key of the supplier event types.
const EventTypesResource = "event-types"

// EventTypesConfig returns the table configuration of the event types screen.
func EventTypesConfig() table.Config {
	return table.Config{
		Title: "Event Types",
		Columns: []table.Column{
			{Key: "name", Label: "Event Type", Sortable: true, Width: uiconst.ColWidthName},
			{Key: "minCapacity", Label: "Min guests", Sortable: true, Width: uiconst.ColWidthCount},
			{Key: "maxCapacity", Label: "Max guests", Sortable: true, Width: uiconst.ColWidthCount},
		},
		SearchFields: []string{"name"},
	}
}

// EventTypeRows joins the supplier capacities with the event type names.
// Types missing from the catalog show their id.
func EventTypeRows(catalog []client.EventType, served []client.SupplierEventType) []table.Row {
	names := make(map[string]string, len(catalog))
	for _, et := range catalog {
		names[et.ID] = et.Name
	}
	rows := make([]table.Row, 0, len(served))
	for _, s := range served {
		name, ok := names[s.EventTypeID]
		if !ok {
			name = s.EventTypeID
		}
		rows = append(rows, table.Row{
			"id":          s.EventTypeID,
			"name":        name,
			"minCapacity": s.MinCapacity,
			"maxCapacity": s.MaxCapacity,
		})
	}
	return rows
}

// FetchEventTypes loads the catalog and the supplier capacities concurrently.
func FetchEventTypes(cc client.CatalogClient) cache.FetchFunc {
	return func(ctx context.Context) ([]table.Row, error) {
		var catalog []client.EventType
		var served []client.SupplierEventType
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			catalog, err = cc.ListEventTypes(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			served, err = cc.ListSupplierEventTypes(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return EventTypeRows(catalog, served), nil
	}
}

// capacities rebuilds the request payload from the table rows.
func capacities(rows []table.Row) []client.SupplierEventType {
	out := make([]client.SupplierEventType, 0, len(rows))
	for _, r := range rows {
		minC, _ := r["minCapacity"].(int)
		maxC, _ := r["maxCapacity"].(int)
		out = append(out, client.SupplierEventType{
			EventTypeID: common.Str(r, "id"),
			MinCapacity: minC,
			MaxCapacity: maxC,
		})
	}
	return out
}

// ParseCapacity validates a min/max pair entered in the edit form.
func ParseCapacity(minText, maxText string) (int, int, error) {
	minC, err := strconv.Atoi(minText)
	if err != nil || minC <= 0 {
		return 0, 0, errors.New("minimum capacity must be a positive whole number")
	}
	maxC, err := strconv.Atoi(maxText)
	if err != nil || maxC <= 0 {
		return 0, 0, errors.New("maximum capacity must be a positive whole number")
	}
	if maxC <= minC {
		return 0, 0, errors.New("maximum capacity must be greater than minimum capacity")
	}
	return minC, maxC, nil
}

// EventTypesModel edits the guest capacities a supplier serves per event type.
type EventTypesModel struct {
	client client.CatalogClient
	view   common.ResourceView
}

// NewEventTypesModel creates the event types screen.
func NewEventTypesModel(cc client.CatalogClient, env common.Env) EventTypesModel {
	return EventTypesModel{
		client: cc,
		view:   common.NewResourceView(env, EventTypesResource, EventTypesConfig(), FetchEventTypes(cc)),
	}
}

func (m EventTypesModel) Init() tea.Cmd { return m.view.Init() }

func (m EventTypesModel) CapturesInput() bool { return m.view.CapturesInput() }

func (m EventTypesModel) Overlay() bool { return m.view.Overlay() }

func (m EventTypesModel) Table() common.DataTableModel { return m.view.Table }

// Update handles messages for the model.
func (m EventTypesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.RowEditMsg:
		return m, m.edit(msg.Row)
	case common.RowActionMsg:
		id, name := common.Str(msg.Row, "id"), common.Str(msg.Row, "name")
		m.view.Ask(fmt.Sprintf("Stop serving %s events?", name), m.replace(id, nil, "Removed "+name))
		return m, nil
	case tea.KeyMsg:
		if m.view.Overlay() || m.view.CapturesInput() || m.view.Loading() {
			break
		}
		if msg.String() == "C" {
			cc, view := m.client, m.view
			m.view.Ask("Remove all event types?", func() tea.Cmd {
				return view.Mutate("Cleared event types", cc.DeleteSupplierEventTypes)
			})
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// replace returns a command that PUTs the full list with the row id swapped
// for with, or dropped when with is nil.
func (m EventTypesModel) replace(id string, with *client.SupplierEventType, done string) func() tea.Cmd {
	cc, view := m.client, m.view
	current := capacities(m.view.Table.Engine().Data())
	return func() tea.Cmd {
		next := make([]client.SupplierEventType, 0, len(current))
		for _, et := range current {
			switch {
			case et.EventTypeID != id:
				next = append(next, et)
			case with != nil:
				next = append(next, *with)
			}
		}
		return view.Mutate(done, func(ctx context.Context) error {
			_, err := cc.UpdateSupplierEventTypes(ctx, next)
			return err
		})
	}
}

func (m *EventTypesModel) edit(r table.Row) tea.Cmd {
	id, name := common.Str(r, "id"), common.Str(r, "name")
	fields := []common.FormField{
		{Key: "min", Label: "Min guests", Value: common.Str(r, "minCapacity")},
		{Key: "max", Label: "Max guests", Value: common.Str(r, "maxCapacity")},
	}
	self := *m
	return m.view.OpenForm("Capacity for "+name, fields, func(v map[string]string) tea.Cmd {
		minC, maxC, err := ParseCapacity(v["min"], v["max"])
		if err != nil {
			return func() tea.Msg { return common.MutationDoneMsg{Resource: EventTypesResource, Err: err} }
		}
		with := &client.SupplierEventType{EventTypeID: id, MinCapacity: minC, MaxCapacity: maxC}
		return self.replace(id, with, "Updated "+name)()
	})
}

func (m EventTypesModel) View() string { return m.view.View() }

var _ tea.Model = (*EventTypesModel)(nil)
