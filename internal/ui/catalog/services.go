package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"suptui/internal/cache"
	"suptui/internal/client"
	"suptui/internal/table"
	"suptui/internal/ui/common"
	"suptui/internal/ui/uiconst"
)

// ServicesResource is the cache key of the supplier services.
const ServicesResource = "services"

// ServiceName returns the label of a service id, or "Unknown".
func ServiceName(serviceID string) string {
	if l, ok := client.ServiceTypeLabels[serviceID]; ok {
		return l
	}
	return "Unknown"
}

// PriceSummary renders prices as "$20 (Per Person), $300 (Per Day)".
func PriceSummary(prices []client.ServicePrice) string {
	parts := make([]string, 0, len(prices))
	for _, p := range prices {
		label, ok := client.PriceTypeLabels[p.Type]
		if !ok {
			label = "Unknown"
		}
		parts = append(parts, fmt.Sprintf("$%s (%s)", strconv.FormatFloat(p.Price, 'f', -1, 64), label))
	}
	return strings.Join(parts, ", ")
}

// ServicesConfig returns the table configuration of the services screen.
func ServicesConfig() table.Config {
	return table.Config{
		Title: "Services",
		Columns: []table.Column{
			{Key: "serviceName", Label: "Service Type", Sortable: true, Width: uiconst.ColWidthCompany},
			{Key: "deliveryTimeSlots", Label: "Delivery Time Slots", Sortable: true, Width: uiconst.ColWidthSlots},
			{Key: "priceSummary", Label: "Prices", Width: uiconst.ColWidthPrices},
		},
		SearchFields: []string{"serviceName", "deliveryTimeSlots"},
	}
}

// ServiceRows converts supplier services into table rows. The raw service is
// kept under "service" so edits can send the full list back.
func ServiceRows(services []client.SupplierService) []table.Row {
	rows := make([]table.Row, 0, len(services))
	for _, s := range services {
		rows = append(rows, table.Row{
			"id":                s.ID,
			"serviceName":       ServiceName(s.ServiceID),
			"deliveryTimeSlots": s.DeliveryTimeSlots,
			"priceSummary":      PriceSummary(s.Prices),
			"service":           s,
		})
	}
	return rows
}

// FetchServices returns the loader of the services dataset.
func FetchServices(cc client.CatalogClient) cache.FetchFunc {
	return func(ctx context.Context) ([]table.Row, error) {
		services, err := cc.ListSupplierServices(ctx)
		if err != nil {
			return nil, err
		}
		return ServiceRows(services), nil
	}
}

// ServicesModel lists the services of the logged in supplier.
type ServicesModel struct {
	client client.CatalogClient
	view   common.ResourceView
}

// NewServicesModel creates the services screen.
func NewServicesModel(cc client.CatalogClient, env common.Env) ServicesModel {
	return ServicesModel{
		client: cc,
		view:   common.NewResourceView(env, ServicesResource, ServicesConfig(), FetchServices(cc)),
	}
}

func (m ServicesModel) Init() tea.Cmd { return m.view.Init() }

func (m ServicesModel) CapturesInput() bool { return m.view.CapturesInput() }

func (m ServicesModel) Overlay() bool { return m.view.Overlay() }

func (m ServicesModel) Table() common.DataTableModel { return m.view.Table }

// Update handles messages for the model.
func (m ServicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cc, view := m.client, m.view
	switch msg := msg.(type) {
	case common.RowEditMsg:
		return m, m.edit(msg.Row)
	case common.RowActionMsg:
		id, name := common.Str(msg.Row, "id"), common.Str(msg.Row, "serviceName")
		m.view.Ask(fmt.Sprintf("Delete %s service?", name), func() tea.Cmd {
			return view.Mutate("Deleted "+name, func(ctx context.Context) error {
				return cc.DeleteSupplierService(ctx, id)
			})
		})
		return m, nil
	case tea.KeyMsg:
		if m.view.Overlay() || m.view.CapturesInput() || m.view.Loading() {
			break
		}
		if msg.String() == "C" {
			m.view.Ask("Delete all services?", func() tea.Cmd {
				return view.Mutate("Deleted all services", cc.DeleteSupplierServices)
			})
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *ServicesModel) edit(r table.Row) tea.Cmd {
	id, name := common.Str(r, "id"), common.Str(r, "serviceName")
	fields := []common.FormField{{Key: "slots", Label: "Delivery time slots", Value: common.Str(r, "deliveryTimeSlots")}}
	cc, view := m.client, m.view
	data := m.view.Table.Engine().Data()
	return m.view.OpenForm("Edit "+name, fields, func(v map[string]string) tea.Cmd {
		if v["slots"] == "" {
			err := errors.New("delivery time slots is required")
			return func() tea.Msg { return common.MutationDoneMsg{Resource: ServicesResource, Err: err} }
		}
		services := make([]client.SupplierService, 0, len(data))
		for _, row := range data {
			s, ok := row["service"].(client.SupplierService)
			if !ok {
				continue
			}
			if s.ID == id {
				s.DeliveryTimeSlots = v["slots"]
			}
			services = append(services, s)
		}
		return view.Mutate("Updated "+name, func(ctx context.Context) error {
			_, err := cc.UpdateSupplierServices(ctx, services)
			return err
		})
	})
}

func (m ServicesModel) View() string { return m.view.View() }

var _ tea.Model = (*ServicesModel)(nil)
