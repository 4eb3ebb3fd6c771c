package vendors

import (
	"context"
	"errors"
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

// Resource is the cache key of the vendors dataset.
const Resource = "vendors"

const (
	statusActive   = client.StatusActive
	statusInactive = client.StatusInactive
	statusPending  = "pending"
)

// categoryOptions lists the service categories as filter choices.
func categoryOptions() []table.FilterOption {
	labels := make([]string, 0, len(client.ServiceTypeLabels))
	for _, l := range client.ServiceTypeLabels {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	opts := make([]table.FilterOption, 0, len(labels))
	for _, l := range labels {
		opts = append(opts, table.FilterOption{Label: l, Value: l})
	}
	return opts
}

// Config returns the table configuration of the vendors screen.
func Config() table.Config {
	return table.Config{
		Title: "Vendors",
		Columns: []table.Column{
			{Key: "name", Label: "Name", Sortable: true, Width: uiconst.ColWidthName},
			{Key: "contactPerson", Label: "Contact", Sortable: true, Width: uiconst.ColWidthName},
			{Key: "email", Label: "Email", Width: uiconst.ColWidthEmail},
			{Key: "phone", Label: "Phone", Width: uiconst.ColWidthPhone},
			{Key: "category", Label: "Category", Sortable: true, Width: uiconst.ColWidthCompany},
			{Key: "status", Label: "Status", Sortable: true, Width: uiconst.ColWidthCategory},
		},
		Tabs: []table.StatusTab{
			{Label: "All", Value: table.AllValue},
			{Label: "Active", Value: statusActive, Color: table.ToneSuccess},
			{Label: "Inactive", Value: statusInactive, Color: table.ToneError},
			{Label: "Pending", Value: statusPending, Color: table.ToneWarning},
		},
		StatusField:  "status",
		FieldFilters: []table.FieldFilter{{Label: "Category", Field: "category", Options: categoryOptions()}},
	}
}

// Rows converts vendors into table rows.
func Rows(vendors []client.Vendor) []table.Row {
	rows := make([]table.Row, 0, len(vendors))
	for _, v := range vendors {
		rows = append(rows, table.Row{
			"id":            v.ID,
			"name":          v.Name,
			"contactPerson": v.ContactPerson,
			"email":         v.Email,
			"phone":         v.Phone,
			"category":      v.Category,
			"status":        v.Status,
			"address":       v.Address,
			"website":       v.Website,
			"description":   v.Description,
			"taxId":         v.TaxID,
		})
	}
	return rows
}

// Fetch returns the loader of the vendors dataset.
func Fetch(vc client.VendorsClient) cache.FetchFunc {
	return func(ctx context.Context) ([]table.Row, error) {
		vendors, err := vc.ListVendors(ctx, client.ListParams{})
		if err != nil {
			return nil, err
		}
		return Rows(vendors), nil
	}
}

// VendorsModel lists supplier organisations.
type VendorsModel struct {
	client client.VendorsClient
	view   common.ResourceView
}

// NewVendorsModel creates the vendors screen.
func NewVendorsModel(vc client.VendorsClient, env common.Env) VendorsModel {
	return VendorsModel{client: vc, view: common.NewResourceView(env, Resource, Config(), Fetch(vc))}
}

func (m VendorsModel) Init() tea.Cmd { return m.view.Init() }

func (m VendorsModel) CapturesInput() bool { return m.view.CapturesInput() }

func (m VendorsModel) Overlay() bool { return m.view.Overlay() }

func (m VendorsModel) Table() common.DataTableModel { return m.view.Table }

// Update handles messages for the model.
func (m VendorsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.RowEditMsg:
		return m, m.edit(msg.Row)
	case common.RowActionMsg:
		id, name := common.Str(msg.Row, "id"), common.Str(msg.Row, "name")
		vc, view := m.client, m.view
		m.view.Ask(fmt.Sprintf("Delete vendor %s?", name), func() tea.Cmd {
			return view.Mutate("Deleted "+name, func(ctx context.Context) error {
				return vc.DeleteVendor(ctx, id)
			})
		})
		return m, nil
	case tea.KeyMsg:
		if m.view.Overlay() || m.view.CapturesInput() || m.view.Loading() {
			break
		}
		switch msg.String() {
		case "t":
			if r, ok := m.view.Table.CursorRow(); ok {
				return m, m.toggleStatus(r)
			}
			return m, nil
		case "enter":
			if r, ok := m.view.Table.CursorRow(); ok {
				m.view.ShowDetail(Detail(r))
			}
			return m, nil
		case "D":
			sel := m.view.Table.Selected()
			if len(sel) == 0 {
				m.view.Status.SetMessage("Select vendors with space first")
				return m, nil
			}
			ids := common.IDs(sel)
			vc, view := m.client, m.view
			m.view.Ask(fmt.Sprintf("Delete %d vendors?", len(ids)), func() tea.Cmd {
				return view.Mutate(fmt.Sprintf("Deleted %d vendors", len(ids)), func(ctx context.Context) error {
					return vc.BulkDeleteVendors(ctx, ids)
				})
			})
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// NextStatus is the status the toggle moves a vendor to.
func NextStatus(cur string) string {
	if cur == statusActive {
		return statusInactive
	}
	return statusActive
}

func (m VendorsModel) toggleStatus(r table.Row) tea.Cmd {
	id, next := common.Str(r, "id"), NextStatus(common.Str(r, "status"))
	return m.view.Mutate(fmt.Sprintf("%s is now %s", common.Str(r, "name"), next), func(ctx context.Context) error {
		_, err := m.client.SetVendorStatus(ctx, id, next)
		return err
	})
}

func (m *VendorsModel) edit(r table.Row) tea.Cmd {
	id := common.Str(r, "id")
	fields := []common.FormField{
		{Key: "name", Label: "Name", Value: common.Str(r, "name")},
		{Key: "contactPerson", Label: "Contact", Value: common.Str(r, "contactPerson")},
		{Key: "email", Label: "Email", Value: common.Str(r, "email")},
		{Key: "phone", Label: "Phone", Value: common.Str(r, "phone")},
		{Key: "category", Label: "Category", Value: common.Str(r, "category")},
		{Key: "website", Label: "Website", Value: common.Str(r, "website")},
		{Key: "address", Label: "Address", Value: common.Str(r, "address")},
	}
	vc, view := m.client, m.view
	return m.view.OpenForm("Edit vendor", fields, func(v map[string]string) tea.Cmd {
		if err := validate(v); err != nil {
			return func() tea.Msg { return common.MutationDoneMsg{Resource: Resource, Err: err} }
		}
		opts := client.UpdateVendorOpts{
			Name:          v["name"],
			ContactPerson: v["contactPerson"],
			Email:         v["email"],
			Phone:         v["phone"],
			Category:      v["category"],
			Website:       v["website"],
			Address:       v["address"],
		}
		return view.Mutate("Updated "+opts.Name, func(ctx context.Context) error {
			_, err := vc.UpdateVendor(ctx, id, opts)
			return err
		})
	})
}

func validate(v map[string]string) error {
	var missing []string
	for _, k := range []string{"name", "email", "phone"} {
		if v[k] == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return errors.New(strings.Join(missing, ", ") + " required")
	}
	if !strings.Contains(v["email"], "@") {
		return errors.New("email is invalid")
	}
	return nil
}

// Detail builds the detail page of a vendor row.
func Detail(r table.Row) common.DetailModel {
	d := common.NewDetail(common.Str(r, "name"), []common.Field{
		{Label: "Contact", Value: common.Str(r, "contactPerson")},
		{Label: "Email", Value: common.Str(r, "email")},
		{Label: "Phone", Value: common.Str(r, "phone")},
		{Label: "Category", Value: common.Str(r, "category")},
		{Label: "Status", Value: common.Str(r, "status")},
		{Label: "Website", Value: common.Str(r, "website")},
		{Label: "Tax ID", Value: common.Str(r, "taxId")},
		{Label: "Address", Value: common.Str(r, "address")},
	})
	if desc := common.Str(r, "description"); desc != "" {
		d.AddSection("About", []common.Field{{Label: "Description", Value: desc}})
	}
	return d
}

func (m VendorsModel) View() string { return m.view.View() }

var _ tea.Model = (*VendorsModel)(nil)
