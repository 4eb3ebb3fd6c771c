package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"suptui/internal/cache"
	"suptui/internal/client"
	"suptui/internal/table"
	"suptui/internal/ui/common"
	"suptui/internal/ui/uiconst"
)

// Resource is the cache key of the users dataset.
const Resource = "users"

// Statuses shown as tabs, in tab order after "All".
var Statuses = []string{"Active Host", "Pending Host", "Active Guest", "Anonymous Guest"}

// Config returns the table configuration of the users screen.
func Config() table.Config {
	tabs := []table.StatusTab{{Label: "All", Value: table.AllValue}}
	for _, s := range Statuses {
		tabs = append(tabs, table.StatusTab{Label: s, Value: s, Color: table.StatusTone(s)})
	}
	return table.Config{
		Title: "Users",
		Columns: []table.Column{
			{Key: "avatar", Label: "Avatar", Width: uiconst.ColWidthAvatar, Searchable: table.Searchable(false)},
			{Key: "name", Label: "Name", Sortable: true, Width: uiconst.ColWidthName},
			{Key: "email", Label: "Email", Sortable: true, Width: uiconst.ColWidthEmail},
			{Key: "phone", Label: "Phone", Width: uiconst.ColWidthPhone},
			{Key: "company", Label: "Company", Sortable: true, Width: uiconst.ColWidthCompany},
			{Key: "role", Label: "Role", Sortable: true, Width: uiconst.ColWidthRole},
			{Key: "status", Label: "Status", Sortable: true, Width: uiconst.ColWidthStatus},
		},
		Tabs:         tabs,
		StatusField:  "status",
		SearchFields: []string{"name", "email", "company"},
		FieldFilters: []table.FieldFilter{{
			Label: "Role",
			Field: "role",
			Options: []table.FilterOption{
				{Label: "Admin", Value: "admin"},
				{Label: "Manager", Value: "manager"},
				{Label: "User", Value: "user"},
			},
		}},
	}
}

// Rows converts users into table rows.
func Rows(users []client.User) []table.Row {
	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, table.Row{
			"id":        u.ID,
			"avatar":    u.Avatar,
			"name":      u.Name,
			"email":     u.Email,
			"phone":     u.Phone,
			"company":   u.Company,
			"role":      u.Role,
			"status":    u.Status,
			"address":   u.Address,
			"city":      u.City,
			"state":     u.State,
			"country":   u.Country,
			"zipCode":   u.ZipCode,
			"createdAt": u.CreatedAt,
		})
	}
	return rows
}

// Fetch returns the loader of the users dataset.
func Fetch(uc client.UsersClient) cache.FetchFunc {
	return func(ctx context.Context) ([]table.Row, error) {
		users, err := uc.ListUsers(ctx, client.ListParams{})
		if err != nil {
			return nil, err
		}
		return Rows(users), nil
	}
}

// UsersModel lists dashboard users and edits them.
type UsersModel struct {
	client client.UsersClient
	view   common.ResourceView
}

// NewUsersModel creates the users screen.
func NewUsersModel(uc client.UsersClient, env common.Env) UsersModel {
	return UsersModel{
		client: uc,
		view:   common.NewResourceView(env, Resource, Config(), Fetch(uc)),
	}
}

// Init starts loading.
func (m UsersModel) Init() tea.Cmd { return m.view.Init() }

// CapturesInput reports whether a form, confirm or search box has focus.
func (m UsersModel) CapturesInput() bool { return m.view.CapturesInput() }

func (m UsersModel) Overlay() bool { return m.view.Overlay() }

// Table returns the data table of the screen.
func (m UsersModel) Table() common.DataTableModel { return m.view.Table }

// Update handles messages for the model.
func (m UsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.RowEditMsg:
		return m, m.edit(msg.Row)
	case common.RowActionMsg:
		id, name := common.Str(msg.Row, "id"), common.Str(msg.Row, "name")
		m.view.Ask(fmt.Sprintf("Delete user %s?", name), func() tea.Cmd {
			return m.view.Mutate("Deleted "+name, func(ctx context.Context) error {
				return m.client.DeleteUser(ctx, id)
			})
		})
		return m, nil
	case tea.KeyMsg:
		if m.view.Overlay() || m.view.CapturesInput() || m.view.Loading() {
			break
		}
		switch msg.String() {
		case "enter":
			if r, ok := m.view.Table.CursorRow(); ok {
				m.view.ShowDetail(Profile(r))
			}
			return m, nil
		case "S":
			if r, ok := m.view.Table.CursorRow(); ok {
				return m, m.toggleStatus(r)
			}
			return m, nil
		case "D":
			m.bulkDelete()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *UsersModel) edit(r table.Row) tea.Cmd {
	id := common.Str(r, "id")
	fields := []common.FormField{
		{Key: "name", Label: "Name", Value: common.Str(r, "name")},
		{Key: "email", Label: "Email", Value: common.Str(r, "email")},
		{Key: "phone", Label: "Phone", Value: common.Str(r, "phone")},
		{Key: "company", Label: "Company", Value: common.Str(r, "company")},
		{Key: "role", Label: "Role", Value: common.Str(r, "role")},
		{Key: "address", Label: "Address", Value: common.Str(r, "address")},
	}
	uc, view := m.client, m.view
	return m.view.OpenForm("Edit user", fields, func(v map[string]string) tea.Cmd {
		if v["name"] == "" || v["email"] == "" {
			return func() tea.Msg {
				return common.MutationDoneMsg{Resource: Resource, Err: errors.New("name and email are required")}
			}
		}
		opts := client.UpdateUserOpts{
			Name:    v["name"],
			Email:   v["email"],
			Phone:   v["phone"],
			Company: v["company"],
			Role:    v["role"],
			Address: v["address"],
		}
		return view.Mutate("Updated "+opts.Name, func(ctx context.Context) error {
			_, err := uc.UpdateUser(ctx, id, opts)
			return err
		})
	})
}

// NextStatus is the account status the toggle sends for a user shown with
// cur. Display labels such as "Active Host" count as active.
func NextStatus(cur string) string {
	if word, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(cur)), " "); word == client.StatusActive {
		return client.StatusInactive
	}
	return client.StatusActive
}

func (m UsersModel) toggleStatus(r table.Row) tea.Cmd {
	id, next := common.Str(r, "id"), NextStatus(common.Str(r, "status"))
	return m.view.Mutate(fmt.Sprintf("%s is now %s", common.Str(r, "name"), next), func(ctx context.Context) error {
		_, err := m.client.SetUserStatus(ctx, id, next)
		return err
	})
}

func (m *UsersModel) bulkDelete() {
	sel := m.view.Table.Selected()
	if len(sel) == 0 {
		m.view.Status.SetMessage("Select users with space first")
		return
	}
	ids := common.IDs(sel)
	uc, view := m.client, m.view
	m.view.Ask(fmt.Sprintf("Delete %d users?", len(ids)), func() tea.Cmd {
		return view.Mutate(fmt.Sprintf("Deleted %d users", len(ids)), func(ctx context.Context) error {
			return uc.BulkDeleteUsers(ctx, ids)
		})
	})
}

// Profile builds the detail page of a user row.
func Profile(r table.Row) common.DetailModel {
	d := common.NewDetail(common.Str(r, "name"), []common.Field{
		{Label: "Email", Value: common.Str(r, "email")},
		{Label: "Phone", Value: common.Str(r, "phone")},
		{Label: "Company", Value: common.Str(r, "company")},
		{Label: "Role", Value: common.Str(r, "role")},
		{Label: "Status", Value: common.Str(r, "status")},
		{Label: "Member since", Value: common.Str(r, "createdAt")},
	})
	d.AddSection("Address", []common.Field{
		{Label: "Street", Value: common.Str(r, "address")},
		{Label: "City", Value: common.Str(r, "city")},
		{Label: "State", Value: common.Str(r, "state")},
		{Label: "Country", Value: common.Str(r, "country")},
		{Label: "Zip code", Value: common.Str(r, "zipCode")},
	})
	return d
}

// View renders the screen.
func (m UsersModel) View() string { return m.view.View() }

var _ tea.Model = (*UsersModel)(nil)
