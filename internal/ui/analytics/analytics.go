package analytics

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"suptui/internal/cache"
	"suptui/internal/client"
	"suptui/internal/table"
	"suptui/internal/ui/common"
	"suptui/internal/ui/uiconst"
)

// Resource names the analytics dataset. It is never cached since every
// period is a different query.
const Resource = "analytics"

// Row sections, also used as status tabs.
const (
	sectionMetrics    = "Metrics"
	sectionMonthly    = "Monthly"
	sectionTopEvents  = "Top Events"
	sectionTopVendors = "Top Vendors"
)

// Period is a preset reporting window counted back from now.
type Period struct {
	Label string
	Days  int
}

// Periods lists the presets P cycles through. Zero days means all time.
var Periods = []Period{
	{Label: "All time"},
	{Label: "Last 7 days", Days: 7},
	{Label: "Last 30 days", Days: 30},
	{Label: "Last 90 days", Days: 90},
	{Label: "Last year", Days: 365},
}

// Range returns the query window of p ending at now.
func (p Period) Range(now time.Time) client.DateRange {
	if p.Days == 0 {
		return client.DateRange{}
	}
	now = now.UTC()
	return client.DateRange{Start: now.AddDate(0, 0, -p.Days), End: now}
}

// Config returns the table configuration of the analytics screen.
func Config() table.Config {
	return table.Config{
		Title: "Analytics",
		Columns: []table.Column{
			{Key: "name", Label: "Item", Sortable: true, Width: uiconst.ColWidthName},
			{Key: "count", Label: "Count", Sortable: true, Width: uiconst.ColWidthCount},
			{Key: "revenue", Label: "Revenue", Sortable: true, Width: uiconst.ColWidthAmount},
			{Key: "growth", Label: "Growth", Width: uiconst.ColWidthCount},
			{Key: "section", Label: "Section", Sortable: true, Width: uiconst.ColWidthCompany},
		},
		Tabs: []table.StatusTab{
			{Label: "All", Value: table.AllValue},
			{Label: sectionMetrics, Value: sectionMetrics, Color: table.ToneInfo},
			{Label: sectionMonthly, Value: sectionMonthly},
			{Label: sectionTopEvents, Value: sectionTopEvents, Color: table.ToneSuccess},
			{Label: sectionTopVendors, Value: sectionTopVendors, Color: table.ToneSuccess},
		},
		StatusField:  "section",
		SearchFields: []string{"name"},
	}
}

// Money formats an amount the way the dashboard cards do.
func Money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

// Growth formats a percentage change with its sign.
func Growth(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// Rows flattens the summary into table rows, one section after another.
func Rows(a client.Analytics) []table.Row {
	rows := []table.Row{
		{"id": "m-users", "name": "Users", "count": a.TotalUsers, "growth": Growth(a.UserGrowth), "section": sectionMetrics},
		{"id": "m-vendors", "name": "Vendors", "count": a.TotalVendors, "section": sectionMetrics},
		{"id": "m-events", "name": "Events", "count": a.TotalEvents, "growth": Growth(a.EventGrowth), "section": sectionMetrics},
		{"id": "m-bookings", "name": "Bookings", "count": a.TotalBookings, "section": sectionMetrics},
		{"id": "m-revenue", "name": "Revenue", "revenue": Money(a.TotalRevenue), "growth": Growth(a.RevenueGrowth), "section": sectionMetrics},
	}
	for _, s := range a.MonthlyData {
		rows = append(rows, table.Row{
			"id": "month-" + s.Month, "name": s.Month, "count": s.Bookings, "revenue": Money(s.Revenue),
			"users": s.Users, "events": s.Events, "section": sectionMonthly,
		})
	}
	for _, e := range a.TopEvents {
		rows = append(rows, table.Row{
			"id": "event-" + e.ID, "name": e.Title, "count": e.Bookings, "revenue": Money(e.Revenue), "section": sectionTopEvents,
		})
	}
	for _, v := range a.TopVendors {
		rows = append(rows, table.Row{
			"id": "vendor-" + v.ID, "name": v.Name, "count": v.Events, "revenue": Money(v.Revenue), "section": sectionTopVendors,
		})
	}
	return rows
}

// Fetch returns the loader of the summary for p.
func Fetch(ac client.AnalyticsClient, p Period, now func() time.Time) cache.FetchFunc {
	return func(ctx context.Context) ([]table.Row, error) {
		a, err := ac.DashboardAnalytics(ctx, p.Range(now()))
		if err != nil {
			return nil, err
		}
		return Rows(a), nil
	}
}

// AnalyticsModel shows the dashboard summary for a selectable period.
type AnalyticsModel struct {
	client client.AnalyticsClient
	view   common.ResourceView
	period int
	now    func() time.Time
}

// NewAnalyticsModel creates the analytics screen.
func NewAnalyticsModel(ac client.AnalyticsClient, env common.Env) AnalyticsModel {
	env.Cache = nil
	m := AnalyticsModel{client: ac, now: time.Now}
	m.view = common.NewResourceView(env, Resource, Config(), Fetch(ac, Periods[0], m.now))
	return m
}

// Period returns the selected reporting window.
func (m AnalyticsModel) Period() Period { return Periods[m.period] }

func (m AnalyticsModel) Init() tea.Cmd { return m.view.Init() }

func (m AnalyticsModel) CapturesInput() bool { return m.view.CapturesInput() }

func (m AnalyticsModel) Overlay() bool { return m.view.Overlay() }

func (m AnalyticsModel) Table() common.DataTableModel { return m.view.Table }

// Update handles messages for the model.
func (m AnalyticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.RowEditMsg, common.RowActionMsg:
		m.view.Status.SetMessage("Analytics are read only")
		return m, nil
	case tea.KeyMsg:
		if m.view.Overlay() || m.view.CapturesInput() || m.view.Loading() {
			break
		}
		switch msg.String() {
		case "P":
			m.period = (m.period + 1) % len(Periods)
			m.view.SetFetch(Fetch(m.client, m.Period(), m.now))
			m.view.Status.SetMessage("Loading " + strings.ToLower(m.Period().Label) + "...")
			return m, m.view.Reload()
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

// Detail builds the detail page of an analytics row.
func Detail(r table.Row) common.DetailModel {
	return common.NewDetail(common.Str(r, "name"), []common.Field{
		{Label: "Section", Value: common.Str(r, "section")},
		{Label: "Count", Value: common.Str(r, "count")},
		{Label: "Users", Value: common.Str(r, "users")},
		{Label: "Events", Value: common.Str(r, "events")},
		{Label: "Revenue", Value: common.Str(r, "revenue")},
		{Label: "Growth", Value: common.Str(r, "growth")},
	})
}

var cardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

// header renders the metric rows as cards above the table.
func (m AnalyticsModel) header() string {
	var cards []string
	for _, r := range m.view.Table.Engine().Data() {
		if common.Str(r, "section") != sectionMetrics {
			continue
		}
		value := common.Str(r, "count")
		if rev := common.Str(r, "revenue"); rev != "" {
			value = rev
		}
		body := common.MutedStyle.Render(common.Str(r, "name")) + "\n" + lipgloss.NewStyle().Bold(true).Render(value)
		if g := common.Str(r, "growth"); g != "" {
			tone := table.ToneSuccess
			if strings.HasPrefix(g, "-") {
				tone = table.ToneError
			}
			body += " " + common.ToneStyle(tone).Render(g)
		}
		cards = append(cards, cardStyle.Render(body))
	}
	title := common.TitleStyle.Render("Period: "+m.Period().Label) + common.MutedStyle.Render("  (P to change)")
	if len(cards) == 0 {
		return title
	}
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m AnalyticsModel) View() string {
	if m.view.Overlay() || m.view.CapturesInput() || m.view.Loading() {
		return m.view.View()
	}
	return m.header() + "\n" + m.view.View()
}

var _ tea.Model = (*AnalyticsModel)(nil)
