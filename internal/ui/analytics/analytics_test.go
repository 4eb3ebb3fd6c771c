package analytics

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"suptui/internal/client"
	"suptui/internal/ui/common"
	"suptui/internal/ui/uitest"
)

type mockAnalyticsClient struct {
	summary client.Analytics
	ranges  []client.DateRange
}

func (m *mockAnalyticsClient) DashboardAnalytics(ctx context.Context, r client.DateRange) (client.Analytics, error) {
	m.ranges = append(m.ranges, r)
	return m.summary, nil
}

func sample() client.Analytics {
	return client.Analytics{
		TotalUsers:    120,
		TotalVendors:  14,
		TotalEvents:   33,
		TotalBookings: 80,
		TotalRevenue:  12500.5,
		RevenueGrowth: 12.5,
		UserGrowth:    -3,
		MonthlyData:   []client.MonthlyStats{{Month: "Jan", Users: 10, Events: 3, Bookings: 7, Revenue: 900}},
		TopEvents:     []client.TopEvent{{ID: "e1", Title: "Spring Gala", Bookings: 20, Revenue: 4000}},
		TopVendors:    []client.TopVendor{{ID: "v1", Name: "Bloom & Co", Events: 6, Revenue: 2500}},
	}
}

func newLoaded(t *testing.T) (AnalyticsModel, *mockAnalyticsClient) {
	t.Helper()
	mc := &mockAnalyticsClient{summary: sample()}
	m := NewAnalyticsModel(mc, common.Env{})
	for _, msg := range uitest.Collect(m.Init()) {
		m = step(m, msg)
	}
	return m, mc
}

func step(m AnalyticsModel, msg tea.Msg) AnalyticsModel {
	next, _ := m.Update(msg)
	return next.(AnalyticsModel)
}

func drive(m AnalyticsModel, keys ...string) AnalyticsModel {
	for _, k := range keys {
		next, cmd := m.Update(uitest.Key(k))
		m = next.(AnalyticsModel)
		for _, msg := range uitest.Collect(cmd) {
			m = step(m, msg)
		}
	}
	return m
}

func TestRowsBySection(t *testing.T) {
	rows := Rows(sample())
	require.Len(t, rows, 8)
	require.Equal(t, "-3.0%", rows[0]["growth"])
	require.Equal(t, "$12500.50", rows[4]["revenue"])
	require.Equal(t, "Spring Gala", rows[6]["name"])
	require.Equal(t, sectionTopVendors, rows[7]["section"])
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	require.Equal(t, client.DateRange{}, Periods[0].Range(now))

	r := Periods[2].Range(now)
	require.Equal(t, now, r.End)
	require.Equal(t, time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC), r.Start)
}

func TestTabsCountSections(t *testing.T) {
	m, _ := newLoaded(t)
	var counts []int
	for _, tab := range m.Table().Engine().Tabs() {
		counts = append(counts, tab.Count)
	}
	require.Equal(t, []int{8, 5, 1, 1, 1}, counts)
}

func TestCyclePeriodRefetches(t *testing.T) {
	m, mc := newLoaded(t)
	require.Len(t, mc.ranges, 1)
	require.True(t, mc.ranges[0].Start.IsZero(), "all time sends no bounds")

	m = drive(m, "P")
	require.Equal(t, "Last 7 days", m.Period().Label)
	require.Len(t, mc.ranges, 2)
	require.Equal(t, 7*24*time.Hour, mc.ranges[1].End.Sub(mc.ranges[1].Start))

	for range Periods[1:] {
		m = drive(m, "P")
	}
	require.Equal(t, "All time", m.Period().Label, "the presets wrap around")
}

func TestHeaderAndReadOnly(t *testing.T) {
	m, _ := newLoaded(t)
	v := m.View()
	require.Contains(t, v, "Period: All time")
	require.Contains(t, v, "$12500.50")
	require.Contains(t, v, "+12.5%")

	m = drive(m, "m", "e")
	require.Contains(t, m.View(), "Analytics are read only")

	m = drive(m, "enter")
	require.True(t, m.Overlay())
	require.Contains(t, Detail(Rows(sample())[5]).Markdown(), "- **Users**: 10")
}
