package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gophercloud/gophercloud/v2"
)

// MonthlyStats is one month of the dashboard series.
type MonthlyStats struct {
	Month    string  `json:"month"`
	Users    int     `json:"users"`
	Events   int     `json:"events"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// TopEvent is an event ranked by bookings.
type TopEvent struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// TopVendor is a vendor ranked by revenue.
type TopVendor struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Events  int     `json:"events"`
	Revenue float64 `json:"revenue"`
}

// Analytics is the dashboard summary. Growth figures are percentages
// against the previous period.
type Analytics struct {
	TotalUsers    int            `json:"totalUsers"`
	TotalVendors  int            `json:"totalVendors"`
	TotalEvents   int            `json:"totalEvents"`
	TotalBookings int            `json:"totalBookings"`
	TotalRevenue  float64        `json:"totalRevenue"`
	RevenueGrowth float64        `json:"revenueGrowth"`
	UserGrowth    float64        `json:"userGrowth"`
	EventGrowth   float64        `json:"eventGrowth"`
	MonthlyData   []MonthlyStats `json:"monthlyData"`
	TopEvents     []TopEvent     `json:"topEvents"`
	TopVendors    []TopVendor    `json:"topVendors"`
}

// DateRange bounds an analytics query. A zero range means all time.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// isoMillis matches the timestamps the dashboard sends.
const isoMillis = "2006-01-02T15:04:05.000Z"

func (r DateRange) values() url.Values {
	q := url.Values{}
	if !r.Start.IsZero() {
		q.Set("startDate", r.Start.UTC().Format(isoMillis))
	}
	if !r.End.IsZero() {
		q.Set("endDate", r.End.UTC().Format(isoMillis))
	}
	return q
}

// AnalyticsClient reads the dashboard analytics.
type AnalyticsClient interface {
	DashboardAnalytics(ctx context.Context, r DateRange) (Analytics, error)
}

type analyticsClient struct {
	client *gophercloud.ServiceClient
}

// NewAnalyticsClient returns an AnalyticsClient backed by sc.
func NewAnalyticsClient(sc *gophercloud.ServiceClient) AnalyticsClient {
	return &analyticsClient{client: sc}
}

var _ AnalyticsClient = (*analyticsClient)(nil)

// DashboardAnalytics accepts the summary either bare or wrapped in "data".
func (c *analyticsClient) DashboardAnalytics(ctx context.Context, r DateRange) (Analytics, error) {
	var body struct {
		Analytics
		Data *Analytics `json:"data"`
	}
	if err := getJSON(ctx, c.client, c.client.ServiceURL("api", "analytics", "dashboard"), r.values(), &body); err != nil {
		return Analytics{}, fmt.Errorf("dashboard analytics: %w", err)
	}
	if body.Data != nil {
		return *body.Data, nil
	}
	return body.Analytics, nil
}
