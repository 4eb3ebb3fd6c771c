package ui

import (
	"fmt"

	"suptui/internal/table"
	"suptui/internal/ui/bookings"
	"suptui/internal/ui/common"
	"suptui/internal/ui/search"
	"suptui/internal/ui/users"
	"suptui/internal/ui/vendors"
)

// Search categories double as sidebar section titles.
const (
	sectionUsers      = "Users"
	sectionVendors    = "Vendors"
	sectionBookings   = "Bookings"
	sectionEventTypes = "Event Types"
	sectionServices   = "Services"
	sectionProfile    = "Business Profile"
	sectionAnalytics  = "Analytics"
	sectionSearch     = "Search"
	sectionExit       = "Exit"
)

// searchSources lists the datasets the global search looks into. Sources
// whose client is missing are skipped.
func searchSources(c Clients) []search.Source {
	var out []search.Source
	if c.Users != nil {
		out = append(out, search.Source{
			Category: sectionUsers,
			Resource: users.Resource,
			Config:   users.Config(),
			Fetch:    users.Fetch(c.Users),
			Name:     func(r table.Row) string { return common.Str(r, "name") },
			Extra:    func(r table.Row) string { return common.Str(r, "email") },
		})
	}
	if c.Vendors != nil {
		out = append(out, search.Source{
			Category: sectionVendors,
			Resource: vendors.Resource,
			Config:   vendors.Config(),
			Fetch:    vendors.Fetch(c.Vendors),
			Name:     func(r table.Row) string { return common.Str(r, "name") },
			Extra: func(r table.Row) string {
				return fmt.Sprintf("%s, %s", common.Str(r, "category"), common.Str(r, "status"))
			},
		})
	}
	if c.Bookings != nil {
		out = append(out, search.Source{
			Category: sectionBookings,
			Resource: bookings.Resource,
			Config:   bookings.Config(),
			Fetch:    bookings.Fetch(c.Bookings),
			Name:     func(r table.Row) string { return common.Str(r, "event") },
			Extra: func(r table.Row) string {
				return fmt.Sprintf("%s on %s (%s)", common.Str(r, "user"), common.Str(r, "date"), common.Str(r, "status"))
			},
		})
	}
	return out
}
