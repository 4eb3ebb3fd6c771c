package client

// ServiceClients bundles every API client over one ServiceClient, so a
// Login through Auth authorises the others too.
type ServiceClients struct {
	Auth      AuthClient
	Users     UsersClient
	Vendors   VendorsClient
	Bookings  BookingsClient
	Catalog   CatalogClient
	Profile   ProfileClient
	Analytics AnalyticsClient
}

// NewServiceClients creates all clients for ep.
func NewServiceClients(ep Endpoint) *ServiceClients {
	sc := NewServiceClient(ep)
	return &ServiceClients{
		Auth:      NewAuthClient(sc),
		Users:     NewUsersClient(sc),
		Vendors:   NewVendorsClient(sc),
		Bookings:  NewBookingsClient(sc),
		Catalog:   NewCatalogClient(sc),
		Profile:   NewProfileClient(sc),
		Analytics: NewAnalyticsClient(sc),
	}
}
