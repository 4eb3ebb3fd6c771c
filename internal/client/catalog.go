package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gophercloud/gophercloud/v2"
)

// PriceTypeLabels names the price type codes of a ServicePrice.
var PriceTypeLabels = map[int]string{
	1: "Per Hour",
	2: "Per Day",
	3: "Fixed Price",
	4: "Per Person",
}

// ServiceTypeLabels names the service ids of a SupplierService.
var ServiceTypeLabels = map[string]string{
	"1": "Photography",
	"2": "Videography",
	"3": "Catering",
	"4": "Decoration",
	"5": "Music & Entertainment",
	"6": "Transportation",
	"7": "Venue",
	"8": "Flowers",
}

// CatalogClient defines the supplier catalog operations: the event types a
// supplier serves and the services it offers.
type CatalogClient interface {
	ListEventTypes(ctx context.Context) ([]EventType, error)
	ListSupplierEventTypes(ctx context.Context) ([]SupplierEventType, error)
	UpdateSupplierEventTypes(ctx context.Context, types []SupplierEventType) ([]SupplierEventType, error)
	DeleteSupplierEventTypes(ctx context.Context) error
	ListSupplierServices(ctx context.Context) ([]SupplierService, error)
	UpdateSupplierServices(ctx context.Context, services []SupplierService) ([]SupplierService, error)
	DeleteSupplierService(ctx context.Context, id string) error
	DeleteSupplierServices(ctx context.Context) error
}

type catalogClient struct {
	client *gophercloud.ServiceClient
}

// NewCatalogClient returns a CatalogClient backed by sc.
func NewCatalogClient(sc *gophercloud.ServiceClient) CatalogClient {
	return &catalogClient{client: sc}
}

var _ CatalogClient = (*catalogClient)(nil)

func (c *catalogClient) ListEventTypes(ctx context.Context) ([]EventType, error) {
	var body struct {
		Data struct {
			EventTypes []EventType `json:"event_types"`
		} `json:"data"`
	}
	if err := getJSON(ctx, c.client, c.client.ServiceURL("supplier", "event-types"), nil, &body); err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	return body.Data.EventTypes, nil
}

type supplierEventTypes struct {
	EventTypes []SupplierEventType `json:"event_types"`
}

func (c *catalogClient) ListSupplierEventTypes(ctx context.Context) ([]SupplierEventType, error) {
	var body supplierEventTypes
	if err := getJSON(ctx, c.client, c.client.ServiceURL("supplier", "supplier-event-types"), nil, &body); err != nil {
		return nil, fmt.Errorf("list supplier event types: %w", err)
	}
	return body.EventTypes, nil
}

// UpdateSupplierEventTypes replaces the whole set of supplier event types.
func (c *catalogClient) UpdateSupplierEventTypes(ctx context.Context, types []SupplierEventType) ([]SupplierEventType, error) {
	var out supplierEventTypes
	in := supplierEventTypes{EventTypes: types}
	if err := putJSON(ctx, c.client, c.client.ServiceURL("supplier", "supplier-event-types"), in, &out); err != nil {
		return nil, fmt.Errorf("update supplier event types: %w", err)
	}
	return out.EventTypes, nil
}

func (c *catalogClient) DeleteSupplierEventTypes(ctx context.Context) error {
	if err := deleteResource(ctx, c.client, c.client.ServiceURL("supplier", "supplier-event-types")); err != nil {
		return fmt.Errorf("delete supplier event types: %w", err)
	}
	return nil
}

func (c *catalogClient) ListSupplierServices(ctx context.Context) ([]SupplierService, error) {
	var body struct {
		Data []SupplierService `json:"data"`
	}
	q := url.Values{"embed": {"prices"}}
	if err := getJSON(ctx, c.client, c.client.ServiceURL("supplier", "supplier-services"), q, &body); err != nil {
		return nil, fmt.Errorf("list supplier services: %w", err)
	}
	return body.Data, nil
}

// UpdateSupplierServices sends the full list of services; the API replaces
// what it has with it.
func (c *catalogClient) UpdateSupplierServices(ctx context.Context, services []SupplierService) ([]SupplierService, error) {
	var out struct {
		Data []SupplierService `json:"data"`
	}
	in := map[string][]SupplierService{"services": services}
	if err := putJSON(ctx, c.client, c.client.ServiceURL("supplier", "supplier-services"), in, &out); err != nil {
		return nil, fmt.Errorf("update supplier services: %w", err)
	}
	return out.Data, nil
}

func (c *catalogClient) DeleteSupplierService(ctx context.Context, id string) error {
	if err := deleteResource(ctx, c.client, c.client.ServiceURL("supplier", "supplier-services", id)); err != nil {
		return fmt.Errorf("delete supplier service %s: %w", id, err)
	}
	return nil
}

func (c *catalogClient) DeleteSupplierServices(ctx context.Context) error {
	if err := deleteResource(ctx, c.client, c.client.ServiceURL("supplier", "supplier-services")); err != nil {
		return fmt.Errorf("delete supplier services: %w", err)
	}
	return nil
}
