package client

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
)

// VendorsClient defines the vendor management operations of the supplier API.
type VendorsClient interface {
	ListVendors(ctx context.Context, params ListParams) ([]Vendor, error)
	GetVendor(ctx context.Context, id string) (Vendor, error)
	UpdateVendor(ctx context.Context, id string, opts UpdateVendorOpts) (Vendor, error)
	SetVendorStatus(ctx context.Context, id, status string) (Vendor, error)
	DeleteVendor(ctx context.Context, id string) error
	BulkDeleteVendors(ctx context.Context, ids []string) error
}

type vendorsClient struct {
	client *gophercloud.ServiceClient
}

// NewVendorsClient returns a VendorsClient backed by sc.
func NewVendorsClient(sc *gophercloud.ServiceClient) VendorsClient {
	return &vendorsClient{client: sc}
}

var _ VendorsClient = (*vendorsClient)(nil)

func (c *vendorsClient) ListVendors(ctx context.Context, params ListParams) ([]Vendor, error) {
	vendors, err := listAll[Vendor](ctx, c.client, c.client.ServiceURL("api", "vendors"), params)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return vendors, nil
}

func (c *vendorsClient) GetVendor(ctx context.Context, id string) (Vendor, error) {
	var v Vendor
	if err := getJSON(ctx, c.client, c.client.ServiceURL("api", "vendors", id), nil, &v); err != nil {
		return Vendor{}, fmt.Errorf("get vendor %s: %w", id, err)
	}
	return v, nil
}

func (c *vendorsClient) UpdateVendor(ctx context.Context, id string, opts UpdateVendorOpts) (Vendor, error) {
	var v Vendor
	if err := putJSON(ctx, c.client, c.client.ServiceURL("api", "vendors", id), opts, &v); err != nil {
		return Vendor{}, fmt.Errorf("update vendor %s: %w", id, err)
	}
	return v, nil
}

// SetVendorStatus switches a vendor between active and inactive.
func (c *vendorsClient) SetVendorStatus(ctx context.Context, id, status string) (Vendor, error) {
	var v Vendor
	body := map[string]string{"status": status}
	if err := patchJSON(ctx, c.client, c.client.ServiceURL("api", "vendors", id, "status"), body, &v); err != nil {
		return Vendor{}, fmt.Errorf("set vendor %s status: %w", id, err)
	}
	return v, nil
}

func (c *vendorsClient) DeleteVendor(ctx context.Context, id string) error {
	if err := deleteResource(ctx, c.client, c.client.ServiceURL("api", "vendors", id)); err != nil {
		return fmt.Errorf("delete vendor %s: %w", id, err)
	}
	return nil
}

func (c *vendorsClient) BulkDeleteVendors(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string][]string{"ids": ids}
	if err := postJSON(ctx, c.client, c.client.ServiceURL("api", "vendors", "bulk-delete"), body, nil); err != nil {
		return fmt.Errorf("bulk delete vendors: %w", err)
	}
	return nil
}
