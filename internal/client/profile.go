package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gophercloud/gophercloud/v2"
)

// SocialMediaProfiles holds the supplier's social handles or links.
type SocialMediaProfiles struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
}

// BusinessProfile is the supplier's business information.
type BusinessProfile struct {
	RepeatRate                string              `json:"repeat_rate"`
	BackupEmergencyOptions    string              `json:"backup_emergency_options"`
	CancellationPolicy        string              `json:"cancellation_policy"`
	DepositRequirements       string              `json:"deposit_requirements"`
	BankDetails               string              `json:"bank_details"`
	MinimumOrderValueAED      float64             `json:"minimum_order_value_aed"`
	MinimumLeadTimeDays       int                 `json:"minimum_lead_time_days"`
	SocialMediaProfiles       SocialMediaProfiles `json:"social_media_profiles"`
	SetupTeardownTime         string              `json:"setup_teardown_time"`
	AnyOtherInformation       string              `json:"any_other_information"`
	LicensesAndCertifications string              `json:"licenses_and_certifications,omitempty"`
}

// BusinessInfoItem is one stored key of the business profile.
type BusinessInfoItem struct {
	ID         string  `json:"id"`
	SupplierID string  `json:"supplier_id"`
	Key        string  `json:"key"`
	Value      *string `json:"value"`
}

// ProfileFromItems folds the stored key/value items into a BusinessProfile.
// Unknown keys and unparsable numbers are skipped.
func ProfileFromItems(items []BusinessInfoItem) BusinessProfile {
	var p BusinessProfile
	for _, it := range items {
		if it.Value == nil {
			continue
		}
		v := *it.Value
		switch it.Key {
		case "repeat_rate":
			p.RepeatRate = v
		case "backup_emergency_options":
			p.BackupEmergencyOptions = v
		case "cancellation_policy":
			p.CancellationPolicy = v
		case "deposit_requirements":
			p.DepositRequirements = v
		case "bank_details":
			p.BankDetails = v
		case "minimum_order_value_aed":
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				p.MinimumOrderValueAED = f
			}
		case "minimum_lead_time_days":
			if n, err := strconv.Atoi(v); err == nil {
				p.MinimumLeadTimeDays = n
			}
		case "social_media_profiles":
			_ = json.Unmarshal([]byte(v), &p.SocialMediaProfiles)
		case "setup_teardown_time":
			p.SetupTeardownTime = v
		case "any_other_information":
			p.AnyOtherInformation = v
		case "licenses_and_certifications":
			p.LicensesAndCertifications = v
		}
	}
	return p
}

// ProfileClient reads and writes the supplier business profile.
type ProfileClient interface {
	GetBusinessProfile(ctx context.Context) (BusinessProfile, error)
	UpdateBusinessProfile(ctx context.Context, p BusinessProfile) error
}

type profileClient struct {
	client *gophercloud.ServiceClient
}

// NewProfileClient returns a ProfileClient backed by sc.
func NewProfileClient(sc *gophercloud.ServiceClient) ProfileClient {
	return &profileClient{client: sc}
}

var _ ProfileClient = (*profileClient)(nil)

type businessInfoResponse struct {
	Data struct {
		BusinessInfo []BusinessInfoItem `json:"business_info"`
	} `json:"data"`
}

func (c *profileClient) GetBusinessProfile(ctx context.Context) (BusinessProfile, error) {
	var body businessInfoResponse
	if err := getJSON(ctx, c.client, c.client.ServiceURL("supplier", "profile", "get-business-info"), nil, &body); err != nil {
		return BusinessProfile{}, fmt.Errorf("get business profile: %w", err)
	}
	return ProfileFromItems(body.Data.BusinessInfo), nil
}

func (c *profileClient) UpdateBusinessProfile(ctx context.Context, p BusinessProfile) error {
	if err := postJSON(ctx, c.client, c.client.ServiceURL("supplier", "profile", "update-business-info"), p, nil); err != nil {
		return fmt.Errorf("update business profile: %w", err)
	}
	return nil
}
