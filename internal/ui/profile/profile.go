package profile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"suptui/internal/cache"
	"suptui/internal/client"
	"suptui/internal/table"
	"suptui/internal/ui/common"
	"suptui/internal/ui/uiconst"
)

// Resource is the cache key of the business profile.
const Resource = "business-profile"

// Row sections, also used as status tabs.
const (
	sectionBusiness = "Business"
	sectionPolicies = "Policies"
	sectionPayment  = "Payment"
	sectionSocial   = "Social"
)

// field maps one editable profile value onto a table row.
type field struct {
	key     string
	label   string
	section string
	get     func(p client.BusinessProfile) string
	set     func(p *client.BusinessProfile, v string) error
}

func textField(key, label, section string, ptr func(p *client.BusinessProfile) *string) field {
	return field{
		key: key, label: label, section: section,
		get: func(p client.BusinessProfile) string { return *ptr(&p) },
		set: func(p *client.BusinessProfile, v string) error {
			*ptr(p) = v
			return nil
		},
	}
}

var fields = []field{
	textField("repeat_rate", "Repeat rate", sectionBusiness, func(p *client.BusinessProfile) *string { return &p.RepeatRate }),
	{
		key: "minimum_order_value_aed", label: "Minimum order (AED)", section: sectionBusiness,
		get: func(p client.BusinessProfile) string {
			if p.MinimumOrderValueAED == 0 {
				return ""
			}
			return strconv.FormatFloat(p.MinimumOrderValueAED, 'f', -1, 64)
		},
		set: func(p *client.BusinessProfile, v string) error {
			if v == "" {
				p.MinimumOrderValueAED = 0
				return nil
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f < 0 {
				return errors.New("minimum order must be a non-negative number")
			}
			p.MinimumOrderValueAED = f
			return nil
		},
	},
	{
		key: "minimum_lead_time_days", label: "Minimum lead time (days)", section: sectionBusiness,
		get: func(p client.BusinessProfile) string {
			if p.MinimumLeadTimeDays == 0 {
				return ""
			}
			return strconv.Itoa(p.MinimumLeadTimeDays)
		},
		set: func(p *client.BusinessProfile, v string) error {
			if v == "" {
				p.MinimumLeadTimeDays = 0
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return errors.New("lead time must be a whole number of days")
			}
			p.MinimumLeadTimeDays = n
			return nil
		},
	},
	textField("setup_teardown_time", "Setup / teardown time", sectionBusiness, func(p *client.BusinessProfile) *string { return &p.SetupTeardownTime }),
	textField("licenses_and_certifications", "Licenses & certifications", sectionBusiness, func(p *client.BusinessProfile) *string { return &p.LicensesAndCertifications }),
	textField("any_other_information", "Other information", sectionBusiness, func(p *client.BusinessProfile) *string { return &p.AnyOtherInformation }),
	textField("cancellation_policy", "Cancellation policy", sectionPolicies, func(p *client.BusinessProfile) *string { return &p.CancellationPolicy }),
	textField("deposit_requirements", "Deposit requirements", sectionPolicies, func(p *client.BusinessProfile) *string { return &p.DepositRequirements }),
	textField("backup_emergency_options", "Backup / emergency options", sectionPolicies, func(p *client.BusinessProfile) *string { return &p.BackupEmergencyOptions }),
	textField("bank_details", "Bank details", sectionPayment, func(p *client.BusinessProfile) *string { return &p.BankDetails }),
	textField("instagram", "Instagram", sectionSocial, func(p *client.BusinessProfile) *string { return &p.SocialMediaProfiles.Instagram }),
	textField("facebook", "Facebook", sectionSocial, func(p *client.BusinessProfile) *string { return &p.SocialMediaProfiles.Facebook }),
	textField("twitter", "Twitter", sectionSocial, func(p *client.BusinessProfile) *string { return &p.SocialMediaProfiles.Twitter }),
	textField("linkedin", "LinkedIn", sectionSocial, func(p *client.BusinessProfile) *string { return &p.SocialMediaProfiles.LinkedIn }),
	textField("youtube", "YouTube", sectionSocial, func(p *client.BusinessProfile) *string { return &p.SocialMediaProfiles.YouTube }),
	textField("tiktok", "TikTok", sectionSocial, func(p *client.BusinessProfile) *string { return &p.SocialMediaProfiles.TikTok }),
}

func lookup(key string) (field, bool) {
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

// Config returns the table configuration of the business profile screen.
func Config() table.Config {
	return table.Config{
		Title: "Business Profile",
		Columns: []table.Column{
			{Key: "field", Label: "Field", Sortable: true, Width: uiconst.ColWidthName},
			{Key: "value", Label: "Value", Width: uiconst.ColWidthPrices},
			{Key: "section", Label: "Section", Sortable: true, Width: uiconst.ColWidthCompany},
		},
		Tabs: []table.StatusTab{
			{Label: "All", Value: table.AllValue},
			{Label: sectionBusiness, Value: sectionBusiness},
			{Label: sectionPolicies, Value: sectionPolicies},
			{Label: sectionPayment, Value: sectionPayment},
			{Label: sectionSocial, Value: sectionSocial, Color: table.ToneInfo},
		},
		StatusField:  "section",
		SearchFields: []string{"field", "value"},
	}
}

// Rows lays the profile out one field per row, in display order.
func Rows(p client.BusinessProfile) []table.Row {
	rows := make([]table.Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, table.Row{
			"id":      f.key,
			"field":   f.label,
			"value":   f.get(p),
			"section": f.section,
		})
	}
	return rows
}

// Apply writes values, keyed by field id, onto p. Unknown keys are ignored.
func Apply(p client.BusinessProfile, values map[string]string) (client.BusinessProfile, error) {
	var errs []error
	for _, f := range fields {
		v, ok := values[f.key]
		if !ok {
			continue
		}
		if err := f.set(&p, strings.TrimSpace(v)); err != nil {
			errs = append(errs, err)
		}
	}
	return p, errors.Join(errs...)
}

// FromRows rebuilds the profile from the rows of the table.
func FromRows(rows []table.Row) (client.BusinessProfile, error) {
	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[common.Str(r, "id")] = common.Str(r, "value")
	}
	return Apply(client.BusinessProfile{}, values)
}

// Fetch returns the loader of the business profile.
func Fetch(pc client.ProfileClient) cache.FetchFunc {
	return func(ctx context.Context) ([]table.Row, error) {
		p, err := pc.GetBusinessProfile(ctx)
		if err != nil {
			return nil, err
		}
		return Rows(p), nil
	}
}

// ProfileModel shows and edits the supplier business profile.
type ProfileModel struct {
	client client.ProfileClient
	view   common.ResourceView
}

// NewProfileModel creates the business profile screen.
func NewProfileModel(pc client.ProfileClient, env common.Env) ProfileModel {
	return ProfileModel{client: pc, view: common.NewResourceView(env, Resource, Config(), Fetch(pc))}
}

func (m ProfileModel) Init() tea.Cmd { return m.view.Init() }

func (m ProfileModel) CapturesInput() bool { return m.view.CapturesInput() }

func (m ProfileModel) Overlay() bool { return m.view.Overlay() }

func (m ProfileModel) Table() common.DataTableModel { return m.view.Table }

// Update handles messages for the model.
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.RowEditMsg:
		f, ok := lookup(common.Str(msg.Row, "id"))
		if !ok {
			return m, nil
		}
		return m, m.edit("Edit "+f.label, []field{f})
	case common.RowActionMsg:
		f, ok := lookup(common.Str(msg.Row, "id"))
		if !ok {
			return m, nil
		}
		if common.Str(msg.Row, "value") == "" {
			m.view.Status.SetMessage(f.label + " is already empty")
			return m, nil
		}
		save := m.saver("Cleared " + f.label)
		m.view.Ask(fmt.Sprintf("Clear %s?", f.label), func() tea.Cmd {
			return save(map[string]string{f.key: ""})
		})
		return m, nil
	case tea.KeyMsg:
		if m.view.Overlay() || m.view.CapturesInput() || m.view.Loading() {
			break
		}
		switch msg.String() {
		case "enter":
			m.view.ShowDetail(Detail(m.view.Table.Engine().Data()))
			return m, nil
		case "e":
			return m, m.edit("Edit business profile", fields)
		}
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// saver returns the submit function of a profile form. Values are applied
// on top of the profile currently shown and the whole profile is written.
func (m ProfileModel) saver(done string) func(map[string]string) tea.Cmd {
	current := m.view.Table.Engine().Data()
	pc, view := m.client, m.view
	return func(v map[string]string) tea.Cmd {
		base, err := FromRows(current)
		if err == nil {
			base, err = Apply(base, v)
		}
		if err != nil {
			return func() tea.Msg { return common.MutationDoneMsg{Resource: Resource, Err: err} }
		}
		return view.Mutate(done, func(ctx context.Context) error {
			return pc.UpdateBusinessProfile(ctx, base)
		})
	}
}

func (m *ProfileModel) edit(title string, fs []field) tea.Cmd {
	values := map[string]string{}
	for _, r := range m.view.Table.Engine().Data() {
		values[common.Str(r, "id")] = common.Str(r, "value")
	}
	form := make([]common.FormField, 0, len(fs))
	for _, f := range fs {
		form = append(form, common.FormField{Key: f.key, Label: f.label, Value: values[f.key]})
	}
	return m.view.OpenForm(title, form, m.saver("Saved business profile"))
}

// Detail renders the profile grouped by section.
func Detail(rows []table.Row) common.DetailModel {
	d := common.NewDetail("Business Profile", nil)
	for _, r := range rows {
		d.AddSection(common.Str(r, "section"), []common.Field{{Label: common.Str(r, "field"), Value: common.Str(r, "value")}})
	}
	return d
}

func (m ProfileModel) View() string { return m.view.View() }

var _ tea.Model = (*ProfileModel)(nil)
