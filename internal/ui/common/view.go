package common

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"suptui/internal/cache"
	"suptui/internal/table"
)

// ResourceView is the shared body of the resource screens: a DataTableModel
// fed through the cache plus the form, confirm and detail overlays.
type ResourceView struct {
	env      Env
	resource string
	fetch    cache.FetchFunc

	Table   DataTableModel
	Status  StatusBar
	spinner spinner.Model
	loading bool

	form      *FormModel
	onSubmit  func(map[string]string) tea.Cmd
	confirm   *ConfirmModel
	onConfirm func() tea.Cmd
	detail    *DetailModel
}

// NewResourceView creates a view over resource. fetch loads the full dataset.
func NewResourceView(env Env, resource string, cfg table.Config, fetch cache.FetchFunc) ResourceView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return ResourceView{
		env:      env,
		resource: resource,
		fetch:    fetch,
		Table:    NewDataTable(env.TableConfig(cfg), nil, env.Table),
		Status:   NewStatusBar(""),
		spinner:  s,
		loading:  true,
	}
}

// Resource returns the cache key of the view.
func (v ResourceView) Resource() string { return v.resource }

// Env returns the environment the view was built with.
func (v ResourceView) Env() Env { return v.env }

// Loading reports whether the first load is still in flight.
func (v ResourceView) Loading() bool { return v.loading }

// Init starts the spinner and the first load.
func (v ResourceView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, LoadRows(v.env, v.resource, false, v.fetch))
}

// SetFetch swaps the loader used by the next Reload.
func (v *ResourceView) SetFetch(fetch cache.FetchFunc) { v.fetch = fetch }

// Reload fetches the dataset again, bypassing the cache.
func (v *ResourceView) Reload() tea.Cmd {
	return LoadRows(v.env, v.resource, true, v.fetch)
}

// OpenForm shows a form. submit runs once the last field is confirmed and
// must return the mutation command.
func (v *ResourceView) OpenForm(title string, fields []FormField, submit func(map[string]string) tea.Cmd) tea.Cmd {
	f := NewForm(title, fields)
	v.form = &f
	v.onSubmit = submit
	return f.Init()
}

// Ask shows a yes/no question. fn runs only when confirmed.
func (v *ResourceView) Ask(question string, fn func() tea.Cmd) {
	c := NewConfirm(question)
	v.confirm = &c
	v.onConfirm = fn
}

// ShowDetail opens a read-only detail overlay.
func (v *ResourceView) ShowDetail(d DetailModel) { v.detail = &d }

// Mutate runs fn against the API and reports done on success.
func (v ResourceView) Mutate(done string, fn MutationFunc) tea.Cmd {
	return Mutate(v.env, v.resource, done, fn)
}

// CapturesInput reports whether keys must reach this view unfiltered.
func (v ResourceView) CapturesInput() bool {
	return v.form != nil || v.confirm != nil || v.Table.Searching()
}

// Overlay reports whether a form, confirm, detail or row menu is open. esc
// belongs to the view while it is.
func (v ResourceView) Overlay() bool {
	_, menu := v.Table.Engine().MenuRow()
	return v.form != nil || v.confirm != nil || v.detail != nil || menu
}

// Update handles everything that is not resource specific.
func (v ResourceView) Update(msg tea.Msg) (ResourceView, tea.Cmd) {
	switch msg := msg.(type) {
	case RowsLoadedMsg:
		if msg.Resource != v.resource {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.Status.SetError(msg.Err)
			return v, ErrorCmd(msg.Err)
		}
		return v, v.Table.SetData(msg.Rows)
	case MutationDoneMsg:
		if msg.Resource != v.resource {
			return v, nil
		}
		if msg.Err != nil {
			if v.form != nil {
				v.form.SetError(msg.Err)
			} else {
				v.Status.SetError(msg.Err)
			}
			return v, ErrorCmd(msg.Err)
		}
		v.form, v.onSubmit = nil, nil
		v.Status.SetSuccess(msg.Message)
		return v, tea.Batch(v.Table.ClearSelection(), v.Reload())
	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.WindowSizeMsg:
		next, cmd := v.Table.Update(msg)
		v.Table = next.(DataTableModel)
		return v, cmd
	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	ApplyStatus(&v.Status, msg)
	return v, nil
}

func (v ResourceView) updateKeys(msg tea.KeyMsg) (ResourceView, tea.Cmd) {
	switch {
	case v.form != nil:
		next, cmd := v.form.Update(msg)
		f := next.(FormModel)
		switch {
		case f.Cancelled():
			v.form, v.onSubmit = nil, nil
			return v, nil
		case f.Submitted():
			v.form = &f
			return v, v.onSubmit(f.Values())
		}
		v.form = &f
		return v, cmd
	case v.confirm != nil:
		next, cmd := v.confirm.Update(msg)
		c := next.(ConfirmModel)
		if !c.Done() {
			v.confirm = &c
			return v, cmd
		}
		fn := v.onConfirm
		v.confirm, v.onConfirm = nil, nil
		if c.Confirmed() && fn != nil {
			return v, fn()
		}
		return v, nil
	case v.detail != nil:
		if msg.String() == "esc" || msg.String() == "enter" {
			v.detail = nil
		}
		return v, nil
	case v.loading:
		return v, nil
	}
	if msg.String() == "r" && !v.Table.Searching() {
		v.Status.SetMessage("Refreshing...")
		return v, v.Reload()
	}
	next, cmd := v.Table.Update(msg)
	v.Table = next.(DataTableModel)
	return v, cmd
}

// View renders the active overlay or the table with its status line.
func (v ResourceView) View() string {
	switch {
	case v.form != nil:
		return v.form.View()
	case v.confirm != nil:
		return v.confirm.View()
	case v.detail != nil:
		return v.detail.View() + "\n" + MutedStyle.Render("esc: back")
	case v.loading:
		return fmt.Sprintf("%s Loading %s...", v.spinner.View(), v.resource)
	}
	out := v.Table.View()
	if s := v.Status.View(); s != "" {
		out += "\n" + s
	}
	return out
}
