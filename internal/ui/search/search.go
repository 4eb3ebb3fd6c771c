package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"suptui/internal/cache"
	"suptui/internal/table"
)

// debounce is how long typing must pause before a search runs.
const debounce = 300 * time.Millisecond

// Source is one dataset the global search looks into.
type Source struct {
	Category string // section title, e.g. "Users"
	Resource string // cache key
	Config   table.Config
	Fetch    cache.FetchFunc
	// Name and Extra pick the text shown for a hit.
	Name  func(table.Row) string
	Extra func(table.Row) string
}

// SearchResult represents a single search result.
type SearchResult struct {
	Category string
	ID       string
	Name     string
	Extra    string
}

// Messages used by the SearchModel.
type searchResultsMsg struct {
	query   string
	results []SearchResult
	failed  []string
}

type searchQueryMsg struct {
	query string
}

type SearchDoneMsg struct{}

type SearchSelectedMsg struct {
	Result SearchResult
}

// SearchModel holds the state for the global search UI.
type SearchModel struct {
	input   textinput.Model
	results []SearchResult
	failed  []string
	cursor  int
	loading bool
	spinner spinner.Model
	query   string // last executed query
	width   int
	height  int
	sources []Source
	cache   *cache.Cache
	log     *zap.Logger
}

// NewSearchModel creates a new SearchModel. c and log may be nil.
func NewSearchModel(sources []Source, c *cache.Cache, log *zap.Logger, w, h int) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "search users, vendors, bookings"
	ti.Focus()
	sp := spinner.New()
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	if log == nil {
		log = zap.NewNop()
	}
	return SearchModel{
		input:   ti,
		spinner: sp,
		width:   w,
		height:  h,
		sources: sources,
		cache:   c,
		log:     log,
	}
}

// Init focuses the text input and starts the spinner.
func (m SearchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// CapturesInput is always true: every key edits the query.
func (m SearchModel) CapturesInput() bool { return true }

// Results returns the hits of the last search.
func (m SearchModel) Results() []SearchResult { return m.results }

// Update handles messages for the search model.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return SearchDoneMsg{} }
		case "enter":
			if m.cursor >= 0 && m.cursor < len(m.results) {
				res := m.results[m.cursor]
				return m, func() tea.Msg { return SearchSelectedMsg{Result: res} }
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		default:
			oldVal := m.input.Value()
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
			newVal := m.input.Value()
			if newVal != oldVal {
				m.cursor = 0
				m.loading = true
				cmds = append(cmds, tea.Tick(debounce, func(time.Time) tea.Msg {
					return searchQueryMsg{query: newVal}
				}))
			}
			return m, tea.Batch(cmds...)
		}
	case searchQueryMsg:
		// Only fire if the query hasn't changed during debounce.
		if msg.query == m.input.Value() {
			m.query = msg.query
			return m, m.searchCmd(msg.query)
		}
		return m, nil
	case searchResultsMsg:
		if msg.query != m.input.Value() {
			return m, nil
		}
		m.results = msg.results
		m.failed = msg.failed
		m.loading = false
		m.cursor = 0
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SearchModel) rows(ctx context.Context, src Source) ([]table.Row, error) {
	if m.cache == nil {
		return src.Fetch(ctx)
	}
	return m.cache.Fetch(ctx, src.Resource, src.Fetch)
}

// searchCmd searches every source in parallel with the table's own search
// stage. A failing source is reported but does not hide the others.
func (m SearchModel) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(query) == "" {
			return searchResultsMsg{query: query}
		}
		var mu sync.Mutex
		var allResults []SearchResult
		var failed []string
		var g errgroup.Group

		for _, src := range m.sources {
			g.Go(func() error {
				rows, err := m.rows(context.Background(), src)
				if err != nil {
					m.log.Warn("search source failed", zap.String("source", src.Category), zap.Error(err))
					mu.Lock()
					failed = append(failed, src.Category)
					mu.Unlock()
					return nil
				}
				hits := table.Apply(rows, table.Query{
					Search:       query,
					SearchFields: table.SearchFields(src.Config.Columns, src.Config.SearchFields),
				})
				mu.Lock()
				defer mu.Unlock()
				for _, r := range hits {
					res := SearchResult{Category: src.Category, ID: table.FormatValue(r[table.DefaultIDField])}
					if src.Name != nil {
						res.Name = src.Name(r)
					}
					if src.Extra != nil {
						res.Extra = src.Extra(r)
					}
					allResults = append(allResults, res)
				}
				return nil
			})
		}
		_ = g.Wait()

		sort.Slice(allResults, func(i, j int) bool {
			if allResults[i].Category != allResults[j].Category {
				return allResults[i].Category < allResults[j].Category
			}
			return allResults[i].Name < allResults[j].Name
		})
		sort.Strings(failed)
		return searchResultsMsg{query: query, results: allResults, failed: failed}
	}
}

// View renders the search UI.
func (m SearchModel) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	var b strings.Builder
	b.WriteString(headerStyle.Render("Global Search"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
	case len(m.results) == 0 && strings.TrimSpace(m.query) != "":
		b.WriteString(fmt.Sprintf("No results for '%s'\n", m.query))
	case len(m.results) > 0:
		groups := make(map[string][]SearchResult)
		order := []string{}
		for _, r := range m.results {
			if _, ok := groups[r.Category]; !ok {
				order = append(order, r.Category)
			}
			groups[r.Category] = append(groups[r.Category], r)
		}
		sort.Strings(order)
		idx := 0
		catHeader := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
		for _, cat := range order {
			items := groups[cat]
			b.WriteString(catHeader.Render(fmt.Sprintf("%s (%d)", cat, len(items))))
			b.WriteString("\n")
			for _, res := range items {
				extraStyled := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(res.Extra)
				line := fmt.Sprintf("%s  %s", res.Name, extraStyled)
				if idx == m.cursor {
					line = lipgloss.NewStyle().Background(lipgloss.Color("236")).Render(line)
				}
				b.WriteString(line)
				b.WriteString("\n")
				idx++
			}
			b.WriteString("\n")
		}
	}
	if len(m.failed) > 0 && !m.loading {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#D9534F")).Render("Unavailable: " + strings.Join(m.failed, ", ")))
		b.WriteString("\n")
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("205"))
	return border.Render(b.String())
}

var _ tea.Model = (*SearchModel)(nil)
