package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"suptui/internal/cache"
	"suptui/internal/client"
	"suptui/internal/table"
)

// Env carries what every resource view needs besides its API client.
type Env struct {
	Cache              *cache.Cache
	Log                *zap.Logger
	Table              DataTableOptions
	RowsPerPage        int
	RowsPerPageOptions []int
	Timeout            time.Duration
}

// logger returns e.Log or a no-op logger.
func (e Env) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e Env) context() (context.Context, context.CancelFunc) {
	if e.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), e.Timeout)
}

// TableConfig fills the paging defaults of cfg from the environment.
func (e Env) TableConfig(cfg table.Config) table.Config {
	if cfg.RowsPerPage == 0 {
		cfg.RowsPerPage = e.RowsPerPage
	}
	if len(cfg.RowsPerPageOptions) == 0 {
		cfg.RowsPerPageOptions = e.RowsPerPageOptions
	}
	return cfg
}

// RowsLoadedMsg delivers the dataset of a resource.
type RowsLoadedMsg struct {
	Resource string
	Rows     []table.Row
	Err      error
}

// MutationDoneMsg reports the outcome of a write against the API.
type MutationDoneMsg struct {
	Resource string
	Message  string
	Err      error
}

// SessionExpiredMsg asks the root model to drop the cached session.
type SessionExpiredMsg struct{}

// LoadRows reads resource through the cache. refresh bypasses it.
func LoadRows(env Env, resource string, refresh bool, fetch cache.FetchFunc) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := env.context()
		defer cancel()
		var rows []table.Row
		var err error
		switch {
		case env.Cache == nil:
			rows, err = fetch(ctx)
		case refresh:
			rows, err = env.Cache.Refresh(ctx, resource, fetch)
		default:
			rows, err = env.Cache.Fetch(ctx, resource, fetch)
		}
		if err != nil {
			env.logger().Warn("load failed", zap.String("resource", resource), zap.Error(err))
		} else {
			env.logger().Debug("loaded", zap.String("resource", resource), zap.Int("rows", len(rows)))
		}
		return RowsLoadedMsg{Resource: resource, Rows: rows, Err: err}
	}
}

// MutationFunc performs one write against the API.
type MutationFunc func(ctx context.Context) error

// Mutate runs fn and invalidates the cached resource when it succeeds.
func Mutate(env Env, resource, done string, fn MutationFunc) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := env.context()
		defer cancel()
		if err := fn(ctx); err != nil {
			env.logger().Warn("mutation failed", zap.String("resource", resource), zap.Error(err))
			return MutationDoneMsg{Resource: resource, Err: err}
		}
		if env.Cache != nil {
			env.Cache.Invalidate(resource)
		}
		env.logger().Info(done, zap.String("resource", resource))
		return MutationDoneMsg{Resource: resource, Message: done}
	}
}

// ErrorCmd turns an expired session into a SessionExpiredMsg for the root model.
func ErrorCmd(err error) tea.Cmd {
	if errors.Is(err, client.ErrSessionExpired) {
		return func() tea.Msg { return SessionExpiredMsg{} }
	}
	return nil
}

// ApplyStatus shows the outcome of a table side effect on bar. It reports
// whether msg was one.
func ApplyStatus(bar *StatusBar, msg tea.Msg) bool {
	switch msg := msg.(type) {
	case ExportedMsg:
		if msg.Err != nil {
			bar.SetError(fmt.Errorf("export failed: %w", msg.Err))
		} else {
			bar.SetMessage("Exported to " + msg.Path)
		}
	case PrintedMsg:
		if msg.Err != nil {
			bar.SetError(fmt.Errorf("print failed: %w", msg.Err))
		} else {
			bar.SetMessage("Copied page to clipboard")
		}
	case SelectionChangedMsg:
		if len(msg.Rows) == 0 {
			if strings.HasSuffix(bar.Message(), " selected") {
				bar.SetMessage("")
			}
		} else {
			bar.SetMessage(fmt.Sprintf("%d selected", len(msg.Rows)))
		}
	default:
		return false
	}
	return true
}

// IDs returns the string ids of rows.
func IDs(rows []table.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.FormatValue(r[table.DefaultIDField]))
	}
	return out
}

// Str returns r[key] formatted as text.
func Str(r table.Row, key string) string { return table.FormatValue(r[key]) }
