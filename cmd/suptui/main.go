package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"suptui/internal/cache"
	"suptui/internal/client"
	"suptui/internal/config"
	"suptui/internal/logging"
	"suptui/internal/ui"
	"suptui/internal/ui/common"
)

var (
	configPath string
	apiURL     string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "suptui",
		Short:        "SUPTUI – supplier admin dashboard in the terminal",
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (default $SUPTUI_CONFIG or ~/.config/suptui/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Supplier API base URL, overrides the config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newLoginCmd(), newLogoutCmd(), newPasswordCmd(true), newPasswordCmd(false), newExportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every command builds before talking to the API.
type env struct {
	cfg    config.Config
	log    *zap.Logger
	tokens *client.TokenCache
}

func setup() (env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return env{}, err
	}
	if apiURL != "" {
		if err := cfg.SetAPIURL(apiURL); err != nil {
			return env{}, err
		}
	}
	logger, err := logging.New(cfg.Logging, debug)
	if err != nil {
		return env{}, err
	}
	return env{cfg: cfg, log: logger, tokens: client.NewTokenCache()}, nil
}

// session returns a service client carrying the cached token.
func (e env) session() (*client.ServiceClients, error) {
	token, ok := e.tokens.Load(e.cfg.APIURL)
	if !ok {
		return nil, fmt.Errorf("not logged in to %s, run `suptui login` first", e.cfg.APIURL)
	}
	return client.NewServiceClients(client.Endpoint{BaseURL: e.cfg.APIURL, Token: token, Timeout: e.cfg.Timeout}), nil
}

func run(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	sc, err := e.session()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.Timeout)
	defer cancel()
	me, err := sc.Auth.Me(ctx)
	if errors.Is(err, client.ErrSessionExpired) {
		e.tokens.Clear(e.cfg.APIURL)
		return fmt.Errorf("%w: run `suptui login`", err)
	}
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", e.cfg.APIURL, err)
	}
	e.log.Info("session ready", zap.String("api", e.cfg.APIURL), zap.String("user", me.Email))

	c := cache.NewCache(e.cfg.CacheTTL)
	prefetch(cmd.Context(), c, sc, e.log)

	clients := ui.Clients{
		Users:     sc.Users,
		Vendors:   sc.Vendors,
		Bookings:  sc.Bookings,
		Catalog:   sc.Catalog,
		Profile:   sc.Profile,
		Analytics: sc.Analytics,
	}
	model := ui.NewModel(clients, ui.Options{
		Env: common.Env{
			Cache:              c,
			Log:                e.log,
			Table:              common.DataTableOptions{ExportDir: e.cfg.ExportDir, Printer: common.ClipboardPrinter{}},
			RowsPerPage:        e.cfg.RowsPerPage,
			RowsPerPageOptions: e.cfg.RowsPerPageOptions,
			Timeout:            e.cfg.Timeout,
		},
		Account:          me.Name,
		OnSessionExpired: func() { e.tokens.Clear(e.cfg.APIURL) },
	})

	// Start the Bubble Tea TUI
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// prefetch warms the cache with the main datasets in parallel. Failures are
// only logged: each screen retries on open.
func prefetch(ctx context.Context, c *cache.Cache, sc *client.ServiceClients, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range []string{"users", "vendors", "bookings"} {
		ds, _ := lookupDataset(name)
		g.Go(func() error {
			if _, err := c.Fetch(ctx, ds.resource, ds.fetch(sc)); err != nil {
				log.Warn("prefetch failed", zap.String("resource", ds.resource), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
