package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"suptui/internal/cache"
	"suptui/internal/client"
	"suptui/internal/table"
	"suptui/internal/ui/analytics"
	"suptui/internal/ui/bookings"
	"suptui/internal/ui/catalog"
	"suptui/internal/ui/profile"
	"suptui/internal/ui/users"
	"suptui/internal/ui/vendors"
)

// EnvPassword lets scripts log in without a prompt.
const EnvPassword = "SUPTUI_PASSWORD"

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the supplier API and cache the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			in := bufio.NewReader(cmd.InOrStdin())
			if email == "" {
				if email, err = prompt(cmd.OutOrStdout(), in, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				password = os.Getenv(EnvPassword)
			}
			if password == "" {
				if password, err = promptSecret(cmd.OutOrStdout(), cmd.InOrStdin(), in, "Password: "); err != nil {
					return err
				}
			}

			sc := client.NewServiceClients(client.Endpoint{BaseURL: e.cfg.APIURL, Timeout: e.cfg.Timeout})
			ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.Timeout)
			defer cancel()
			sess, err := sc.Auth.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := e.tokens.Save(e.cfg.APIURL, email, sess.Token, time.Time{}); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			e.log.Info("logged in", zap.String("api", e.cfg.APIURL), zap.String("user", email))
			name := sess.User.Name
			if name == "" {
				name = email
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
			if sess.User.NeedToReset {
				fmt.Fprintln(cmd.OutOrStdout(), "Your password must be reset before the dashboard can be used: run `suptui reset-password`.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (default $"+EnvPassword+" or prompt)")
	return cmd
}

func prompt(w io.Writer, r *bufio.Reader, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a password without echo when in is a terminal. Piped
// input is read line by line through r.
func promptSecret(w io.Writer, in io.Reader, r *bufio.Reader, label string) (string, error) {
	f, ok := in.(interface{ Fd() uintptr })
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return prompt(w, r, label)
	}
	fmt.Fprint(w, label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return string(b), nil
}

// readPasswordChange asks for the current password and the new one twice.
func readPasswordChange(w io.Writer, in io.Reader) (client.PasswordChange, error) {
	r := bufio.NewReader(in)
	var req client.PasswordChange
	for _, p := range []struct {
		label string
		dst   *string
	}{
		{"Current password: ", &req.Current},
		{"New password: ", &req.New},
		{"Confirm new password: ", &req.Confirm},
	} {
		v, err := promptSecret(w, in, r, p.label)
		if err != nil {
			return client.PasswordChange{}, err
		}
		*p.dst = v
	}
	return req, req.Validate()
}

// newPasswordCmd builds reset-password and change-password. A reset ends
// the session, so the cached token is dropped afterwards.
func newPasswordCmd(reset bool) *cobra.Command {
	use, short := "change-password", "Change the account password"
	if reset {
		use, short = "reset-password", "Set a new password when the account requires a reset"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.log.Sync()
			sc, err := e.session()
			if err != nil {
				return err
			}
			req, err := readPasswordChange(cmd.OutOrStdout(), cmd.InOrStdin())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.Timeout)
			defer cancel()
			if !reset {
				if err := sc.Auth.ChangePassword(ctx, req); err != nil {
					return err
				}
				e.log.Info("password changed", zap.String("api", e.cfg.APIURL))
				fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
				return nil
			}
			if err := sc.Auth.ResetPassword(ctx, req); err != nil {
				return err
			}
			e.tokens.Clear(e.cfg.APIURL)
			e.log.Info("password reset", zap.String("api", e.cfg.APIURL))
			fmt.Fprintln(cmd.OutOrStdout(), "Password reset. Run `suptui login` with the new password.")
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the cached token",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.log.Sync()
			defer e.tokens.Clear(e.cfg.APIURL)

			sc, err := e.session()
			if err != nil {
				// Nothing cached, nothing to end.
				return nil
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.Timeout)
			defer cancel()
			if err := sc.Auth.Logout(ctx); err != nil {
				e.log.Warn("logout failed", zap.Error(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// dataset is one exportable table.
type dataset struct {
	resource string
	config   func() table.Config
	fetch    func(*client.ServiceClients) cache.FetchFunc
}

var datasets = map[string]dataset{
	"users": {users.Resource, users.Config, func(sc *client.ServiceClients) cache.FetchFunc {
		return users.Fetch(sc.Users)
	}},
	"vendors": {vendors.Resource, vendors.Config, func(sc *client.ServiceClients) cache.FetchFunc {
		return vendors.Fetch(sc.Vendors)
	}},
	"bookings": {bookings.Resource, bookings.Config, func(sc *client.ServiceClients) cache.FetchFunc {
		return bookings.Fetch(sc.Bookings)
	}},
	"event-types": {catalog.EventTypesResource, catalog.EventTypesConfig, func(sc *client.ServiceClients) cache.FetchFunc {
		return catalog.FetchEventTypes(sc.Catalog)
	}},
	"services": {catalog.ServicesResource, catalog.ServicesConfig, func(sc *client.ServiceClients) cache.FetchFunc {
		return catalog.FetchServices(sc.Catalog)
	}},
	"profile": {profile.Resource, profile.Config, func(sc *client.ServiceClients) cache.FetchFunc {
		return profile.Fetch(sc.Profile)
	}},
	"analytics": {analytics.Resource, analytics.Config, func(sc *client.ServiceClients) cache.FetchFunc {
		return analytics.Fetch(sc.Analytics, analytics.Periods[0], time.Now)
	}},
}

func datasetNames() []string {
	names := make([]string, 0, len(datasets))
	for n := range datasets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupDataset(name string) (dataset, error) {
	ds, ok := datasets[name]
	if !ok {
		return dataset{}, fmt.Errorf("unknown resource %q, want one of %s", name, strings.Join(datasetNames(), ", "))
	}
	return ds, nil
}

// exportOptions select what writeExport prints.
type exportOptions struct {
	format string // csv or text
	search string
	status string
}

// writeExport writes rows as CSV or as a text grid. CSV always holds every
// row, like the export key in the TUI; the text grid honours search and
// status so it matches what a filtered screen shows.
func writeExport(w io.Writer, cfg table.Config, rows []table.Row, opts exportOptions) error {
	t := table.New(cfg, rows)
	switch opts.format {
	case "", "csv":
		return t.Export(w)
	case "text":
		t.SetSearch(opts.search)
		if opts.status != "" {
			tabs := t.Tabs()
			found := false
			for i, tab := range tabs {
				if strings.EqualFold(tab.Value, opts.status) || strings.EqualFold(tab.Label, opts.status) {
					t.SetTab(i)
					found = true
				}
			}
			if !found {
				return fmt.Errorf("unknown status %q", opts.status)
			}
		}
		_, err := io.WriteString(w, table.RenderText(cfg.Columns, t.Filtered()))
		return err
	default:
		return fmt.Errorf("unknown format %q, want csv or text", opts.format)
	}
}

func newExportCmd() *cobra.Command {
	var out string
	var opts exportOptions
	cmd := &cobra.Command{
		Use:       "export <resource>",
		Short:     "Write a dataset as CSV or as a text table",
		Long:      "Write a dataset as CSV or as a text table. Resources: " + strings.Join(datasetNames(), ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: datasetNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := lookupDataset(args[0])
			if err != nil {
				return err
			}
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
			rows, err := ds.fetch(sc)(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := writeExport(w, ds.config(), rows, opts); err != nil {
				return err
			}
			e.log.Info("exported", zap.String("resource", ds.resource), zap.Int("rows", len(rows)), zap.String("format", opts.format))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "csv", "Output format: csv or text")
	cmd.Flags().StringVar(&opts.search, "search", "", "Free-text search (text format only)")
	cmd.Flags().StringVar(&opts.status, "status", "", "Status tab value or label (text format only)")
	return cmd
}
