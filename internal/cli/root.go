// Package cli wires the dashboards into the mfdash command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Dan9191/mfdash/internal/config"
	"github.com/Dan9191/mfdash/internal/integrations/platform"
	"github.com/Dan9191/mfdash/internal/render"
	"github.com/Dan9191/mfdash/internal/service"
	"github.com/Dan9191/mfdash/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries what every command needs once flags are parsed
type app struct {
	log    *logrus.Logger
	cfg    *config.Config
	client *platform.Client

	configPath string
	apiURL     string
	token      string
	userID     string
	logLevel   string
}

// NewRootCmd builds the mfdash command tree
func NewRootCmd(logger *logrus.Logger) *cobra.Command {
	a := &app{log: logger}

	root := &cobra.Command{
		Use:   "mfdash",
		Short: "Microfinance and career counseling dashboards",
		Long: `mfdash loads the admin (microfinance) and user (career counseling)
dashboards from the platform API, shows their statistics and records,
and runs the few actions the dashboards offer.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", os.Getenv("MFDASH_CONFIG"), "TOML config file")
	f.StringVar(&a.apiURL, "api-url", "", "platform API base URL (overrides API_URL)")
	f.StringVar(&a.token, "token", "", "bearer token (overrides API_TOKEN)")
	f.StringVar(&a.userID, "user", "", "user id for the counseling dashboard (overrides USER_ID)")
	f.StringVar(&a.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(
		a.adminCmd(),
		a.userCmd(),
		a.loanCmd(),
		a.jobsCmd(),
		a.watchCmd(),
		a.digestCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.token != "" {
		cfg.APIToken = a.token
	}
	if a.userID != "" {
		cfg.UserID = a.userID
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	a.log.SetLevel(level)

	a.cfg = cfg
	a.client = platform.NewClient(cfg, a.log)
	return nil
}

// openAdmin loads the admin dashboard. Fetch failures are logged and the
// dashboard is returned anyway with whatever did load.
func (a *app) openAdmin(cmd *cobra.Command) *service.Dashboard {
	d := service.NewAdminDashboard(a.client, a.log)
	a.load(cmd, d)
	return d
}

// openUser loads the counseling dashboard of the configured user
func (a *app) openUser(cmd *cobra.Command) (*service.Dashboard, error) {
	userID, err := session.ResolveUserID(a.cfg.UserID, a.cfg.APIToken)
	if err != nil {
		return nil, err
	}
	d, err := service.NewUserDashboard(a.client, userID, a.log)
	if err != nil {
		return nil, err
	}
	a.load(cmd, d)
	return d, nil
}

func (a *app) load(cmd *cobra.Command, d *service.Dashboard) {
	out := cmd.ErrOrStderr()
	d.Subscribe(func(e service.Event) {
		if e.Type == service.EventNotice {
			render.Notice(out, e.Notice)
		}
	})
	if err := d.Initialize(commandContext(cmd)); err != nil {
		a.log.WithError(err).Warn("Some collections failed to load")
	}
}

func (a *app) show(cmd *cobra.Command, d *service.Dashboard, tab string) error {
	if tab != "" {
		if err := d.SelectTab(parseTab(tab)); err != nil {
			return err
		}
	}
	return render.Render(cmd.OutOrStdout(), d.State())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
