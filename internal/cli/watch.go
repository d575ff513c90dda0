package cli

import (
	"fmt"

	"github.com/Dan9191/mfdash/internal/render"
	"github.com/Dan9191/mfdash/internal/service"
	"github.com/spf13/cobra"
)

func (a *app) watchCmd() *cobra.Command {
	var (
		schedule string
		tab      string
	)
	cmd := &cobra.Command{
		Use:       "watch admin|user",
		Short:     "Re-fetch a dashboard on a schedule and redraw it",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{service.DashboardAdmin, service.DashboardUser},
		RunE: func(cmd *cobra.Command, args []string) error {
			var d *service.Dashboard
			if args[0] == service.DashboardAdmin {
				d = a.openAdmin(cmd)
			} else {
				var err error
				if d, err = a.openUser(cmd); err != nil {
					return err
				}
			}
			if err := a.show(cmd, d, tab); err != nil {
				return err
			}

			if schedule == "" {
				schedule = a.cfg.RefreshSchedule
			}
			out := cmd.OutOrStdout()
			ctx := commandContext(cmd)
			stop, err := d.StartAutoRefresh(ctx, schedule, func(error) {
				fmt.Fprintln(out)
				render.Render(out, d.State())
			})
			if err != nil {
				return err
			}
			defer stop()

			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&schedule, "schedule", "", "cron schedule, e.g. \"@every 30s\" (default REFRESH_SCHEDULE)")
	cmd.Flags().StringVar(&tab, "tab", "", "tab to show")
	return cmd
}
