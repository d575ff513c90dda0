package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/mfdash/internal/models"
	"github.com/Dan9191/mfdash/internal/utils/email"
	"github.com/spf13/cobra"
)

func parseTab(s string) models.Tab {
	return models.Tab(strings.ToLower(strings.TrimSpace(s)))
}

func tabNames(tabs []models.Tab) string {
	names := make([]string, len(tabs))
	for i, t := range tabs {
		names[i] = string(t)
	}
	return strings.Join(names, "|")
}

func (a *app) adminCmd() *cobra.Command {
	var tab string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Show the microfinance admin dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.show(cmd, a.openAdmin(cmd), tab)
		},
	}
	cmd.Flags().StringVar(&tab, "tab", "", "tab to show: "+tabNames(models.AdminTabs))
	return cmd
}

func (a *app) userCmd() *cobra.Command {
	var tab string
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show the career counseling dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.openUser(cmd)
			if err != nil {
				return err
			}
			return a.show(cmd, d, tab)
		},
	}
	cmd.Flags().StringVar(&tab, "tab", "", "tab to show: "+tabNames(models.UserTabs))
	return cmd
}

func (a *app) digestCmd() *cobra.Command {
	var to []string
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Email the admin dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := a.openAdmin(cmd)
			sender := email.NewSender(a.cfg, a.log)
			if err := sender.SendStatsDigest(to, d.State().Stats, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Digest sent to %s\n", strings.Join(to, ", "))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&to, "to", nil, "recipient addresses")
	cmd.MarkFlagRequired("to")
	return cmd
}
