package cli

import (
	"github.com/Dan9191/mfdash/internal/actions"
	"github.com/Dan9191/mfdash/internal/models"
	"github.com/Dan9191/mfdash/internal/service"
	"github.com/spf13/cobra"
)

func (a *app) loanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Decide on loan applications",
	}
	for _, status := range []string{models.StatusApproved, models.StatusRejected} {
		verb := "approve"
		if status == models.StatusRejected {
			verb = "reject"
		}
		cmd.AddCommand(&cobra.Command{
			Use:   verb + " <loanID>",
			Short: "Set a loan to " + status,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				d := a.openAdmin(cmd)
				return a.dispatch(cmd, d, models.NewSetLoanStatus(args[0], status), string(models.TabAdminLoans))
			},
		})
	}
	return cmd
}

func (a *app) jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Apply for jobs and regenerate job matches",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "apply <jobID>",
			Short: "Apply for a job",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				d, err := a.openUser(cmd)
				if err != nil {
					return err
				}
				req := models.NewApplyForJob(d.State().UserID, args[0])
				return a.dispatch(cmd, d, req, string(models.TabUserJobs))
			},
		},
		&cobra.Command{
			Use:   "match",
			Short: "Regenerate job matches",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				d, err := a.openUser(cmd)
				if err != nil {
					return err
				}
				req := models.NewGenerateJobMatches(d.State().UserID)
				return a.dispatch(cmd, d, req, string(models.TabUserJobs))
			},
		},
	)
	return cmd
}

// dispatch runs req and shows tab afterwards. A failed action is reported
// as a notice by the dashboard subscription and returned as the command error.
func (a *app) dispatch(cmd *cobra.Command, d *service.Dashboard, req models.ActionRequest, tab string) error {
	disp := actions.NewDispatcher(a.client, d, a.log)
	if _, err := disp.Dispatch(commandContext(cmd), req); err != nil {
		return err
	}
	return a.show(cmd, d, tab)
}
