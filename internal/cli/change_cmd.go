package cli

import (
	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newChangeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "change",
		Short: "Review client change requests",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <project>",
			Short: "List a project's change requests",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := resolveProject(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}
				writeLine(cmd, formatter.FormatChangeRequests(p, app.now()))
				return nil
			},
		},
		newChangeDecisionCmd(app, "approve", domain.ChangeApproved),
		newChangeDecisionCmd(app, "reject", domain.ChangeRejected),
	)
	return cmd
}

func newChangeDecisionCmd(app *App, verb string, status domain.ChangeRequestStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <project> <request>",
		Short: "Mark a change request " + domain.Label(status),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			cr, err := resolveChange(p, args[1])
			if err != nil {
				return err
			}
			cr, err = app.Changes.SetStatus(cmd.Context(), p.ID, cr.ID, status)
			if err != nil {
				return err
			}
			printf(cmd, "Change request #%s %s\n", cr.ShortRef(), formatter.ChangeStatusPill(cr.Status))
			return nil
		},
	}
}
