package cli

import (
	"strings"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// newClientCmd acts as the holder of a shareable link. Module and task
// arguments are looked up inside the linked project only.
func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Act on a project through its client link",
	}

	view := &cobra.Command{
		Use:   "view <link>",
		Short: "Show what the client sees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Portal.View(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeLine(cmd, formatter.FormatClientView(v.Project, v.ModulesDone, v.ModulesTotal, v.PendingChanges, app.now()))
			return nil
		},
	}

	approveModule := &cobra.Command{
		Use:   "approve-module <link> <module>",
		Short: "Approve a module as the client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Portal.View(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			m, err := resolveModule(v.Project, args[1])
			if err != nil {
				return err
			}
			m, err = app.Portal.ApproveModule(cmd.Context(), args[0], m.ID)
			if err != nil {
				return err
			}
			printf(cmd, "Approved module %s\n", m.Name)
			return nil
		},
	}

	approvePart := &cobra.Command{
		Use:   "approve-task <link> <module> <task>",
		Short: "Approve a task that is awaiting review",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Portal.View(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			m, err := resolveModule(v.Project, args[1])
			if err != nil {
				return err
			}
			part, err := resolvePart(m, args[2])
			if err != nil {
				return err
			}
			part, err = app.Portal.ApprovePart(cmd.Context(), args[0], m.ID, part.ID)
			if err != nil {
				return err
			}
			printf(cmd, "Approved task %s in %s\n", part.Name, m.Name)
			return nil
		},
	}

	request := &cobra.Command{
		Use:   "request-change <link> <details>...",
		Short: "Submit a change request",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cr, err := app.Portal.AddChangeRequest(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			printf(cmd, "Submitted change request #%s\n", cr.ShortRef())
			return nil
		},
	}

	cmd.AddCommand(view, approveModule, approvePart, request)
	return cmd
}
