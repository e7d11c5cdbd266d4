package cli

import (
	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectStatusCmd(app),
	)
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, description, start, deadline string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := domain.ParseDate(start)
			if err != nil {
				return err
			}
			deadlineDate, err := domain.ParseDate(deadline)
			if err != nil {
				return err
			}
			p, err := app.Projects.Create(cmd.Context(), service.NewProject{
				Name:        name,
				Description: description,
				StartDate:   startDate,
				Deadline:    deadlineDate,
			})
			if err != nil {
				return err
			}
			printf(cmd, "Created project %s [%s]\n", p.Name, formatter.ShortID(p.ID))
			printf(cmd, "Client link: /client/%s\n", p.ShareableLinkID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("deadline")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			writeLine(cmd, formatter.FormatProjectList(projects, app.now()))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project with its modules, tasks and documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			writeLine(cmd, formatter.FormatProjectDetail(p, app.now()))
			return nil
		},
	}
}

func newProjectStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <project> <planning|in_progress|in_review|completed>",
		Short: "Change a project's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseProjectStatus(args[1])
			if err != nil {
				return err
			}
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			p, err = app.Projects.SetStatus(cmd.Context(), p.ID, status)
			if err != nil {
				return err
			}
			printf(cmd, "Project %s is now %s\n", p.Name, domain.Label(p.Status))
			return nil
		},
	}
}
