package cli

import (
	"strings"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newModuleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "module",
		Short: "Manage a project's modules",
	}
	cmd.AddCommand(
		newModuleAddCmd(app),
		newModuleEditCmd(app),
		newModuleStatusCmd(app),
		newModuleRemoveCmd(app),
		newModuleGenerateCmd(app),
		newModuleDeliverCmd(app),
	)
	return cmd
}

type moduleFlags struct {
	name, description, status, deadline, owner string
	hours                                      float64
}

func (f *moduleFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Module name")
	fs.StringVar(&f.description, "description", "", "Module description")
	fs.StringVar(&f.status, "status", "", "pending, in_progress, in_review or completed")
	fs.StringVar(&f.deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	fs.StringVar(&f.owner, "owner", "", "Person responsible")
	fs.Float64Var(&f.hours, "hours", 0, "Estimated hours")
}

// overlay applies the flags the user actually set on top of in.
func (f *moduleFlags) overlay(fs *pflag.FlagSet, in service.ModuleInput) (service.ModuleInput, error) {
	changed := fs.Changed
	if changed("name") {
		in.Name = f.name
	}
	if changed("description") {
		in.Description = f.description
	}
	if changed("status") {
		st, err := domain.ParseModuleStatus(f.status)
		if err != nil {
			return in, err
		}
		in.Status = st
	}
	if changed("deadline") {
		in.Deadline = domain.Date{}
		if f.deadline != "" {
			d, err := domain.ParseDate(f.deadline)
			if err != nil {
				return in, err
			}
			in.Deadline = d
		}
	}
	if changed("owner") {
		in.Owner = f.owner
	}
	if changed("hours") {
		in.EstimatedHours = f.hours
	}
	return in, nil
}

func newModuleAddCmd(app *App) *cobra.Command {
	var flags moduleFlags

	cmd := &cobra.Command{
		Use:   "add <project>",
		Short: "Add a module to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.overlay(cmd.Flags(), service.ModuleInput{})
			if err != nil {
				return err
			}
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Modules.Add(cmd.Context(), p.ID, in)
			if err != nil {
				return err
			}
			printf(cmd, "Added module %s [%s] to %s\n", m.Name, formatter.ShortID(m.ID), p.Name)
			return nil
		},
	}
	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newModuleEditCmd(app *App) *cobra.Command {
	var flags moduleFlags

	cmd := &cobra.Command{
		Use:   "edit <project> <module>",
		Short: "Edit a module; only the flags given are changed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, m, err := projectAndModule(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			in, err := flags.overlay(cmd.Flags(), service.ModuleInput{
				Name:           m.Name,
				Description:    m.Description,
				Status:         m.Status,
				Deadline:       m.Deadline,
				Owner:          m.Owner,
				EstimatedHours: m.EstimatedHours,
			})
			if err != nil {
				return err
			}
			m, err = app.Modules.Edit(cmd.Context(), p.ID, m.ID, in)
			if err != nil {
				return err
			}
			writeLine(cmd, formatter.FormatModuleLine(m))
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newModuleStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <project> <module> <pending|in_progress|in_review|completed>",
		Short: "Move a module to another status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseModuleStatus(args[2])
			if err != nil {
				return err
			}
			p, m, err := projectAndModule(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			m, err = app.Modules.SetStatus(cmd.Context(), p.ID, m.ID, status)
			if err != nil {
				return err
			}
			printf(cmd, "Module %s is now %s\n", m.Name, domain.Label(m.Status))
			return nil
		},
	}
}

func newModuleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <project> <module>",
		Aliases: []string{"rm"},
		Short:   "Delete a module and its tasks",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, m, err := projectAndModule(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			if _, err := app.Modules.Delete(cmd.Context(), p.ID, m.ID); err != nil {
				return err
			}
			printf(cmd, "Deleted module %s\n", m.Name)
			return nil
		},
	}
}

func newModuleGenerateCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "generate <project>",
		Short: "Ask the AI helper to propose modules from a description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(description) == "" {
				description = p.Description
			}
			mods, err := app.Modules.AddGenerated(cmd.Context(), p.ID, description)
			if err != nil {
				return err
			}
			printf(cmd, "Generated %d modules for %s\n", len(mods), p.Name)
			for _, m := range mods {
				writeLine(cmd, formatter.FormatModuleLine(m))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "What to build (defaults to the project description)")
	return cmd
}

func newModuleDeliverCmd(app *App) *cobra.Command {
	var name, url string

	cmd := &cobra.Command{
		Use:   "deliver <project> <module>",
		Short: "Attach a deliverable link to a module",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, m, err := projectAndModule(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			d, err := app.Modules.AddDeliverable(cmd.Context(), p.ID, m.ID, service.DeliverableInput{Name: name, URL: url})
			if err != nil {
				return err
			}
			printf(cmd, "Deliverable %s submitted for %s\n", d.Name, m.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Deliverable name")
	cmd.Flags().StringVar(&url, "url", "", "Where the deliverable can be downloaded")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
