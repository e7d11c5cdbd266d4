package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newPartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "part",
		Aliases: []string{"task"},
		Short:   "Manage the tasks inside a module",
	}
	cmd.AddCommand(
		newPartAddCmd(app),
		newPartRemoveCmd(app),
		newPartToggleCmd(app),
		newPartReviewCmd(app),
	)
	return cmd
}

// copyParts snapshots a module's task list for UpdateParts.
func copyParts(m *domain.Module) []*domain.Part {
	out := make([]*domain.Part, 0, len(m.Parts))
	for _, p := range m.Parts {
		cp := *p
		out = append(out, &cp)
	}
	return out
}

func newPartAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <project> <module> <task>...",
		Short: "Append tasks to a module",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, m, err := projectAndModule(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			parts := copyParts(m)
			for _, name := range args[2:] {
				parts = append(parts, &domain.Part{Name: strings.TrimSpace(name)})
			}
			m, err = app.Modules.UpdateParts(cmd.Context(), p.ID, m.ID, parts)
			if err != nil {
				return err
			}
			writeLine(cmd, formatter.FormatModuleLine(m))
			return nil
		},
	}
}

func newPartRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <project> <module> <task>",
		Aliases: []string{"rm"},
		Short:   "Remove a task from a module",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, m, err := projectAndModule(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			target, err := resolvePart(m, args[2])
			if err != nil {
				return err
			}
			parts := make([]*domain.Part, 0, len(m.Parts))
			for _, part := range copyParts(m) {
				if part.ID != target.ID {
					parts = append(parts, part)
				}
			}
			if _, err := app.Modules.UpdateParts(cmd.Context(), p.ID, m.ID, parts); err != nil {
				return err
			}
			printf(cmd, "Removed task %s from %s\n", target.Name, m.Name)
			return nil
		},
	}
}

func newPartToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <project> <module> <task>",
		Short: "Mark a task done, or back to pending",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return partAction(cmd, app, args, app.Modules.TogglePart)
		},
	}
}

func newPartReviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "review <project> <module> <task>",
		Short: "Submit a task for client approval",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return partAction(cmd, app, args, app.Modules.RequestPartReview)
		},
	}
}

type partFunc func(ctx context.Context, projectID, moduleID, partID string) (*domain.Part, error)

func partAction(cmd *cobra.Command, app *App, args []string, fn partFunc) error {
	p, m, err := projectAndModule(cmd.Context(), app, args[0], args[1])
	if err != nil {
		return err
	}
	part, err := resolvePart(m, args[2])
	if err != nil {
		return err
	}
	part, err = fn(cmd.Context(), p.ID, m.ID, part.ID)
	if err != nil {
		return err
	}
	printf(cmd, "%s %s\n", formatter.PartMark(part.Status), part.Name)
	return nil
}
