package cli

import (
	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/spf13/cobra"
)

func newRequirementCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requirement",
		Aliases: []string{"req"},
		Short:   "Manage a project's requirement links",
	}
	cmd.AddCommand(
		newRequirementAddCmd(app),
		newRequirementEditCmd(app),
		newRequirementRemoveCmd(app),
	)
	return cmd
}

func newRequirementAddCmd(app *App) *cobra.Command {
	var title, url string
	cmd := &cobra.Command{
		Use:   "add <project>",
		Short: "Add a requirement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			r, err := app.Requirements.Add(cmd.Context(), p.ID, service.RequirementInput{Title: title, URL: url})
			if err != nil {
				return err
			}
			printf(cmd, "Added requirement %s [%s]\n", r.Title, formatter.ShortID(r.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Requirement title")
	cmd.Flags().StringVar(&url, "url", "", "Link to the requirement")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newRequirementEditCmd(app *App) *cobra.Command {
	var title, url string
	cmd := &cobra.Command{
		Use:   "edit <project> <requirement>",
		Short: "Edit a requirement; only the flags given are changed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			r, err := resolveRequirement(p, args[1])
			if err != nil {
				return err
			}
			in := service.RequirementInput{Title: r.Title, URL: r.URL}
			if cmd.Flags().Changed("title") {
				in.Title = title
			}
			if cmd.Flags().Changed("url") {
				in.URL = url
			}
			r, err = app.Requirements.Edit(cmd.Context(), p.ID, r.ID, in)
			if err != nil {
				return err
			}
			printf(cmd, "Requirement %s %s\n", r.Title, formatter.Dim(r.URL))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Requirement title")
	cmd.Flags().StringVar(&url, "url", "", "Link to the requirement")
	return cmd
}

func newRequirementRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <project> <requirement>",
		Aliases: []string{"rm"},
		Short:   "Delete a requirement",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			r, err := resolveRequirement(p, args[1])
			if err != nil {
				return err
			}
			if _, err := app.Requirements.Delete(cmd.Context(), p.ID, r.ID); err != nil {
				return err
			}
			printf(cmd, "Deleted requirement %s\n", r.Title)
			return nil
		},
	}
}

func newDocumentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Attach documents to a project or module",
	}

	var name, url, docType, module string
	add := &cobra.Command{
		Use:   "add <project>",
		Short: "Attach a document link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			in := service.DocumentInput{Name: name, URL: url, Type: domain.DocumentType(docType)}
			target := p.Name
			if module != "" {
				m, err := resolveModule(p, module)
				if err != nil {
					return err
				}
				in.ModuleID, target = m.ID, m.Name
			}
			d, err := app.Requirements.AddDocument(cmd.Context(), p.ID, in)
			if err != nil {
				return err
			}
			printf(cmd, "Attached %s (%s) to %s\n", d.Name, domain.Label(d.Type), target)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Document name")
	add.Flags().StringVar(&url, "url", "", "Document link")
	add.Flags().StringVar(&docType, "type", "", "brief, observations, meeting_minutes or other")
	add.Flags().StringVar(&module, "module", "", "Attach to this module instead of the project")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("url")

	cmd.AddCommand(add)
	return cmd
}
