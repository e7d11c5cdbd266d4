package cli

import (
	"encoding/json"
	"os"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/spf13/cobra"
)

func newLeadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Track prospective clients and their questionnaires",
	}
	cmd.AddCommand(
		newLeadAddCmd(app),
		newLeadListCmd(app),
		newLeadShowCmd(app),
		newLeadStatusCmd(app),
		newLeadSubmitCmd(app),
	)
	return cmd
}

func newLeadAddCmd(app *App) *cobra.Command {
	var name, email, company string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new lead",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := app.Leads.Create(cmd.Context(), service.LeadInput{Name: name, Email: email, Company: company})
			if err != nil {
				return err
			}
			printf(cmd, "Created lead %s [%s]\n", l.Name, formatter.ShortID(l.ID))
			printf(cmd, "Questionnaire: %s\n", l.FormLink)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Contact name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&company, "company", "", "Company")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLeadListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List leads, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			leads, err := app.Leads.List(cmd.Context())
			if err != nil {
				return err
			}
			writeLine(cmd, formatter.FormatLeadList(leads, app.now()))
			return nil
		},
	}
}

func newLeadShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <lead>",
		Short: "Show a lead and its questionnaire answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := resolveLead(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			reqs, err := app.Leads.Requirements(cmd.Context(), l.ID)
			if err != nil {
				return err
			}
			writeLine(cmd, formatter.FormatLead(l, app.now()))
			writeLine(cmd, formatter.FormatRequirements(reqs, app.now()))
			return nil
		},
	}
}

func newLeadStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <lead> <new|contacted|proposal_sent|converted>",
		Short: "Move a lead forward in the pipeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseLeadStatus(args[1])
			if err != nil {
				return err
			}
			l, err := resolveLead(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			l, err = app.Leads.SetStatus(cmd.Context(), l.ID, status)
			if err != nil {
				return err
			}
			printf(cmd, "Lead %s is now %s\n", l.Name, domain.Label(l.Status))
			return nil
		},
	}
}

// newLeadSubmitCmd records questionnaire answers received outside the web
// form, e.g. by email, from a JSON file.
func newLeadSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <lead> <answers.json>",
		Short: "Record questionnaire answers from a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return domain.IOFailure("reading answers", err)
			}
			var answers domain.ClientRequirements
			if err := json.Unmarshal(data, &answers); err != nil {
				return domain.Validation("answers file %s is not valid JSON: %v", args[1], err)
			}
			l, err := resolveLead(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			l, err = app.Leads.SubmitForm(cmd.Context(), l.ID, &answers)
			if err != nil {
				return err
			}
			printf(cmd, "Recorded answers for %s (%s)\n", l.Name, domain.Label(l.Status))
			return nil
		},
	}
}
