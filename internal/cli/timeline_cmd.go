package cli

import (
	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var actor string
	var limit int

	cmd := &cobra.Command{
		Use:   "timeline <project>",
		Short: "Show a project's activity, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var by domain.Actor
			if actor != "" {
				a, err := domain.ParseActor(actor)
				if err != nil {
					return err
				}
				by = a
			}
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			events := p.Timeline
			if by != "" {
				events = p.EventsBy(by)
			}
			if limit > 0 && len(events) > limit {
				events = events[:limit]
			}
			writeLine(cmd, formatter.Header(p.Name+" timeline"))
			printf(cmd, "%s", formatter.FormatTimeline(events, app.now()))
			return nil
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "Only events by admin, client or system")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many events")
	return cmd
}
