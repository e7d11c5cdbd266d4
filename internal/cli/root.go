package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/juju/clock"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects     service.ProjectService
	Modules      service.ModuleService
	Changes      service.ChangeRequestService
	Requirements service.RequirementService
	Leads        service.LeadService
	Portal       service.ClientPortalService

	// Clock anchors relative times in output. Nil means wall clock.
	Clock clock.Clock
	// HTTPAddr and PublicURL configure `serve` and exported links.
	HTTPAddr  string
	PublicURL string
	Logger    *slog.Logger
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock.Now()
}

// NewRootCmd creates the top-level "clientdesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "clientdesk",
		Short:         "Client project tracker with a shareable client portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newModuleCmd(app),
		newPartCmd(app),
		newChangeCmd(app),
		newRequirementCmd(app),
		newDocumentCmd(app),
		newLeadCmd(app),
		newClientCmd(app),
		newTimelineCmd(app),
		newExportCmd(app),
		newServeCmd(app),
	)
	return root
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func writeLine(cmd *cobra.Command, s string) {
	io.WriteString(cmd.OutOrStdout(), s+"\n")
}
