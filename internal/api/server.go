// Package api exposes the service layer over HTTP. Admin actions live under
// /api, client-facing actions under /client/:link and /leads/:leadId/form.
package api

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Services is everything the handlers call into.
type Services struct {
	Projects     service.ProjectService
	Modules      service.ModuleService
	Changes      service.ChangeRequestService
	Requirements service.RequirementService
	Leads        service.LeadService
	Portal       service.ClientPortalService
}

type Options struct {
	// PublicURL is the externally reachable base used in QR codes.
	PublicURL string
	Logger    *slog.Logger
	// Now is used for export file names; defaults to time.Now.
	Now func() time.Time
}

type server struct {
	svc      Services
	opts     Options
	validate *validator.Validate
}

// New builds the fiber app with every route registered.
func New(svc Services, opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &server{svc: svc, opts: opts, validate: newValidator()}

	app := fiber.New(fiber.Config{
		AppName:               "clientdesk",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(requestLogger(opts.Logger))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	s.adminRoutes(app.Group("/api"))
	s.clientRoutes(app)
	return app
}

func (s *server) adminRoutes(r fiber.Router) {
	projects := r.Group("/projects")
	projects.Get("/", s.listProjects)
	projects.Post("/", s.createProject)
	projects.Get("/:id", s.getProject)
	projects.Patch("/:id/status", s.setProjectStatus)
	projects.Get("/:id/timeline", s.projectTimeline)
	projects.Get("/:id/export.xlsx", s.exportProject)
	projects.Get("/:id/qr.png", s.projectQR)

	projects.Post("/:id/modules", s.addModule)
	projects.Post("/:id/modules/generate", s.generateModules)
	projects.Put("/:id/modules/:moduleId", s.editModule)
	projects.Patch("/:id/modules/:moduleId/status", s.setModuleStatus)
	projects.Delete("/:id/modules/:moduleId", s.deleteModule)
	projects.Put("/:id/modules/:moduleId/parts", s.updateParts)
	projects.Post("/:id/modules/:moduleId/parts/:partId/toggle", s.togglePart)
	projects.Post("/:id/modules/:moduleId/parts/:partId/review", s.requestPartReview)
	projects.Post("/:id/modules/:moduleId/deliverables", s.addDeliverable)

	projects.Patch("/:id/change-requests/:requestId", s.setChangeRequestStatus)

	projects.Post("/:id/requirements", s.addRequirement)
	projects.Put("/:id/requirements/:requirementId", s.editRequirement)
	projects.Delete("/:id/requirements/:requirementId", s.deleteRequirement)
	projects.Post("/:id/documents", s.addDocument)

	leads := r.Group("/leads")
	leads.Get("/", s.listLeads)
	leads.Post("/", s.createLead)
	leads.Get("/:id", s.getLead)
	leads.Patch("/:id/status", s.setLeadStatus)
	leads.Get("/:id/requirements", s.leadRequirements)
}

func (s *server) clientRoutes(app *fiber.App) {
	client := app.Group("/client/:link")
	client.Get("/", s.clientView)
	client.Post("/modules/:moduleId/approve", s.clientApproveModule)
	client.Post("/modules/:moduleId/parts/:partId/approve", s.clientApprovePart)
	client.Post("/change-requests", s.clientChangeRequest)

	app.Get("/leads/:leadId/form", s.leadForm)
	app.Post("/leads/:leadId/form", s.submitLeadForm)
}

// requestLogger writes one structured line per request.
func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the error handler set the status before logging it.
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if status >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "http_request", attrs...)
		} else {
			logger.InfoContext(c.UserContext(), "http_request", attrs...)
		}
		return nil
	}
}
