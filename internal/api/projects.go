package api

import (
	"bytes"
	"fmt"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/export"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/gofiber/fiber/v2"
)

func (s *server) listProjects(c *fiber.Ctx) error {
	projects, err := s.svc.Projects.List(c.UserContext())
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	return ok(c, fiber.StatusOK, "projects", projects)
}

func (s *server) createProject(c *fiber.Ctx) error {
	var req createProjectRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return err
	}
	deadline, err := domain.ParseDate(req.Deadline)
	if err != nil {
		return err
	}
	p, err := s.svc.Projects.Create(c.UserContext(), service.NewProject{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		Deadline:    deadline,
	})
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "project", p)
}

func (s *server) getProject(c *fiber.Ctx) error {
	p, err := s.svc.Projects.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "project", p)
}

func (s *server) setProjectStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	status, err := domain.ParseProjectStatus(req.Status)
	if err != nil {
		return err
	}
	p, err := s.svc.Projects.SetStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "project", p)
}

func (s *server) projectTimeline(c *fiber.Ctx) error {
	p, err := s.svc.Projects.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	timeline := p.Timeline
	if timeline == nil {
		timeline = []domain.TimelineEvent{}
	}
	return ok(c, fiber.StatusOK, "timeline", timeline)
}

func (s *server) exportProject(c *fiber.Ctx) error {
	p, err := s.svc.Projects.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WriteReport(&buf, p); err != nil {
		return domain.IOFailure("building report", err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.ReportFileName(p, s.opts.Now())))
	return c.Send(buf.Bytes())
}

func (s *server) projectQR(c *fiber.Ctx) error {
	p, err := s.svc.Projects.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	png, err := export.ClientLinkQR(s.opts.PublicURL, p)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func (s *server) addModule(c *fiber.Ctx) error {
	var req moduleRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	m, err := s.svc.Modules.Add(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "module", m)
}

func (s *server) generateModules(c *fiber.Ctx) error {
	var req generateRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	mods, err := s.svc.Modules.AddGenerated(c.UserContext(), c.Params("id"), req.Description)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "modules", mods)
}

func (s *server) editModule(c *fiber.Ctx) error {
	var req moduleRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	m, err := s.svc.Modules.Edit(c.UserContext(), c.Params("id"), c.Params("moduleId"), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "module", m)
}

func (s *server) setModuleStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	status, err := domain.ParseModuleStatus(req.Status)
	if err != nil {
		return err
	}
	m, err := s.svc.Modules.SetStatus(c.UserContext(), c.Params("id"), c.Params("moduleId"), status)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "module", m)
}

func (s *server) deleteModule(c *fiber.Ctx) error {
	p, err := s.svc.Modules.Delete(c.UserContext(), c.Params("id"), c.Params("moduleId"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "project", p)
}

func (s *server) updateParts(c *fiber.Ctx) error {
	var req partsRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	parts, err := req.parts()
	if err != nil {
		return err
	}
	m, err := s.svc.Modules.UpdateParts(c.UserContext(), c.Params("id"), c.Params("moduleId"), parts)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "module", m)
}

func (s *server) togglePart(c *fiber.Ctx) error {
	part, err := s.svc.Modules.TogglePart(c.UserContext(), c.Params("id"), c.Params("moduleId"), c.Params("partId"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "part", part)
}

func (s *server) requestPartReview(c *fiber.Ctx) error {
	part, err := s.svc.Modules.RequestPartReview(c.UserContext(), c.Params("id"), c.Params("moduleId"), c.Params("partId"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "part", part)
}

func (s *server) addDeliverable(c *fiber.Ctx) error {
	var req deliverableRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	d, err := s.svc.Modules.AddDeliverable(c.UserContext(), c.Params("id"), c.Params("moduleId"),
		service.DeliverableInput{Name: req.Name, URL: req.URL})
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "deliverable", d)
}

func (s *server) setChangeRequestStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	status, err := domain.ParseChangeRequestStatus(req.Status)
	if err != nil {
		return err
	}
	cr, err := s.svc.Changes.SetStatus(c.UserContext(), c.Params("id"), c.Params("requestId"), status)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "changeRequest", cr)
}

func (s *server) addRequirement(c *fiber.Ctx) error {
	var req requirementRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	r, err := s.svc.Requirements.Add(c.UserContext(), c.Params("id"), service.RequirementInput{Title: req.Title, URL: req.URL})
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "requirement", r)
}

func (s *server) editRequirement(c *fiber.Ctx) error {
	var req requirementRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	r, err := s.svc.Requirements.Edit(c.UserContext(), c.Params("id"), c.Params("requirementId"),
		service.RequirementInput{Title: req.Title, URL: req.URL})
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "requirement", r)
}

func (s *server) deleteRequirement(c *fiber.Ctx) error {
	p, err := s.svc.Requirements.Delete(c.UserContext(), c.Params("id"), c.Params("requirementId"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "project", p)
}

func (s *server) addDocument(c *fiber.Ctx) error {
	var req documentRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	d, err := s.svc.Requirements.AddDocument(c.UserContext(), c.Params("id"), service.DocumentInput{
		Name:     req.Name,
		URL:      req.URL,
		Type:     domain.DocumentType(req.Type),
		ModuleID: req.ModuleID,
	})
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "document", d)
}
