package api

import (
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/gofiber/fiber/v2"
)

func (s *server) listLeads(c *fiber.Ctx) error {
	leads, err := s.svc.Leads.List(c.UserContext())
	if err != nil {
		return err
	}
	if leads == nil {
		leads = []*domain.Lead{}
	}
	return ok(c, fiber.StatusOK, "leads", leads)
}

func (s *server) createLead(c *fiber.Ctx) error {
	var req leadRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	l, err := s.svc.Leads.Create(c.UserContext(), service.LeadInput{Name: req.Name, Email: req.Email, Company: req.Company})
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "lead", l)
}

func (s *server) getLead(c *fiber.Ctx) error {
	l, err := s.svc.Leads.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "lead", l)
}

func (s *server) setLeadStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	status, err := domain.ParseLeadStatus(req.Status)
	if err != nil {
		return err
	}
	l, err := s.svc.Leads.SetStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "lead", l)
}

func (s *server) leadRequirements(c *fiber.Ctx) error {
	reqs, err := s.svc.Leads.Requirements(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if reqs == nil {
		reqs = []*domain.ClientRequirements{}
	}
	return ok(c, fiber.StatusOK, "requirements", reqs)
}

// leadForm returns only what the questionnaire needs to greet the lead.
func (s *server) leadForm(c *fiber.Ctx) error {
	l, err := s.svc.Leads.GetByID(c.UserContext(), c.Params("leadId"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "lead", fiber.Map{
		"id":      l.ID,
		"name":    l.Name,
		"company": l.Company,
	})
}

func (s *server) submitLeadForm(c *fiber.Ctx) error {
	var answers domain.ClientRequirements
	if err := c.BodyParser(&answers); err != nil {
		return domain.Validation("invalid request body: %v", err)
	}
	l, err := s.svc.Leads.SubmitForm(c.UserContext(), c.Params("leadId"), &answers)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "lead", fiber.Map{"id": l.ID, "status": l.Status})
}
