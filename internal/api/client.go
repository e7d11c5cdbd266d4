package api

import (
	"github.com/gofiber/fiber/v2"
)

func (s *server) clientView(c *fiber.Ctx) error {
	view, err := s.svc.Portal.View(c.UserContext(), c.Params("link"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"project": view.Project,
		"progress": fiber.Map{
			"modulesCompleted":      view.ModulesDone,
			"modulesTotal":          view.ModulesTotal,
			"pendingChangeRequests": view.PendingChanges,
		},
	})
}

func (s *server) clientApproveModule(c *fiber.Ctx) error {
	m, err := s.svc.Portal.ApproveModule(c.UserContext(), c.Params("link"), c.Params("moduleId"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "module", m)
}

func (s *server) clientApprovePart(c *fiber.Ctx) error {
	part, err := s.svc.Portal.ApprovePart(c.UserContext(), c.Params("link"), c.Params("moduleId"), c.Params("partId"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "part", part)
}

func (s *server) clientChangeRequest(c *fiber.Ctx) error {
	var req changeRequestRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	cr, err := s.svc.Portal.AddChangeRequest(c.UserContext(), c.Params("link"), req.Details)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "changeRequest", cr)
}
