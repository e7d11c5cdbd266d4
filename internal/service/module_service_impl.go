package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/intelligence"
)

var errNoGenerator = errors.New("module generator not configured")

type moduleService struct {
	rt        *Runtime
	generator intelligence.ModuleGenerator
}

// NewModuleService creates a ModuleService. generator may be nil, in which
// case AddGenerated fails with an external-service error.
func NewModuleService(rt *Runtime, generator intelligence.ModuleGenerator) ModuleService {
	return &moduleService{rt: rt, generator: generator}
}

func buildModule(in ModuleInput) (*domain.Module, error) {
	m := &domain.Module{
		ID:             newID("mod"),
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Status:         in.Status,
		Deadline:       in.Deadline,
		Owner:          strings.TrimSpace(in.Owner),
		EstimatedHours: in.EstimatedHours,
	}
	if m.Status == "" {
		m.Status = domain.ModulePending
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *moduleService) Add(ctx context.Context, projectID string, in ModuleInput) (*domain.Module, error) {
	m, err := buildModule(in)
	if err != nil {
		return nil, err
	}
	_, err = s.rt.mutateProject(ctx, "add-module", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		p.Modules = append(p.Modules, m)
		p.Record(domain.ActorAdmin, now, "Module %q added", m.Name)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *moduleService) Edit(ctx context.Context, projectID, moduleID string, in ModuleInput) (*domain.Module, error) {
	edited, err := buildModule(in)
	if err != nil {
		return nil, err
	}
	var out *domain.Module
	_, err = s.rt.mutateProject(ctx, "edit-module", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		m, err := p.Module(moduleID)
		if err != nil {
			return false, err
		}
		out = m
		if in.Status == "" {
			edited.Status = m.Status
		}
		if sameModuleFields(m, edited) {
			return false, nil
		}
		m.Name = edited.Name
		m.Description = edited.Description
		m.Status = edited.Status
		m.Deadline = edited.Deadline
		m.Owner = edited.Owner
		m.EstimatedHours = edited.EstimatedHours
		p.Record(domain.ActorAdmin, now, "Module %q updated", m.Name)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func sameModuleFields(a, b *domain.Module) bool {
	return a.Name == b.Name &&
		a.Description == b.Description &&
		a.Status == b.Status &&
		a.Deadline.Equal(b.Deadline.Time) &&
		a.Owner == b.Owner &&
		a.EstimatedHours == b.EstimatedHours
}

func (s *moduleService) SetStatus(ctx context.Context, projectID, moduleID string, status domain.ModuleStatus) (*domain.Module, error) {
	var out *domain.Module
	_, err := s.rt.mutateProject(ctx, "set-module-status", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		m, err := p.Module(moduleID)
		if err != nil {
			return false, err
		}
		out = m
		return domain.SetModuleStatus(p, m, status, now)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *moduleService) Delete(ctx context.Context, projectID, moduleID string) (*domain.Project, error) {
	return s.rt.mutateProject(ctx, "delete-module", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		m, err := p.RemoveModule(moduleID)
		if err != nil {
			return false, err
		}
		p.Record(domain.ActorAdmin, now, "Module %q deleted", m.Name)
		return true, nil
	})
}

func (s *moduleService) AddGenerated(ctx context.Context, projectID, description string) ([]*domain.Module, error) {
	// Fail fast on a bad id before spending a model call.
	if _, err := s.rt.store.Projects().GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, domain.ExternalFailure("generating modules", errNoGenerator)
	}
	proposed, err := s.generator.Generate(ctx, description)
	if err != nil {
		return nil, err
	}

	modules := make([]*domain.Module, 0, len(proposed))
	for _, g := range proposed {
		deadline, err := domain.ParseDate(g.Deadline)
		if err != nil {
			return nil, domain.ExternalFailure("reading generated modules", err)
		}
		m, err := buildModule(ModuleInput{
			Name:           g.Name,
			Description:    g.Description,
			Deadline:       deadline,
			Owner:          g.Owner,
			EstimatedHours: g.EstimatedHours,
		})
		if err != nil {
			return nil, domain.ExternalFailure("reading generated modules", err)
		}
		modules = append(modules, m)
	}

	_, err = s.rt.mutateProject(ctx, "add-generated-modules", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		p.Modules = append(p.Modules, modules...)
		p.Record(domain.ActorSystem, now, "%d modules generated by AI", len(modules))
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return modules, nil
}

// UpdateParts replaces the module's task list. Parts without an id are new;
// parts without a status start Pending.
func (s *moduleService) UpdateParts(ctx context.Context, projectID, moduleID string, parts []*domain.Part) (*domain.Module, error) {
	if err := domain.ValidateParts(parts); err != nil {
		return nil, err
	}
	replacement := make([]*domain.Part, 0, len(parts))
	for _, in := range parts {
		part := &domain.Part{ID: in.ID, Name: strings.TrimSpace(in.Name), Status: in.Status}
		if part.ID == "" {
			part.ID = newID("part")
		}
		if part.Status == "" {
			part.Status = domain.PartPending
		}
		replacement = append(replacement, part)
	}

	var out *domain.Module
	_, err := s.rt.mutateProject(ctx, "update-module-parts", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		m, err := p.Module(moduleID)
		if err != nil {
			return false, err
		}
		out = m
		m.Parts = replacement
		p.Record(domain.ActorAdmin, now, "Tasks updated for module %q", m.Name)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *moduleService) TogglePart(ctx context.Context, projectID, moduleID, partID string) (*domain.Part, error) {
	return s.partAction(ctx, "toggle-part", projectID, moduleID, partID, func(p *domain.Project, m *domain.Module, part *domain.Part, now time.Time) error {
		domain.TogglePart(p, m, part, now)
		return nil
	})
}

func (s *moduleService) RequestPartReview(ctx context.Context, projectID, moduleID, partID string) (*domain.Part, error) {
	return s.partAction(ctx, "request-part-review", projectID, moduleID, partID, domain.RequestPartReview)
}

func (s *moduleService) partAction(ctx context.Context, useCase, projectID, moduleID, partID string, apply func(*domain.Project, *domain.Module, *domain.Part, time.Time) error) (*domain.Part, error) {
	var out *domain.Part
	_, err := s.rt.mutateProject(ctx, useCase, projectID, func(p *domain.Project, now time.Time) (bool, error) {
		part, m, err := locatePart(p, moduleID, partID)
		if err != nil {
			return false, err
		}
		if err := apply(p, m, part, now); err != nil {
			return false, err
		}
		out = part
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func locatePart(p *domain.Project, moduleID, partID string) (*domain.Part, *domain.Module, error) {
	m, err := p.Module(moduleID)
	if err != nil {
		return nil, nil, err
	}
	part, err := m.Part(partID)
	if err != nil {
		return nil, nil, err
	}
	return part, m, nil
}

func (s *moduleService) AddDeliverable(ctx context.Context, projectID, moduleID string, in DeliverableInput) (*domain.Deliverable, error) {
	name, url := strings.TrimSpace(in.Name), strings.TrimSpace(in.URL)
	if name == "" || url == "" {
		return nil, domain.Validation("deliverable name and url are required")
	}
	var out *domain.Deliverable
	_, err := s.rt.mutateProject(ctx, "add-deliverable", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		m, err := p.Module(moduleID)
		if err != nil {
			return false, err
		}
		out = &domain.Deliverable{ID: newID("dlv"), Name: name, URL: url, SubmittedAt: now}
		m.Deliverables = append(m.Deliverables, out)
		p.Record(domain.ActorAdmin, now, "Deliverable %q submitted for module %q", name, m.Name)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
