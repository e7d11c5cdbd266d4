package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

type requirementService struct {
	rt *Runtime
}

// NewRequirementService handles a project's requirement links and documents.
func NewRequirementService(rt *Runtime) RequirementService {
	return &requirementService{rt: rt}
}

func (in RequirementInput) normalized() (RequirementInput, error) {
	out := RequirementInput{Title: strings.TrimSpace(in.Title), URL: strings.TrimSpace(in.URL)}
	if out.Title == "" {
		return out, domain.Validation("requirement title is required")
	}
	return out, nil
}

func (s *requirementService) Add(ctx context.Context, projectID string, in RequirementInput) (*domain.Requirement, error) {
	in, err := in.normalized()
	if err != nil {
		return nil, err
	}
	req := &domain.Requirement{ID: newID("req"), Title: in.Title, URL: in.URL}
	_, err = s.rt.mutateProject(ctx, "add-requirement", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		p.Requirements = append(p.Requirements, req)
		p.Record(domain.ActorAdmin, now, "Requirement %q added", req.Title)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *requirementService) Edit(ctx context.Context, projectID, requirementID string, in RequirementInput) (*domain.Requirement, error) {
	in, err := in.normalized()
	if err != nil {
		return nil, err
	}
	var out *domain.Requirement
	_, err = s.rt.mutateProject(ctx, "edit-requirement", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		req, err := p.Requirement(requirementID)
		if err != nil {
			return false, err
		}
		out = req
		if req.Title == in.Title && req.URL == in.URL {
			return false, nil
		}
		req.Title, req.URL = in.Title, in.URL
		p.Record(domain.ActorAdmin, now, "Requirement %q updated", req.Title)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *requirementService) Delete(ctx context.Context, projectID, requirementID string) (*domain.Project, error) {
	return s.rt.mutateProject(ctx, "delete-requirement", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		req, err := p.RemoveRequirement(requirementID)
		if err != nil {
			return false, err
		}
		p.Record(domain.ActorAdmin, now, "Requirement %q deleted", req.Title)
		return true, nil
	})
}

func (s *requirementService) AddDocument(ctx context.Context, projectID string, in DocumentInput) (*domain.Document, error) {
	name, url := strings.TrimSpace(in.Name), strings.TrimSpace(in.URL)
	if name == "" || url == "" {
		return nil, domain.Validation("document name and url are required")
	}
	docType, err := domain.ParseDocumentType(string(in.Type))
	if err != nil {
		return nil, err
	}
	doc := &domain.Document{ID: newID("doc"), Name: name, URL: url, Type: docType}

	_, err = s.rt.mutateProject(ctx, "add-document", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		if in.ModuleID == "" {
			p.Documents = append(p.Documents, doc)
			p.Record(domain.ActorAdmin, now, "Project document %q added", doc.Name)
			return true, nil
		}
		m, err := p.Module(in.ModuleID)
		if err != nil {
			return false, err
		}
		m.Documents = append(m.Documents, doc)
		p.Record(domain.ActorAdmin, now, "Document %q added to module %q", doc.Name, m.Name)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
