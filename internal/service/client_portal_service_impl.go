package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

type clientPortalService struct {
	rt *Runtime
}

func NewClientPortalService(rt *Runtime) ClientPortalService {
	return &clientPortalService{rt: rt}
}

// resolve maps a shareable link to its project id. Unknown links are
// reported as a missing project without echoing the token back.
func (s *clientPortalService) resolve(ctx context.Context, linkID string) (*domain.Project, error) {
	if strings.TrimSpace(linkID) == "" {
		return nil, domain.NotFound("project", "")
	}
	p, err := s.rt.store.Projects().GetByShareLink(ctx, linkID)
	if domain.IsNotFound(err) {
		return nil, domain.NotFound("project", "")
	}
	return p, err
}

func (s *clientPortalService) View(ctx context.Context, linkID string) (*ClientView, error) {
	p, err := s.resolve(ctx, linkID)
	if err != nil {
		return nil, err
	}
	done, total := p.Progress()
	return &ClientView{
		Project:        p,
		ModulesDone:    done,
		ModulesTotal:   total,
		PendingChanges: p.PendingChangeRequests(),
	}, nil
}

func (s *clientPortalService) ApproveModule(ctx context.Context, linkID, moduleID string) (*domain.Module, error) {
	p, err := s.resolve(ctx, linkID)
	if err != nil {
		return nil, err
	}
	var out *domain.Module
	_, err = s.rt.mutateProject(ctx, "client-approve-module", p.ID, func(p *domain.Project, now time.Time) (bool, error) {
		m, err := p.Module(moduleID)
		if err != nil {
			return false, err
		}
		domain.ApproveModule(p, m, now)
		out = m
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *clientPortalService) ApprovePart(ctx context.Context, linkID, moduleID, partID string) (*domain.Part, error) {
	p, err := s.resolve(ctx, linkID)
	if err != nil {
		return nil, err
	}
	var out *domain.Part
	_, err = s.rt.mutateProject(ctx, "client-approve-part", p.ID, func(p *domain.Project, now time.Time) (bool, error) {
		part, m, err := locatePart(p, moduleID, partID)
		if err != nil {
			return false, err
		}
		if err := domain.ApprovePart(p, m, part, now); err != nil {
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

func (s *clientPortalService) AddChangeRequest(ctx context.Context, linkID, details string) (*domain.ChangeRequest, error) {
	details = strings.TrimSpace(details)
	if details == "" {
		return nil, domain.Validation("change request details are required")
	}
	p, err := s.resolve(ctx, linkID)
	if err != nil {
		return nil, err
	}
	var out *domain.ChangeRequest
	_, err = s.rt.mutateProject(ctx, "add-change-request", p.ID, func(p *domain.Project, now time.Time) (bool, error) {
		out = &domain.ChangeRequest{
			ID:          newID("cr"),
			Details:     details,
			Status:      domain.ChangePendingApproval,
			SubmittedAt: now,
		}
		p.ChangeRequests = append(p.ChangeRequests, out)
		p.Record(domain.ActorClient, now, "Client submitted change request #%s", out.ShortRef())
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
