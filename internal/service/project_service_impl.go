package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/google/uuid"
)

type projectService struct {
	rt *Runtime
}

func NewProjectService(rt *Runtime) ProjectService {
	return &projectService{rt: rt}
}

func (s *projectService) Create(ctx context.Context, in NewProject) (p *domain.Project, err error) {
	startedAt := s.rt.clock.Now()
	fields := map[string]any{"name": in.Name}
	defer s.rt.observe(ctx, "create-project", startedAt, fields, &err)

	now := s.rt.now()
	p = &domain.Project{
		ID:              newID("proj"),
		Name:            strings.TrimSpace(in.Name),
		Description:     strings.TrimSpace(in.Description),
		Status:          domain.ProjectPlanning,
		StartDate:       in.StartDate,
		Deadline:        in.Deadline,
		ShareableLinkID: uuid.New().String(),
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}
	p.Normalize()
	p.Record(domain.ActorSystem, now, "Project %q created", p.Name)

	if err = s.rt.store.Projects().Create(ctx, p); err != nil {
		return nil, err
	}
	fields["project_id"] = p.ID
	return p, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.rt.store.Projects().GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.rt.store.Projects().List(ctx)
}

func (s *projectService) SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error) {
	return s.rt.mutateProject(ctx, "set-project-status", id, func(p *domain.Project, now time.Time) (bool, error) {
		return domain.SetProjectStatus(p, status, now)
	})
}
