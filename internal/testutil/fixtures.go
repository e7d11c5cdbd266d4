package testutil

import (
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithDeadline(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Deadline = domain.DateOf(d)
	}
}

func WithShareLink(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShareableLinkID = id
	}
}

func WithModules(mods ...*domain.Module) ProjectOption {
	return func(p *domain.Project) {
		p.Modules = append(p.Modules, mods...)
	}
}

func WithChangeRequest(details string, status domain.ChangeRequestStatus) ProjectOption {
	return func(p *domain.Project) {
		p.ChangeRequests = append(p.ChangeRequests, &domain.ChangeRequest{
			ID:          uuid.New().String(),
			Details:     details,
			Status:      status,
			SubmittedAt: p.CreatedAt,
		})
	}
}

func WithCreatedAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = t
		p.UpdatedAt = t
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     "test project",
		Status:          domain.ProjectPlanning,
		StartDate:       domain.DateOf(now),
		Deadline:        domain.DateOf(now.AddDate(0, 3, 0)),
		ShareableLinkID: uuid.New().String(),
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Normalize()
	return p
}

// Module options
type ModuleOption func(*domain.Module)

func WithModuleStatus(s domain.ModuleStatus) ModuleOption {
	return func(m *domain.Module) {
		m.Status = s
	}
}

func WithEstimatedHours(h float64) ModuleOption {
	return func(m *domain.Module) {
		m.EstimatedHours = h
	}
}

func WithOwner(owner string) ModuleOption {
	return func(m *domain.Module) {
		m.Owner = owner
	}
}

// WithParts adds one part per name in the given status.
func WithParts(status domain.PartStatus, names ...string) ModuleOption {
	return func(m *domain.Module) {
		for _, n := range names {
			m.Parts = append(m.Parts, &domain.Part{ID: uuid.New().String(), Name: n, Status: status})
		}
	}
}

func NewTestModule(name string, opts ...ModuleOption) *domain.Module {
	m := &domain.Module{
		ID:     uuid.New().String(),
		Name:   name,
		Status: domain.ModulePending,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Lead options
type LeadOption func(*domain.Lead)

func WithLeadStatus(s domain.LeadStatus) LeadOption {
	return func(l *domain.Lead) {
		l.Status = s
	}
}

func WithLeadCreatedAt(t time.Time) LeadOption {
	return func(l *domain.Lead) {
		l.CreatedAt = t
	}
}

func WithCompany(c string) LeadOption {
	return func(l *domain.Lead) {
		l.Company = c
	}
}

func NewTestLead(name, email string, opts ...LeadOption) *domain.Lead {
	l := &domain.Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Status:    domain.LeadNew,
		CreatedAt: time.Now().UTC(),
		Version:   1,
	}
	l.FormLink = domain.FormPath(l.ID)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewTestRequirements returns a minimal valid questionnaire for leadID.
func NewTestRequirements(leadID, projectName string) *domain.ClientRequirements {
	return &domain.ClientRequirements{
		LeadID: leadID,
		Contact: domain.ContactInfo{
			Name:  "Dana Client",
			Email: "dana@example.com",
		},
		ProjectInfo: domain.ProjectInfo{ProjectName: projectName},
		SubmittedAt: time.Now().UTC(),
	}
}
