package service

import (
	"context"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

// NewProject is the payload for creating a project.
type NewProject struct {
	Name        string
	Description string
	StartDate   domain.Date
	Deadline    domain.Date
}

// ModuleInput carries the editable module fields. An empty Status keeps the
// current value on edit and means Pending on add.
type ModuleInput struct {
	Name           string
	Description    string
	Status         domain.ModuleStatus
	Deadline       domain.Date
	Owner          string
	EstimatedHours float64
}

type RequirementInput struct {
	Title string
	URL   string
}

// DocumentInput attaches a document to the project, or to one of its
// modules when ModuleID is set.
type DocumentInput struct {
	Name     string
	URL      string
	Type     domain.DocumentType
	ModuleID string
}

type DeliverableInput struct {
	Name string
	URL  string
}

type LeadInput struct {
	Name    string
	Email   string
	Company string
}

// ClientView is what a shareable link exposes.
type ClientView struct {
	Project        *domain.Project
	ModulesDone    int
	ModulesTotal   int
	PendingChanges int
}

type ProjectService interface {
	Create(ctx context.Context, in NewProject) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error)
}

type ModuleService interface {
	Add(ctx context.Context, projectID string, in ModuleInput) (*domain.Module, error)
	Edit(ctx context.Context, projectID, moduleID string, in ModuleInput) (*domain.Module, error)
	SetStatus(ctx context.Context, projectID, moduleID string, status domain.ModuleStatus) (*domain.Module, error)
	Delete(ctx context.Context, projectID, moduleID string) (*domain.Project, error)
	// AddGenerated asks the module generator for a breakdown of description
	// and appends every proposed module as Pending.
	AddGenerated(ctx context.Context, projectID, description string) ([]*domain.Module, error)
	UpdateParts(ctx context.Context, projectID, moduleID string, parts []*domain.Part) (*domain.Module, error)
	TogglePart(ctx context.Context, projectID, moduleID, partID string) (*domain.Part, error)
	RequestPartReview(ctx context.Context, projectID, moduleID, partID string) (*domain.Part, error)
	AddDeliverable(ctx context.Context, projectID, moduleID string, in DeliverableInput) (*domain.Deliverable, error)
}

type ChangeRequestService interface {
	SetStatus(ctx context.Context, projectID, requestID string, status domain.ChangeRequestStatus) (*domain.ChangeRequest, error)
}

type RequirementService interface {
	Add(ctx context.Context, projectID string, in RequirementInput) (*domain.Requirement, error)
	Edit(ctx context.Context, projectID, requirementID string, in RequirementInput) (*domain.Requirement, error)
	Delete(ctx context.Context, projectID, requirementID string) (*domain.Project, error)
	AddDocument(ctx context.Context, projectID string, in DocumentInput) (*domain.Document, error)
}

type LeadService interface {
	Create(ctx context.Context, in LeadInput) (*domain.Lead, error)
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context) ([]*domain.Lead, error)
	SetStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error)
	SubmitForm(ctx context.Context, leadID string, answers *domain.ClientRequirements) (*domain.Lead, error)
	Requirements(ctx context.Context, leadID string) ([]*domain.ClientRequirements, error)
}

// ClientPortalService serves holders of a project's shareable link. Every
// call resolves the link first and can only reach that project.
type ClientPortalService interface {
	View(ctx context.Context, linkID string) (*ClientView, error)
	ApproveModule(ctx context.Context, linkID, moduleID string) (*domain.Module, error)
	ApprovePart(ctx context.Context, linkID, moduleID, partID string) (*domain.Part, error)
	AddChangeRequest(ctx context.Context, linkID, details string) (*domain.ChangeRequest, error)
}
