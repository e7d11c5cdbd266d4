package repository

import (
	"context"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

// ProjectRepo persists whole projects, children included.
//
// Update is a compare-and-swap on Project.Version: the stored version must
// equal the caller's copy, otherwise a domain Conflict error is returned and
// nothing is written. On success the version on p is incremented.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShareLink(ctx context.Context, linkID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

// LeadRepo lists leads newest first. Update follows the same version rule
// as ProjectRepo.
type LeadRepo interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context) ([]*domain.Lead, error)
	Update(ctx context.Context, l *domain.Lead) error
}

type ClientRequirementsRepo interface {
	Add(ctx context.Context, r *domain.ClientRequirements) error
	ListByLead(ctx context.Context, leadID string) ([]*domain.ClientRequirements, error)
}

// Store bundles the repositories of one backend.
type Store interface {
	Projects() ProjectRepo
	Leads() LeadRepo
	Requirements() ClientRequirementsRepo

	// WithinTx runs fn against a store whose writes commit together when
	// the backend supports it. The JSON backend applies writes as they
	// happen and cannot roll back.
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}
