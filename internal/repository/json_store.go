package repository

import (
	"context"
	"path/filepath"
	"slices"
	"sync"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

const (
	projectsFile     = "projects.json"
	leadsFile        = "leads.json"
	requirementsFile = "client-requirements.json"
)

// JSONStore keeps every collection in its own file under a data directory.
// Each operation loads the whole collection, edits it, and writes it back.
// A mutex serializes those cycles within the process; separate processes
// sharing the directory are last writer wins.
type JSONStore struct {
	mu           *sync.Mutex
	projects     *Collection[*domain.Project]
	leads        *Collection[*domain.Lead]
	requirements *Collection[*domain.ClientRequirements]
}

func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{
		mu:           &sync.Mutex{},
		projects:     NewCollection[*domain.Project](filepath.Join(dir, projectsFile)),
		leads:        NewCollection[*domain.Lead](filepath.Join(dir, leadsFile)),
		requirements: NewCollection[*domain.ClientRequirements](filepath.Join(dir, requirementsFile)),
	}
}

func (s *JSONStore) Projects() ProjectRepo { return &jsonProjectRepo{s: s} }

func (s *JSONStore) Leads() LeadRepo { return &jsonLeadRepo{s: s} }

func (s *JSONStore) Requirements() ClientRequirementsRepo { return &jsonRequirementsRepo{s: s} }

// WithinTx runs fn directly; writes already made are kept if fn fails.
func (s *JSONStore) WithinTx(ctx context.Context, fn func(ctx context.Context, st Store) error) error {
	return fn(ctx, s)
}

type jsonProjectRepo struct{ s *JSONStore }

func (r *jsonProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.projects.LoadAll()
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.ID == p.ID || existing.ShareableLinkID == p.ShareableLinkID {
			return domain.Validation("project %q or its share link already exists", p.ID)
		}
	}
	p.Normalize()
	if p.Version < 1 {
		p.Version = 1
	}
	return r.s.projects.SaveAll(append(all, p))
}

func (r *jsonProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	return r.find("project", id, func(p *domain.Project) bool { return p.ID == id })
}

func (r *jsonProjectRepo) GetByShareLink(_ context.Context, linkID string) (*domain.Project, error) {
	return r.find("project", linkID, func(p *domain.Project) bool { return p.ShareableLinkID == linkID })
}

func (r *jsonProjectRepo) find(entity, key string, match func(*domain.Project) bool) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.projects.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p != nil && match(p) {
			p.Normalize()
			if p.Version < 1 {
				p.Version = 1
			}
			return p, nil
		}
	}
	return nil, domain.NotFound(entity, key)
}

func (r *jsonProjectRepo) List(_ context.Context) ([]*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.projects.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Project, 0, len(all))
	for _, p := range all {
		if p == nil {
			continue
		}
		p.Normalize()
		if p.Version < 1 {
			p.Version = 1
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *jsonProjectRepo) Update(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.projects.LoadAll()
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(all, func(e *domain.Project) bool { return e != nil && e.ID == p.ID })
	if idx < 0 {
		return domain.NotFound("project", p.ID)
	}
	if stored := max(all[idx].Version, 1); stored != p.Version {
		return domain.Conflict("project", p.ID)
	}

	next := nextVersion(p.Version)
	updated := *p
	updated.Version = next
	updated.Normalize()
	all[idx] = &updated
	if err := r.s.projects.SaveAll(all); err != nil {
		return err
	}
	p.Version = next
	return nil
}

type jsonLeadRepo struct{ s *JSONStore }

// Create prepends so the file reads newest first.
func (r *jsonLeadRepo) Create(_ context.Context, l *domain.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.leads.LoadAll()
	if err != nil {
		return err
	}
	if slices.ContainsFunc(all, func(e *domain.Lead) bool { return e != nil && e.ID == l.ID }) {
		return domain.Validation("lead %q already exists", l.ID)
	}
	if l.Version < 1 {
		l.Version = 1
	}
	return r.s.leads.SaveAll(append([]*domain.Lead{l}, all...))
}

func (r *jsonLeadRepo) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.leads.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, l := range all {
		if l != nil && l.ID == id {
			l.Version = max(l.Version, 1)
			return l, nil
		}
	}
	return nil, domain.NotFound("lead", id)
}

func (r *jsonLeadRepo) List(_ context.Context) ([]*domain.Lead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.leads.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Lead, 0, len(all))
	for _, l := range all {
		if l != nil {
			l.Version = max(l.Version, 1)
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *jsonLeadRepo) Update(_ context.Context, l *domain.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.leads.LoadAll()
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(all, func(e *domain.Lead) bool { return e != nil && e.ID == l.ID })
	if idx < 0 {
		return domain.NotFound("lead", l.ID)
	}
	if max(all[idx].Version, 1) != l.Version {
		return domain.Conflict("lead", l.ID)
	}

	next := nextVersion(l.Version)
	updated := *l
	updated.Version = next
	all[idx] = &updated
	if err := r.s.leads.SaveAll(all); err != nil {
		return err
	}
	l.Version = next
	return nil
}

type jsonRequirementsRepo struct{ s *JSONStore }

func (r *jsonRequirementsRepo) Add(_ context.Context, req *domain.ClientRequirements) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.requirements.LoadAll()
	if err != nil {
		return err
	}
	return r.s.requirements.SaveAll(append(all, req))
}

func (r *jsonRequirementsRepo) ListByLead(_ context.Context, leadID string) ([]*domain.ClientRequirements, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all, err := r.s.requirements.LoadAll()
	if err != nil {
		return nil, err
	}
	var out []*domain.ClientRequirements
	for _, req := range all {
		if req != nil && req.LeadID == leadID {
			out = append(out, req)
		}
	}
	return out, nil
}
