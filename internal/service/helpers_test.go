package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/intelligence"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/alexanderramin/clientdesk/internal/testutil"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type services struct {
	store    repository.Store
	clock    *testclock.Clock
	observer *captureObserver
	projects ProjectService
	modules  ModuleService
	changes  ChangeRequestService
	reqs     RequirementService
	leads    LeadService
	portal   ClientPortalService
	gen      *stubGenerator
}

func setupServices(t *testing.T) *services {
	t.Helper()
	return setupWithStore(t, repository.NewSQLiteStore(testutil.NewTestDB(t)))
}

func setupWithStore(t *testing.T, store repository.Store) *services {
	t.Helper()
	clk := testclock.NewClock(testEpoch)
	obs := &captureObserver{}
	rt := NewRuntime(store, clk, obs)
	gen := &stubGenerator{}
	return &services{
		store:    store,
		clock:    clk,
		observer: obs,
		projects: NewProjectService(rt),
		modules:  NewModuleService(rt, gen),
		changes:  NewChangeRequestService(rt),
		reqs:     NewRequirementService(rt),
		leads:    NewLeadService(rt),
		portal:   NewClientPortalService(rt),
		gen:      gen,
	}
}

func (s *services) createProject(t *testing.T, name string) *domain.Project {
	t.Helper()
	p, err := s.projects.Create(context.Background(), NewProject{
		Name:      name,
		StartDate: domain.NewDate(2024, time.January, 1),
		Deadline:  domain.NewDate(2024, time.June, 1),
	})
	require.NoError(t, err)
	return p
}

func (s *services) addModule(t *testing.T, projectID, name string, parts ...string) *domain.Module {
	t.Helper()
	ctx := context.Background()
	m, err := s.modules.Add(ctx, projectID, ModuleInput{Name: name})
	require.NoError(t, err)
	if len(parts) > 0 {
		in := make([]*domain.Part, 0, len(parts))
		for _, n := range parts {
			in = append(in, &domain.Part{Name: n})
		}
		m, err = s.modules.UpdateParts(ctx, projectID, m.ID, in)
		require.NoError(t, err)
	}
	return m
}

func (s *services) reload(t *testing.T, id string) *domain.Project {
	t.Helper()
	p, err := s.projects.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

type stubGenerator struct {
	modules []intelligence.GeneratedModule
	err     error
	calls   int
}

func (g *stubGenerator) Generate(_ context.Context, _ string) ([]intelligence.GeneratedModule, error) {
	g.calls++
	return g.modules, g.err
}

type captureObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *captureObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *captureObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.Name)
	}
	return out
}
