package service

import (
	"context"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/google/uuid"
	"github.com/im7mortal/kmutex"
	"github.com/juju/clock"
)

// Runtime holds what every service shares: the store, the clock, the
// use-case observer and the per-entity locks. Build one per store and pass
// it to every service constructor so that all of them serialize on the
// same keys.
type Runtime struct {
	store    repository.Store
	clock    clock.Clock
	observer UseCaseObserver
	locks    *kmutex.Kmutex
}

func NewRuntime(store repository.Store, clk clock.Clock, observers ...UseCaseObserver) *Runtime {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Runtime{
		store:    store,
		clock:    clk,
		observer: combineObservers(observers),
		locks:    kmutex.New(),
	}
}

func (rt *Runtime) now() time.Time {
	return rt.clock.Now().UTC()
}

// observe reports one use case; call it deferred with a pointer to the
// named error result.
func (rt *Runtime) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	rt.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  rt.clock.Now().Sub(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// projectMutation edits p in place. It returns false when the request turns
// out to be a no-op, in which case nothing is written.
type projectMutation func(p *domain.Project, now time.Time) (changed bool, err error)

// mutateProject is the read-modify-write cycle behind every project
// handler: lock the id, load the current copy, apply fn, then save with a
// version check. fn is responsible for recording the timeline event.
func (rt *Runtime) mutateProject(ctx context.Context, useCase, projectID string, fn projectMutation) (p *domain.Project, err error) {
	startedAt := rt.clock.Now()
	fields := map[string]any{"project_id": projectID}
	defer rt.observe(ctx, useCase, startedAt, fields, &err)

	if projectID == "" {
		return nil, domain.Validation("project id is required")
	}
	rt.locks.Lock(projectID)
	defer rt.locks.Unlock(projectID)

	p, err = rt.store.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	now := rt.now()
	changed, err := fn(p, now)
	if err != nil {
		return nil, err
	}
	fields["changed"] = changed
	if !changed {
		return p, nil
	}
	p.UpdatedAt = now
	if err = rt.store.Projects().Update(ctx, p); err != nil {
		return nil, err
	}
	fields["version"] = p.Version
	return p, nil
}

// mutateLead serializes lead writes the same way projects are serialized.
func (rt *Runtime) mutateLead(ctx context.Context, useCase, leadID string, fn func(ctx context.Context, s repository.Store, l *domain.Lead, now time.Time) (bool, error)) (l *domain.Lead, err error) {
	startedAt := rt.clock.Now()
	defer rt.observe(ctx, useCase, startedAt, map[string]any{"lead_id": leadID}, &err)

	if leadID == "" {
		return nil, domain.Validation("lead id is required")
	}
	key := "lead:" + leadID
	rt.locks.Lock(key)
	defer rt.locks.Unlock(key)

	err = rt.store.WithinTx(ctx, func(ctx context.Context, s repository.Store) error {
		lead, err := s.Leads().GetByID(ctx, leadID)
		if err != nil {
			return err
		}
		changed, err := fn(ctx, s, lead, rt.now())
		if err != nil {
			return err
		}
		if changed {
			if err := s.Leads().Update(ctx, lead); err != nil {
				return err
			}
		}
		l = lead
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func newID(prefix string) string {
	return prefix + "-" + uuid.New().String()
}
