package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

// matchOne picks the item whose id equals input, whose id (or id without
// its kind prefix) starts with input, or whose name equals input ignoring
// case. Exact matches win over prefixes.
func matchOne[T any](kind, input string, items []T, id func(T) string, name func(T) string) (T, error) {
	var zero T
	input = strings.TrimSpace(input)
	if input == "" {
		return zero, domain.Validation("%s is required", kind)
	}
	for _, it := range items {
		if id(it) == input {
			return it, nil
		}
	}
	var matches []T
	for _, it := range items {
		full := id(it)
		_, bare, _ := strings.Cut(full, "-")
		if strings.HasPrefix(full, input) || strings.HasPrefix(bare, input) || strings.EqualFold(name(it), input) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return zero, domain.NotFound(kind, input)
	case 1:
		return matches[0], nil
	}
	return zero, domain.Validation("%s %q is ambiguous (%d matches)", kind, input, len(matches))
}

func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	return matchOne("project", input, projects,
		func(p *domain.Project) string { return p.ID },
		func(p *domain.Project) string { return p.Name })
}

func resolveModule(p *domain.Project, input string) (*domain.Module, error) {
	return matchOne("module", input, p.Modules,
		func(m *domain.Module) string { return m.ID },
		func(m *domain.Module) string { return m.Name })
}

func resolvePart(m *domain.Module, input string) (*domain.Part, error) {
	return matchOne("task", input, m.Parts,
		func(p *domain.Part) string { return p.ID },
		func(p *domain.Part) string { return p.Name })
}

// resolveChange also accepts the "#abcd" reference shown in the timeline.
func resolveChange(p *domain.Project, input string) (*domain.ChangeRequest, error) {
	if ref, ok := strings.CutPrefix(input, "#"); ok {
		for _, cr := range p.ChangeRequests {
			if cr.ShortRef() == ref {
				return cr, nil
			}
		}
		return nil, domain.NotFound("change request", input)
	}
	return matchOne("change request", input, p.ChangeRequests,
		func(c *domain.ChangeRequest) string { return c.ID },
		func(*domain.ChangeRequest) string { return "" })
}

func resolveRequirement(p *domain.Project, input string) (*domain.Requirement, error) {
	return matchOne("requirement", input, p.Requirements,
		func(r *domain.Requirement) string { return r.ID },
		func(r *domain.Requirement) string { return r.Title })
}

func resolveLead(ctx context.Context, app *App, input string) (*domain.Lead, error) {
	leads, err := app.Leads.List(ctx)
	if err != nil {
		return nil, err
	}
	return matchOne("lead", input, leads,
		func(l *domain.Lead) string { return l.ID },
		func(l *domain.Lead) string { return l.Email })
}

// projectAndModule resolves the common <project> <module> argument pair.
func projectAndModule(ctx context.Context, app *App, projectArg, moduleArg string) (*domain.Project, *domain.Module, error) {
	p, err := resolveProject(ctx, app, projectArg)
	if err != nil {
		return nil, nil, err
	}
	m, err := resolveModule(p, moduleArg)
	if err != nil {
		return nil, nil, fmt.Errorf("in project %q: %w", p.Name, err)
	}
	return p, m, nil
}
