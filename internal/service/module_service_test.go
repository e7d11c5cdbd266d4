package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/intelligence"
	"github.com/alexanderramin/clientdesk/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleService_Add_Auth(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "Website Redesign")

	m, err := s.modules.Add(ctx, p.ID, ModuleInput{Name: "Auth", EstimatedHours: 40})
	require.NoError(t, err)
	assert.Equal(t, domain.ModulePending, m.Status)
	assert.Equal(t, 40.0, m.EstimatedHours)

	stored := s.reload(t, p.ID)
	assert.Len(t, stored.Timeline, len(p.Timeline)+1)
	assert.Equal(t, `Module "Auth" added`, stored.Timeline[0].Description)
	assert.Equal(t, domain.ActorAdmin, stored.Timeline[0].Actor)
}

func TestModuleService_Add_Validation(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "P")

	_, err := s.modules.Add(ctx, p.ID, ModuleInput{Name: ""})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = s.modules.Add(ctx, p.ID, ModuleInput{Name: "Neg", EstimatedHours: -1})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = s.modules.Add(ctx, "proj-missing", ModuleInput{Name: "Auth"})
	assert.True(t, domain.IsNotFound(err))

	assert.Len(t, s.reload(t, p.ID).Timeline, 1)
}

func TestModuleService_Edit(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "P")
	m := s.addModule(t, p.ID, "Auth")

	edited, err := s.modules.Edit(ctx, p.ID, m.ID, ModuleInput{Name: "Authentication", Owner: "Backend Team", EstimatedHours: 12})
	require.NoError(t, err)
	assert.Equal(t, "Authentication", edited.Name)
	assert.Equal(t, domain.ModulePending, edited.Status, "empty status keeps the current one")
	assert.Equal(t, m.ID, edited.ID)

	before := len(s.reload(t, p.ID).Timeline)
	_, err = s.modules.Edit(ctx, p.ID, m.ID, ModuleInput{Name: "Authentication", Owner: "Backend Team", EstimatedHours: 12})
	require.NoError(t, err)
	assert.Len(t, s.reload(t, p.ID).Timeline, before, "identical edit records nothing")

	_, err = s.modules.Edit(ctx, p.ID, "mod-missing", ModuleInput{Name: "X"})
	assert.True(t, domain.IsNotFound(err))
}

func TestModuleService_SetStatusAndDelete(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "P")
	m := s.addModule(t, p.ID, "Auth")

	got, err := s.modules.SetStatus(ctx, p.ID, m.ID, domain.ModuleInReview)
	require.NoError(t, err)
	assert.Equal(t, domain.ModuleInReview, got.Status)

	proj, err := s.modules.Delete(ctx, p.ID, m.ID)
	require.NoError(t, err)
	assert.Empty(t, proj.Modules)
	assert.Equal(t, `Module "Auth" deleted`, proj.Timeline[0].Description)

	_, err = s.modules.Delete(ctx, p.ID, m.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestModuleService_UpdatePartsAndToggle(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "P")
	m := s.addModule(t, p.ID, "Auth", "Login form", "Password reset")

	require.Len(t, m.Parts, 2)
	for _, part := range m.Parts {
		assert.Contains(t, part.ID, "part-")
		assert.Equal(t, domain.PartPending, part.Status)
	}

	part, err := s.modules.TogglePart(ctx, p.ID, m.ID, m.Parts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PartCompleted, part.Status)

	part, err = s.modules.TogglePart(ctx, p.ID, m.ID, m.Parts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PartPending, part.Status)

	_, err = s.modules.UpdateParts(ctx, p.ID, m.ID, []*domain.Part{{Name: ""}})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = s.modules.TogglePart(ctx, p.ID, m.ID, "part-missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestModuleService_RequestPartReview(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "P")
	m := s.addModule(t, p.ID, "Auth", "Login form")

	part, err := s.modules.RequestPartReview(ctx, p.ID, m.ID, m.Parts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PartInReview, part.Status)

	before := len(s.reload(t, p.ID).Timeline)
	_, err = s.modules.RequestPartReview(ctx, p.ID, m.ID, m.Parts[0].ID)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Len(t, s.reload(t, p.ID).Timeline, before)
}

func TestModuleService_AddDeliverable(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "P")
	m := s.addModule(t, p.ID, "Design")

	d, err := s.modules.AddDeliverable(ctx, p.ID, m.ID, DeliverableInput{Name: "Mockups", URL: "https://files.example.com/mockups.pdf"})
	require.NoError(t, err)
	assert.Contains(t, d.ID, "dlv-")
	assert.True(t, d.SubmittedAt.Equal(testEpoch))

	stored := s.reload(t, p.ID)
	require.Len(t, stored.Modules[0].Deliverables, 1)
	assert.Equal(t, `Deliverable "Mockups" submitted for module "Design"`, stored.Timeline[0].Description)

	_, err = s.modules.AddDeliverable(ctx, p.ID, m.ID, DeliverableInput{Name: "No URL"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestModuleService_AddGenerated(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "Shop")
	s.gen.modules = []intelligence.GeneratedModule{
		{Name: "Catalog", Description: "Products", Deadline: "2024-03-01", Owner: "Frontend Team", EstimatedHours: 24},
		{Name: "Checkout", Description: "Payments", Deadline: "2024-04-01", Owner: "Backend Team", EstimatedHours: 32},
		{Name: "Admin", Description: "Back office", Deadline: "2024-05-01", Owner: "Admin", EstimatedHours: 16},
	}

	mods, err := s.modules.AddGenerated(ctx, p.ID, "An online shop")
	require.NoError(t, err)
	require.Len(t, mods, 3)

	stored := s.reload(t, p.ID)
	require.Len(t, stored.Modules, 3)
	for _, m := range stored.Modules {
		assert.Equal(t, domain.ModulePending, m.Status)
	}
	assert.Equal(t, "2024-04-01", stored.Modules[1].Deadline.String())
	require.Len(t, stored.Timeline, 2, "one event for the whole batch")
	assert.Equal(t, "3 modules generated by AI", stored.Timeline[0].Description)
	assert.Equal(t, domain.ActorSystem, stored.Timeline[0].Actor)
}

func TestModuleService_AddGenerated_FailureLeavesProjectUnchanged(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind domain.ErrorKind
	}{
		{"timeout", domain.ExternalTimeout("generating modules", llm.ErrTimeout), domain.KindExternalTimeout},
		{"service", domain.ExternalFailure("generating modules", errors.New("bad gateway")), domain.KindExternalService},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := setupServices(t)
			p := s.createProject(t, "Shop")
			s.gen.err = tc.err

			_, err := s.modules.AddGenerated(context.Background(), p.ID, "An online shop")
			assert.Equal(t, tc.kind, domain.KindOf(err))
			assert.True(t, domain.IsRetryable(err))

			stored := s.reload(t, p.ID)
			assert.Empty(t, stored.Modules)
			assert.Len(t, stored.Timeline, 1)
			assert.Equal(t, int64(1), stored.Version)
		})
	}
}

func TestModuleService_AddGenerated_UnknownProjectSkipsGenerator(t *testing.T) {
	s := setupServices(t)

	_, err := s.modules.AddGenerated(context.Background(), "proj-missing", "anything")
	assert.True(t, domain.IsNotFound(err))
	assert.Zero(t, s.gen.calls)
}

func TestModuleService_AddGenerated_NoGenerator(t *testing.T) {
	s := setupServices(t)
	p := s.createProject(t, "Shop")
	svc := NewModuleService(NewRuntime(s.store, s.clock), nil)

	_, err := svc.AddGenerated(context.Background(), p.ID, "An online shop")
	assert.Equal(t, domain.KindExternalService, domain.KindOf(err))
}
