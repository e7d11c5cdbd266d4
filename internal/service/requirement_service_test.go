package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementService_Lifecycle(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "P")

	req, err := s.reqs.Add(ctx, p.ID, RequirementInput{Title: "Brand guide", URL: "https://example.com/brand.pdf"})
	require.NoError(t, err)
	assert.Contains(t, req.ID, "req-")

	edited, err := s.reqs.Edit(ctx, p.ID, req.ID, RequirementInput{Title: "Brand guide v2", URL: "https://example.com/brand-v2.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "Brand guide v2", edited.Title)

	before := len(s.reload(t, p.ID).Timeline)
	_, err = s.reqs.Edit(ctx, p.ID, req.ID, RequirementInput{Title: "Brand guide v2", URL: "https://example.com/brand-v2.pdf"})
	require.NoError(t, err)
	assert.Len(t, s.reload(t, p.ID).Timeline, before)

	proj, err := s.reqs.Delete(ctx, p.ID, req.ID)
	require.NoError(t, err)
	assert.Empty(t, proj.Requirements)
	assert.Equal(t, `Requirement "Brand guide v2" deleted`, proj.Timeline[0].Description)

	_, err = s.reqs.Delete(ctx, p.ID, req.ID)
	assert.True(t, domain.IsNotFound(err))

	_, err = s.reqs.Add(ctx, p.ID, RequirementInput{Title: " "})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestRequirementService_AddDocument(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "P")
	m := s.addModule(t, p.ID, "Design")

	doc, err := s.reqs.AddDocument(ctx, p.ID, DocumentInput{Name: "Kickoff notes", URL: "https://example.com/kickoff", Type: domain.DocMeetingMinutes})
	require.NoError(t, err)
	assert.Equal(t, domain.DocMeetingMinutes, doc.Type)

	modDoc, err := s.reqs.AddDocument(ctx, p.ID, DocumentInput{Name: "Wireframes", URL: "https://example.com/wf", ModuleID: m.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.DocOther, modDoc.Type)

	stored := s.reload(t, p.ID)
	assert.Len(t, stored.Documents, 1)
	assert.Len(t, stored.Modules[0].Documents, 1)
	assert.Equal(t, `Document "Wireframes" added to module "Design"`, stored.Timeline[0].Description)

	_, err = s.reqs.AddDocument(ctx, p.ID, DocumentInput{Name: "X", URL: "https://example.com", Type: "invoice"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = s.reqs.AddDocument(ctx, p.ID, DocumentInput{Name: "X", URL: "https://example.com", ModuleID: "mod-missing"})
	assert.True(t, domain.IsNotFound(err))
}
