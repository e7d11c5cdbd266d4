package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeRequest_DarkModeFlow(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "Website Redesign")

	cr, err := s.portal.AddChangeRequest(ctx, p.ShareableLinkID, "Add dark mode")
	require.NoError(t, err)
	assert.Equal(t, domain.ChangePendingApproval, cr.Status)
	assert.Equal(t, "Add dark mode", cr.Details)

	stored := s.reload(t, p.ID)
	assert.Equal(t, domain.ActorClient, stored.Timeline[0].Actor)
	before := len(stored.Timeline)

	decided, err := s.changes.SetStatus(ctx, p.ID, cr.ID, domain.ChangeApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeApproved, decided.Status)

	stored = s.reload(t, p.ID)
	require.Len(t, stored.Timeline, before+1)
	assert.Equal(t, domain.ActorAdmin, stored.Timeline[0].Actor)
	assert.Equal(t, "Change request #"+cr.ShortRef()+" has been Approved", stored.Timeline[0].Description)
	assert.Equal(t, domain.ChangeApproved, stored.ChangeRequests[0].Status)
}

func TestChangeRequest_RepeatIsNoOpReverseIsRejected(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "P")
	cr, err := s.portal.AddChangeRequest(ctx, p.ShareableLinkID, "Bigger logo")
	require.NoError(t, err)

	_, err = s.changes.SetStatus(ctx, p.ID, cr.ID, domain.ChangeRejected)
	require.NoError(t, err)
	after := s.reload(t, p.ID)

	_, err = s.changes.SetStatus(ctx, p.ID, cr.ID, domain.ChangeRejected)
	require.NoError(t, err)
	again := s.reload(t, p.ID)
	assert.Len(t, again.Timeline, len(after.Timeline))
	assert.Equal(t, after.Version, again.Version)

	_, err = s.changes.SetStatus(ctx, p.ID, cr.ID, domain.ChangeApproved)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, domain.ChangeRejected, s.reload(t, p.ID).ChangeRequests[0].Status)
}

func TestChangeRequest_Errors(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t, "P")

	_, err := s.portal.AddChangeRequest(ctx, p.ShareableLinkID, "   ")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = s.changes.SetStatus(ctx, p.ID, "cr-missing", domain.ChangeApproved)
	assert.True(t, domain.IsNotFound(err))

	cr, err := s.portal.AddChangeRequest(ctx, p.ShareableLinkID, "More pages")
	require.NoError(t, err)
	_, err = s.changes.SetStatus(ctx, p.ID, cr.ID, domain.ChangePendingApproval)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
