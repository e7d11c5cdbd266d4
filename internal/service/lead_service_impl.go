package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/repository"
)

type leadService struct {
	rt *Runtime
}

func NewLeadService(rt *Runtime) LeadService {
	return &leadService{rt: rt}
}

func (s *leadService) Create(ctx context.Context, in LeadInput) (l *domain.Lead, err error) {
	startedAt := s.rt.clock.Now()
	defer s.rt.observe(ctx, "create-lead", startedAt, map[string]any{"email": in.Email}, &err)

	l = &domain.Lead{
		ID:        newID("lead"),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Company:   strings.TrimSpace(in.Company),
		Status:    domain.LeadNew,
		CreatedAt: s.rt.now(),
		Version:   1,
	}
	if err = l.Validate(); err != nil {
		return nil, err
	}
	l.FormLink = domain.FormPath(l.ID)
	if err = s.rt.store.Leads().Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *leadService) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	return s.rt.store.Leads().GetByID(ctx, id)
}

func (s *leadService) List(ctx context.Context) ([]*domain.Lead, error) {
	return s.rt.store.Leads().List(ctx)
}

func (s *leadService) SetStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error) {
	return s.rt.mutateLead(ctx, "set-lead-status", id, func(_ context.Context, _ repository.Store, l *domain.Lead, _ time.Time) (bool, error) {
		return domain.AdvanceLead(l, status)
	})
}

// SubmitForm stores the questionnaire answers, refreshes the lead's contact
// details from them and moves the lead to ProposalSent. A lead already
// past that stage keeps its status.
func (s *leadService) SubmitForm(ctx context.Context, leadID string, answers *domain.ClientRequirements) (*domain.Lead, error) {
	if answers == nil {
		return nil, domain.Validation("questionnaire answers are required")
	}
	if err := answers.Validate(); err != nil {
		return nil, err
	}
	return s.rt.mutateLead(ctx, "submit-lead-form", leadID, func(ctx context.Context, st repository.Store, l *domain.Lead, now time.Time) (bool, error) {
		if l.Status != domain.LeadConverted {
			if _, err := domain.AdvanceLead(l, domain.LeadProposalSent); err != nil {
				return false, err
			}
		}
		l.Name = strings.TrimSpace(answers.Contact.Name)
		l.Email = strings.TrimSpace(answers.Contact.Email)
		l.Company = domain.CoalesceStr(strings.TrimSpace(answers.Contact.Company), l.Company)

		record := *answers
		record.LeadID = l.ID
		record.SubmittedAt = now
		if err := st.Requirements().Add(ctx, &record); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *leadService) Requirements(ctx context.Context, leadID string) ([]*domain.ClientRequirements, error) {
	if _, err := s.rt.store.Leads().GetByID(ctx, leadID); err != nil {
		return nil, err
	}
	return s.rt.store.Requirements().ListByLead(ctx, leadID)
}
