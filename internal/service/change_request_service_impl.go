package service

import (
	"context"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

type changeRequestService struct {
	rt *Runtime
}

func NewChangeRequestService(rt *Runtime) ChangeRequestService {
	return &changeRequestService{rt: rt}
}

// SetStatus records the admin decision on a change request. Repeating the
// current decision returns the request unchanged.
func (s *changeRequestService) SetStatus(ctx context.Context, projectID, requestID string, status domain.ChangeRequestStatus) (*domain.ChangeRequest, error) {
	var out *domain.ChangeRequest
	_, err := s.rt.mutateProject(ctx, "update-change-request-status", projectID, func(p *domain.Project, now time.Time) (bool, error) {
		cr, err := p.ChangeRequest(requestID)
		if err != nil {
			return false, err
		}
		out = cr
		return domain.DecideChangeRequest(p, cr, status, now)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
