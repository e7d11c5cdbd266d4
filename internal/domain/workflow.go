package domain

import "time"

// Transition rules for every status-bearing entity. Each rule validates the
// requested move, mutates the status and records exactly one timeline event
// attributed to the role that invoked it. Rules that return changed=false
// leave both the entity and the timeline untouched.

// SetProjectStatus is an administrative edit; any known status is accepted.
func SetProjectStatus(p *Project, to ProjectStatus, at time.Time) (changed bool, err error) {
	if !to.Valid() {
		return false, Validation("project status %q must be one of %v", to, ProjectStatuses)
	}
	if p.Status == to {
		return false, nil
	}
	from := p.Status
	p.Status = to
	p.Record(ActorAdmin, at, "Project status changed from %s to %s", Label(from), Label(to))
	return true, nil
}

// SetModuleStatus is an administrative edit; any known status is accepted.
func SetModuleStatus(p *Project, m *Module, to ModuleStatus, at time.Time) (changed bool, err error) {
	if !to.Valid() {
		return false, Validation("module status %q must be one of %v", to, ModuleStatuses)
	}
	if m.Status == to {
		return false, nil
	}
	m.Status = to
	p.Record(ActorAdmin, at, "Module %q moved to %s", m.Name, Label(to))
	return true, nil
}

// ApproveModule is the client sign-off. It completes the module whatever its
// current status and whatever the state of its parts.
func ApproveModule(p *Project, m *Module, at time.Time) {
	m.Status = ModuleCompleted
	p.Record(ActorClient, at, "Client approved module %q", m.Name)
}

// ApprovePart is the client sign-off for a task; only parts awaiting review
// can be approved.
func ApprovePart(p *Project, m *Module, part *Part, at time.Time) error {
	switch part.Status {
	case PartInReview:
		part.Status = PartCompleted
		p.Record(ActorClient, at, "Client approved task %q in module %q", part.Name, m.Name)
		return nil
	case PartPending, PartCompleted:
		return Validation("task %q is %s; only tasks in review can be approved", part.Name, Label(part.Status))
	}
	return Validation("task %q has unknown status %q", part.Name, part.Status)
}

// TogglePart flips a task between pending and completed without passing
// through review. A task in review is completed.
func TogglePart(p *Project, m *Module, part *Part, at time.Time) {
	switch part.Status {
	case PartCompleted:
		part.Status = PartPending
	case PartPending, PartInReview:
		part.Status = PartCompleted
	default:
		part.Status = PartPending
	}
	p.Record(ActorAdmin, at, "Task %q in module %q marked %s", part.Name, m.Name, Label(part.Status))
}

// RequestPartReview submits a pending task for client review.
func RequestPartReview(p *Project, m *Module, part *Part, at time.Time) error {
	switch part.Status {
	case PartPending:
		part.Status = PartInReview
		p.Record(ActorAdmin, at, "Task %q in module %q submitted for client review", part.Name, m.Name)
		return nil
	case PartInReview, PartCompleted:
		return Validation("task %q is %s; only pending tasks can be sent for review", part.Name, Label(part.Status))
	}
	return Validation("task %q has unknown status %q", part.Name, part.Status)
}

// DecideChangeRequest approves or rejects a pending request. Repeating the
// decision already taken is a no-op; reversing a decision is rejected.
func DecideChangeRequest(p *Project, cr *ChangeRequest, to ChangeRequestStatus, at time.Time) (changed bool, err error) {
	switch to {
	case ChangeApproved, ChangeRejected:
	case ChangePendingApproval:
		return false, Validation("change request can only be approved or rejected")
	default:
		return false, Validation("change request status %q must be one of %v", to, ChangeRequestStatuses)
	}
	if cr.Status == to {
		return false, nil
	}
	if cr.Status.Terminal() {
		return false, Validation("change request #%s is already %s", cr.ShortRef(), Label(cr.Status))
	}
	cr.Status = to
	p.Record(ActorAdmin, at, "Change request #%s has been %s", cr.ShortRef(), Label(to))
	return true, nil
}

// AdvanceLead moves a lead forward in the funnel. Moving backwards is
// rejected; staying put is a no-op.
func AdvanceLead(l *Lead, to LeadStatus) (changed bool, err error) {
	if !to.Valid() {
		return false, Validation("lead status %q must be one of %v", to, LeadStatuses)
	}
	if l.Status == to {
		return false, nil
	}
	if to.rank() < l.Status.rank() {
		return false, Validation("lead %q cannot move back from %s to %s", l.ID, Label(l.Status), Label(to))
	}
	l.Status = to
	return true, nil
}
