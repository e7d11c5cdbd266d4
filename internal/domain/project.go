package domain

import (
	"strings"
	"time"
)

type Project struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Status          ProjectStatus    `json:"status"`
	StartDate       Date             `json:"startDate"`
	Deadline        Date             `json:"deadline"`
	ShareableLinkID string           `json:"shareableLinkId"`
	Modules         []*Module        `json:"modules"`
	Requirements    []*Requirement   `json:"requirements"`
	Documents       []*Document      `json:"documents"`
	ChangeRequests  []*ChangeRequest `json:"changeRequests"`
	Timeline        []TimelineEvent  `json:"timeline"`
	Version         int64            `json:"version"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type Requirement struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Document struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	URL  string       `json:"url"`
	Type DocumentType `json:"type"`
}

type ChangeRequest struct {
	ID          string              `json:"id"`
	Details     string              `json:"details"`
	Status      ChangeRequestStatus `json:"status"`
	SubmittedAt time.Time           `json:"submittedAt"`
}

// ShortRef is the trailing fragment of the id used in timeline text.
func (c *ChangeRequest) ShortRef() string {
	if len(c.ID) <= 4 {
		return c.ID
	}
	return c.ID[len(c.ID)-4:]
}

// Validate checks the fields an administrator must supply.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Validation("project name is required")
	}
	if p.StartDate.IsZero() {
		return Validation("project start date is required")
	}
	if p.Deadline.IsZero() {
		return Validation("project deadline is required")
	}
	if p.Deadline.Before(p.StartDate.Time) {
		return Validation("project deadline %s is before start date %s", p.Deadline, p.StartDate)
	}
	return nil
}

func (p *Project) Module(id string) (*Module, error) {
	for _, m := range p.Modules {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, NotFound("module", id)
}

func (p *Project) ChangeRequest(id string) (*ChangeRequest, error) {
	for _, c := range p.ChangeRequests {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, NotFound("change request", id)
}

func (p *Project) Requirement(id string) (*Requirement, error) {
	for _, r := range p.Requirements {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, NotFound("requirement", id)
}

// RemoveModule deletes the module and returns it.
func (p *Project) RemoveModule(id string) (*Module, error) {
	for i, m := range p.Modules {
		if m.ID == id {
			p.Modules = append(p.Modules[:i], p.Modules[i+1:]...)
			return m, nil
		}
	}
	return nil, NotFound("module", id)
}

func (p *Project) RemoveRequirement(id string) (*Requirement, error) {
	for i, r := range p.Requirements {
		if r.ID == id {
			p.Requirements = append(p.Requirements[:i], p.Requirements[i+1:]...)
			return r, nil
		}
	}
	return nil, NotFound("requirement", id)
}

// Progress returns the number of completed modules and the total.
func (p *Project) Progress() (done, total int) {
	for _, m := range p.Modules {
		if m.Status == ModuleCompleted {
			done++
		}
	}
	return done, len(p.Modules)
}

// PendingChangeRequests counts requests still awaiting a decision.
func (p *Project) PendingChangeRequests() int {
	n := 0
	for _, c := range p.ChangeRequests {
		if c.Status == ChangePendingApproval {
			n++
		}
	}
	return n
}

// Normalize replaces nil collections with empty ones so serialized
// projects always carry arrays.
func (p *Project) Normalize() {
	if p.Modules == nil {
		p.Modules = []*Module{}
	}
	if p.Requirements == nil {
		p.Requirements = []*Requirement{}
	}
	if p.Documents == nil {
		p.Documents = []*Document{}
	}
	if p.ChangeRequests == nil {
		p.ChangeRequests = []*ChangeRequest{}
	}
	if p.Timeline == nil {
		p.Timeline = []TimelineEvent{}
	}
	for _, m := range p.Modules {
		m.normalize()
	}
}
