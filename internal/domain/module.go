package domain

import (
	"strings"
	"time"
)

type Module struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Status         ModuleStatus   `json:"status"`
	Deadline       Date           `json:"deadline"`
	Owner          string         `json:"owner"`
	EstimatedHours float64        `json:"estimatedHours"`
	Parts          []*Part        `json:"parts"`
	Deliverables   []*Deliverable `json:"deliverables"`
	Documents      []*Document    `json:"documents"`
}

// Part is a task inside a module.
type Part struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Status PartStatus `json:"status"`
}

type Deliverable struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Validate checks the editable module fields.
func (m *Module) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return Validation("module name is required")
	}
	if m.EstimatedHours < 0 {
		return Validation("estimated hours must not be negative (got %v)", m.EstimatedHours)
	}
	if m.Status != "" && !m.Status.Valid() {
		return Validation("module status %q must be one of %v", m.Status, ModuleStatuses)
	}
	return nil
}

func (m *Module) Part(id string) (*Part, error) {
	for _, p := range m.Parts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, NotFound("part", id)
}

// PartProgress returns completed parts and the total.
func (m *Module) PartProgress() (done, total int) {
	for _, p := range m.Parts {
		if p.Status == PartCompleted {
			done++
		}
	}
	return done, len(m.Parts)
}

func (m *Module) normalize() {
	if m.Parts == nil {
		m.Parts = []*Part{}
	}
	if m.Deliverables == nil {
		m.Deliverables = []*Deliverable{}
	}
	if m.Documents == nil {
		m.Documents = []*Document{}
	}
}

// ValidateParts checks a replacement part list: names present, statuses
// known and ids unique.
func ValidateParts(parts []*Part) error {
	seen := make(map[string]bool, len(parts))
	for i, p := range parts {
		if p == nil {
			return Validation("part %d is empty", i)
		}
		if strings.TrimSpace(p.Name) == "" {
			return Validation("part %d name is required", i)
		}
		if p.Status != "" && !p.Status.Valid() {
			return Validation("part %q status %q must be one of %v", p.Name, p.Status, PartStatuses)
		}
		if p.ID != "" {
			if seen[p.ID] {
				return Validation("duplicate part id %q", p.ID)
			}
			seen[p.ID] = true
		}
	}
	return nil
}
