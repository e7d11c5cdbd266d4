package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func validEmail(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,email") == nil
}

type Lead struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Company   string     `json:"company"`
	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	FormLink  string     `json:"formLink"`
	Version   int64      `json:"version"`
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" || strings.TrimSpace(l.Email) == "" {
		return Validation("lead name and email are required")
	}
	if !validEmail(l.Email) {
		return Validation("lead email %q is not a valid address", l.Email)
	}
	return nil
}

// FormPath is the public questionnaire path handed to a lead.
func FormPath(leadID string) string {
	return "/leads/" + leadID + "/form"
}

// ClientRequirements is a lead's answers to the project questionnaire.
type ClientRequirements struct {
	LeadID      string             `json:"leadId"`
	Contact     ContactInfo        `json:"contactInfo"`
	ProjectInfo ProjectInfo        `json:"projectInfo"`
	Scope       ScopeAndFeatures   `json:"scopeAndFeatures"`
	Design      DesignAndUX        `json:"designAndUX"`
	Content     ContentAndStrategy `json:"contentAndStrategy"`
	SubmittedAt time.Time          `json:"submittedAt"`
}

type ContactInfo struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type ProjectInfo struct {
	ProjectName    string   `json:"projectName"`
	ProjectIdea    string   `json:"projectIdea"`
	TargetAudience string   `json:"targetAudience"`
	MainGoals      []string `json:"mainGoals"`
	Competitors    string   `json:"competitors"`
	Budget         string   `json:"budget"`
}

type ScopeAndFeatures struct {
	Platforms      []string `json:"platforms"`
	CommonFeatures []string `json:"commonFeatures"`
	OtherFeatures  []string `json:"otherFeatures"`
}

type DesignAndUX struct {
	HasBrandIdentity   string   `json:"hasBrandIdentity"`
	DesignInspirations []string `json:"designInspirations"`
	LookAndFeel        string   `json:"lookAndFeel"`
}

type ContentAndStrategy struct {
	ContentCreation string `json:"contentCreation"`
	MarketingPlan   string `json:"marketingPlan"`
	Maintenance     string `json:"maintenance"`
}

func (r *ClientRequirements) Validate() error {
	c := r.Contact
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Email) == "" {
		return Validation("contact name and email are required")
	}
	if !validEmail(c.Email) {
		return Validation("contact email %q is not a valid address", c.Email)
	}
	if strings.TrimSpace(r.ProjectInfo.ProjectName) == "" {
		return Validation("project name is required")
	}
	return nil
}
