package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

func FormatLeadList(leads []*domain.Lead, now time.Time) string {
	if len(leads) == 0 {
		return Dim("No leads yet.") + "\n"
	}
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		company := l.Company
		if company == "" {
			company = Dim("--")
		}
		rows = append(rows, []string{TruncID(l.ID), Bold(l.Name), l.Email, company, LeadStatusPill(l.Status), Ago(l.CreatedAt, now)})
	}
	return RenderBox("Leads", RenderTable([]string{"ID", "NAME", "EMAIL", "COMPANY", "STATUS", "CREATED"}, rows))
}

func FormatLead(l *domain.Lead, now time.Time) string {
	var b strings.Builder
	b.WriteString(Bold(l.Name) + "  " + TruncID(l.ID) + "\n\n")
	field(&b, "EMAIL  ", l.Email)
	if l.Company != "" {
		field(&b, "COMPANY", l.Company)
	}
	field(&b, "STATUS ", LeadStatusPill(l.Status))
	field(&b, "FORM   ", l.FormLink)
	field(&b, "CREATED", Ago(l.CreatedAt, now))
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

// FormatRequirements renders questionnaire submissions, one block each.
func FormatRequirements(reqs []*domain.ClientRequirements, now time.Time) string {
	if len(reqs) == 0 {
		return Dim("No questionnaire submitted yet.") + "\n"
	}
	var b strings.Builder
	for i, r := range reqs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(r.ProjectInfo.ProjectName) + "\n")
		field(&b, "SUBMITTED", Ago(r.SubmittedAt, now))
		field(&b, "CONTACT  ", fmt.Sprintf("%s <%s>", r.Contact.Name, r.Contact.Email))
		optional(&b, "IDEA     ", r.ProjectInfo.ProjectIdea)
		optional(&b, "AUDIENCE ", r.ProjectInfo.TargetAudience)
		optional(&b, "GOALS    ", strings.Join(r.ProjectInfo.MainGoals, ", "))
		optional(&b, "BUDGET   ", r.ProjectInfo.Budget)
		optional(&b, "PLATFORMS", strings.Join(r.Scope.Platforms, ", "))
		optional(&b, "FEATURES ", strings.Join(append(append([]string{}, r.Scope.CommonFeatures...), r.Scope.OtherFeatures...), ", "))
		optional(&b, "LOOK     ", r.Design.LookAndFeel)
		optional(&b, "CONTENT  ", r.Content.ContentCreation)
	}
	return b.String()
}

func optional(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) != "" {
		field(b, label, value)
	}
}
