package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

// FormatProjectList renders the admin project list inside a bordered box.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	if len(projects) == 0 {
		return Dim("No projects yet. Create one with `clientdesk project add`.") + "\n"
	}
	headers := []string{"ID", "NAME", "STATUS", "MODULES", "DEADLINE"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		done, total := p.Progress()
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			ProjectStatusPill(p.Status),
			fmt.Sprintf("%d/%d", done, total),
			DueDate(p.Deadline, now),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectDetail renders one project with its modules and tasks.
func FormatProjectDetail(p *domain.Project, now time.Time) string {
	var b strings.Builder
	done, total := p.Progress()

	b.WriteString(Bold(p.Name) + "  " + TruncID(p.ID) + "\n")
	if p.Description != "" {
		b.WriteString(StyleFg.Render(p.Description) + "\n")
	}
	b.WriteString("\n")
	field(&b, "STATUS  ", ProjectStatusPill(p.Status))
	field(&b, "START   ", p.StartDate.String())
	field(&b, "DEADLINE", DueDate(p.Deadline, now))
	field(&b, "PROGRESS", RenderProgress(done, total, 20))
	field(&b, "LINK    ", "/client/"+p.ShareableLinkID)
	if n := p.PendingChangeRequests(); n > 0 {
		field(&b, "CHANGES ", StyleYellow.Render(fmt.Sprintf("%d awaiting decision", n)))
	}

	if len(p.Modules) > 0 {
		b.WriteString("\n" + Header("Modules") + "\n")
		for _, m := range p.Modules {
			b.WriteString(FormatModuleLine(m) + "\n")
			for _, part := range m.Parts {
				fmt.Fprintf(&b, "    %s %s %s\n", PartMark(part.Status), part.Name, TruncID(part.ID))
			}
		}
	}
	if len(p.Requirements) > 0 {
		b.WriteString("\n" + Header("Requirements") + "\n")
		for _, r := range p.Requirements {
			fmt.Fprintf(&b, "  %s %s %s\n", TruncID(r.ID), r.Title, Dim(r.URL))
		}
	}
	if len(p.Documents) > 0 {
		b.WriteString("\n" + Header("Documents") + "\n")
		for _, d := range p.Documents {
			fmt.Fprintf(&b, "  %s %s %s %s\n", TruncID(d.ID), d.Name, StylePurple.Render(domain.Label(d.Type)), Dim(d.URL))
		}
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

// FormatModuleLine is the one-line summary used in lists.
func FormatModuleLine(m *domain.Module) string {
	parts := ""
	if len(m.Parts) > 0 {
		done := 0
		for _, p := range m.Parts {
			if p.Status == domain.PartCompleted {
				done++
			}
		}
		parts = Dim(fmt.Sprintf(" %d/%d tasks", done, len(m.Parts)))
	}
	owner := ""
	if m.Owner != "" {
		owner = Dim(" @" + m.Owner)
	}
	return fmt.Sprintf("  %s %s %s%s%s %s", TruncID(m.ID), Bold(m.Name), ModuleStatusPill(m.Status), owner, parts, Dim(Hours(m.EstimatedHours)))
}

// FormatChangeRequests lists a project's change requests, oldest first.
func FormatChangeRequests(p *domain.Project, now time.Time) string {
	if len(p.ChangeRequests) == 0 {
		return Dim("No change requests.") + "\n"
	}
	rows := make([][]string, 0, len(p.ChangeRequests))
	for _, cr := range p.ChangeRequests {
		rows = append(rows, []string{TruncID(cr.ID), "#" + cr.ShortRef(), ChangeStatusPill(cr.Status), Ago(cr.SubmittedAt, now), cr.Details})
	}
	return RenderTable([]string{"ID", "REF", "STATUS", "SUBMITTED", "DETAILS"}, rows)
}

// FormatTimeline renders events as stored, newest first.
func FormatTimeline(events []domain.TimelineEvent, now time.Time) string {
	if len(events) == 0 {
		return Dim("No activity yet.") + "\n"
	}
	var b strings.Builder
	for _, ev := range events {
		fmt.Fprintf(&b, "%s  %-6s  %s\n", Dim(fmt.Sprintf("%-16s", Ago(ev.At, now))), ActorBadge(ev.Actor), ev.Description)
	}
	return b.String()
}

// FormatClientView is what the client sees for their project.
func FormatClientView(p *domain.Project, done, total, pending int, now time.Time) string {
	var b strings.Builder
	b.WriteString(Bold(p.Name) + "\n\n")
	field(&b, "STATUS  ", ProjectStatusPill(p.Status))
	field(&b, "DEADLINE", DueDate(p.Deadline, now))
	field(&b, "PROGRESS", RenderProgress(done, total, 20))
	if pending > 0 {
		field(&b, "CHANGES ", fmt.Sprintf("%d awaiting decision", pending))
	}
	for _, m := range p.Modules {
		b.WriteString("\n" + FormatModuleLine(m))
		for _, part := range m.Parts {
			fmt.Fprintf(&b, "\n    %s %s %s", PartMark(part.Status), part.Name, TruncID(part.ID))
		}
	}
	return RenderBox("Client Portal", b.String())
}

func field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s  %s\n", StyleDim.Render(label), value)
}
