package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return box.Render(content)
}

// Ago renders t relative to now, e.g. "3 hours ago".
func Ago(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// DueDate renders a deadline with urgency coloring relative to now.
func DueDate(d domain.Date, now time.Time) string {
	if d.IsZero() {
		return Dim("--")
	}
	text := d.String() + " " + Dim("("+Ago(d.Time, now)+")")
	days := d.Sub(now).Hours() / 24
	switch {
	case days < 0:
		return StyleRed.Render(d.String()) + " " + Dim("(overdue)")
	case days <= 7:
		return StyleYellow.Render(d.String()) + " " + Dim("("+Ago(d.Time, now)+")")
	}
	return text
}

// ProjectStatusPill renders a colored project status.
func ProjectStatusPill(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectPlanning:
		return StyleBlue.Render("○ Planning")
	case domain.ProjectInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.ProjectInReview:
		return StyleYellow.Render("◐ In Review")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	}
	return StyleDim.Render(string(s))
}

func ModuleStatusPill(s domain.ModuleStatus) string {
	switch s {
	case domain.ModulePending:
		return StyleBlue.Render("○ Pending")
	case domain.ModuleInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.ModuleInReview:
		return StyleYellow.Render("◐ In Review")
	case domain.ModuleCompleted:
		return StyleDim.Render("✔ Completed")
	}
	return StyleDim.Render(string(s))
}

// PartMark is the one-character checkbox shown in task lists.
func PartMark(s domain.PartStatus) string {
	switch s {
	case domain.PartCompleted:
		return StyleGreen.Render("[x]")
	case domain.PartInReview:
		return StyleYellow.Render("[?]")
	}
	return StyleDim.Render("[ ]")
}

func ChangeStatusPill(s domain.ChangeRequestStatus) string {
	switch s {
	case domain.ChangePendingApproval:
		return StyleYellow.Render("◐ Pending")
	case domain.ChangeApproved:
		return StyleGreen.Render("✔ Approved")
	case domain.ChangeRejected:
		return StyleRed.Render("✖ Rejected")
	}
	return StyleDim.Render(string(s))
}

func LeadStatusPill(s domain.LeadStatus) string {
	switch s {
	case domain.LeadNew:
		return StyleBlue.Render("○ New")
	case domain.LeadContacted:
		return StyleYellow.Render("◐ Contacted")
	case domain.LeadProposalSent:
		return StylePurple.Render("◆ Proposal Sent")
	case domain.LeadConverted:
		return StyleGreen.Render("✔ Converted")
	}
	return StyleDim.Render(string(s))
}

// ActorBadge labels who caused a timeline event.
func ActorBadge(a domain.Actor) string {
	switch a {
	case domain.ActorClient:
		return StylePurple.Render("client")
	case domain.ActorSystem:
		return StyleBlue.Render("system")
	}
	return StyleDim.Render(string(a))
}

// ShortID drops the kind prefix and keeps eight characters of the uuid.
func ShortID(id string) string {
	if _, rest, ok := strings.Cut(id, "-"); ok && len(rest) >= 8 {
		return rest[:8]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// TruncID returns ShortID dimmed.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}

// Hours renders an estimate like "12.5h"; zero is "--".
func Hours(h float64) string {
	if h <= 0 {
		return "--"
	}
	return humanize.Ftoa(h) + "h"
}
