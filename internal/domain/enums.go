package domain

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectInReview   ProjectStatus = "in_review"
	ProjectCompleted  ProjectStatus = "completed"
)

// ProjectStatuses lists every project status in workflow order.
var ProjectStatuses = []ProjectStatus{ProjectPlanning, ProjectInProgress, ProjectInReview, ProjectCompleted}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectInReview, ProjectCompleted:
		return true
	}
	return false
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(s)
	if !st.Valid() {
		return "", Validation("project status %q must be one of %v", s, ProjectStatuses)
	}
	return st, nil
}

type ModuleStatus string

const (
	ModulePending    ModuleStatus = "pending"
	ModuleInProgress ModuleStatus = "in_progress"
	ModuleInReview   ModuleStatus = "in_review"
	ModuleCompleted  ModuleStatus = "completed"
)

var ModuleStatuses = []ModuleStatus{ModulePending, ModuleInProgress, ModuleInReview, ModuleCompleted}

func (s ModuleStatus) Valid() bool {
	switch s {
	case ModulePending, ModuleInProgress, ModuleInReview, ModuleCompleted:
		return true
	}
	return false
}

func ParseModuleStatus(s string) (ModuleStatus, error) {
	st := ModuleStatus(s)
	if !st.Valid() {
		return "", Validation("module status %q must be one of %v", s, ModuleStatuses)
	}
	return st, nil
}

type PartStatus string

const (
	PartPending   PartStatus = "pending"
	PartInReview  PartStatus = "in_review"
	PartCompleted PartStatus = "completed"
)

var PartStatuses = []PartStatus{PartPending, PartInReview, PartCompleted}

func (s PartStatus) Valid() bool {
	switch s {
	case PartPending, PartInReview, PartCompleted:
		return true
	}
	return false
}

func ParsePartStatus(s string) (PartStatus, error) {
	st := PartStatus(s)
	if !st.Valid() {
		return "", Validation("part status %q must be one of %v", s, PartStatuses)
	}
	return st, nil
}

type ChangeRequestStatus string

const (
	ChangePendingApproval ChangeRequestStatus = "pending_approval"
	ChangeApproved        ChangeRequestStatus = "approved"
	ChangeRejected        ChangeRequestStatus = "rejected"
)

var ChangeRequestStatuses = []ChangeRequestStatus{ChangePendingApproval, ChangeApproved, ChangeRejected}

func (s ChangeRequestStatus) Valid() bool {
	switch s {
	case ChangePendingApproval, ChangeApproved, ChangeRejected:
		return true
	}
	return false
}

// Terminal reports whether no further decision can be made.
func (s ChangeRequestStatus) Terminal() bool {
	return s == ChangeApproved || s == ChangeRejected
}

func ParseChangeRequestStatus(s string) (ChangeRequestStatus, error) {
	st := ChangeRequestStatus(s)
	if !st.Valid() {
		return "", Validation("change request status %q must be one of %v", s, ChangeRequestStatuses)
	}
	return st, nil
}

type LeadStatus string

const (
	LeadNew          LeadStatus = "new"
	LeadContacted    LeadStatus = "contacted"
	LeadProposalSent LeadStatus = "proposal_sent"
	LeadConverted    LeadStatus = "converted"
)

var LeadStatuses = []LeadStatus{LeadNew, LeadContacted, LeadProposalSent, LeadConverted}

func (s LeadStatus) Valid() bool {
	return s.rank() >= 0
}

// rank is the position in the lead funnel; -1 for unknown values.
func (s LeadStatus) rank() int {
	switch s {
	case LeadNew:
		return 0
	case LeadContacted:
		return 1
	case LeadProposalSent:
		return 2
	case LeadConverted:
		return 3
	}
	return -1
}

func ParseLeadStatus(s string) (LeadStatus, error) {
	st := LeadStatus(s)
	if !st.Valid() {
		return "", Validation("lead status %q must be one of %v", s, LeadStatuses)
	}
	return st, nil
}

type Actor string

const (
	ActorAdmin  Actor = "admin"
	ActorClient Actor = "client"
	ActorSystem Actor = "system"
)

var Actors = []Actor{ActorAdmin, ActorClient, ActorSystem}

func ParseActor(s string) (Actor, error) {
	switch a := Actor(s); a {
	case ActorAdmin, ActorClient, ActorSystem:
		return a, nil
	}
	return "", Validation("actor %q must be one of %v", s, Actors)
}

type DocumentType string

const (
	DocBrief          DocumentType = "brief"
	DocObservations   DocumentType = "observations"
	DocMeetingMinutes DocumentType = "meeting_minutes"
	DocOther          DocumentType = "other"
)

var DocumentTypes = []DocumentType{DocBrief, DocObservations, DocMeetingMinutes, DocOther}

func ParseDocumentType(s string) (DocumentType, error) {
	switch t := DocumentType(s); t {
	case DocBrief, DocObservations, DocMeetingMinutes, DocOther:
		return t, nil
	case "":
		return DocOther, nil
	}
	return "", Validation("document type %q must be one of %v", s, DocumentTypes)
}

// Label renders a status value for humans, e.g. "in_review" -> "In Review".
func Label[S ~string](s S) string {
	out := []byte(s)
	upper := true
	for i, c := range out {
		switch {
		case c == '_':
			out[i] = ' '
			upper = true
		case upper && c >= 'a' && c <= 'z':
			out[i] = c - 'a' + 'A'
			upper = false
		default:
			upper = false
		}
	}
	return string(out)
}
