package project

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type CreateParams struct {
	Title                string
	ClientID             string
	ClientName           string
	Location             string
	Description          string
	Status               Status
	StartDate            time.Time
	TargetCompletionDate *time.Time
	TotalBudget          *int64
	Color                string
}

// Update holds the fields to overwrite on a project. Nil fields are kept.
type Update struct {
	Title                *string
	Location             *string
	Description          *string
	Status               *Status
	StartDate            *time.Time
	TargetCompletionDate *time.Time
	ActualCompletionDate *time.Time
	TotalBudget          *int64
	Color                *string
}

type SubmissionParams struct {
	Type                 SubmissionType
	Authority            string
	SubmittedDate        *time.Time
	ExpectedApprovalDate *time.Time
	ApprovalDate         *time.Time
	Status               SubmissionStatus
	ConsultantFee        int64
	Notes                string
}

// SubmissionUpdate holds the fields to overwrite on a submission. Nil fields are kept.
type SubmissionUpdate struct {
	Type                 *SubmissionType
	Authority            *string
	SubmittedDate        *time.Time
	ExpectedApprovalDate *time.Time
	ApprovalDate         *time.Time
	Status               *SubmissionStatus
	ConsultantFee        *int64
	Notes                *string
}

func Find(projects []Project, id string) (Project, bool) {
	i := indexOf(projects, id)
	if i < 0 {
		return Project{}, false
	}

	return projects[i], true
}

// Add appends a new project with no submissions and returns the new
// collection along with the created project.
func Add(projects []Project, params CreateParams) ([]Project, Project) {
	p := Project{
		ID:                   uuid.NewString(),
		Title:                params.Title,
		ClientID:             params.ClientID,
		ClientName:           params.ClientName,
		Location:             params.Location,
		Description:          params.Description,
		Status:               params.Status,
		StartDate:            params.StartDate,
		TargetCompletionDate: params.TargetCompletionDate,
		TotalBudget:          params.TotalBudget,
		Submissions:          []Submission{},
		Color:                params.Color,
	}

	if p.Status == "" {
		p.Status = StatusConcept
	}

	if p.Color == "" {
		p.Color = DefaultColor
	}

	return append(slices.Clone(projects), p), p
}

// UpdateProject merges upd into the project with the given id. The input is
// returned unchanged when no project matches.
func UpdateProject(projects []Project, id string, upd Update) []Project {
	i := indexOf(projects, id)
	if i < 0 {
		return projects
	}

	p := projects[i]

	if upd.Title != nil {
		p.Title = *upd.Title
	}

	if upd.Location != nil {
		p.Location = *upd.Location
	}

	if upd.Description != nil {
		p.Description = *upd.Description
	}

	if upd.Status != nil {
		p.Status = *upd.Status
	}

	if upd.StartDate != nil {
		p.StartDate = *upd.StartDate
	}

	if upd.TargetCompletionDate != nil {
		p.TargetCompletionDate = upd.TargetCompletionDate
	}

	if upd.ActualCompletionDate != nil {
		p.ActualCompletionDate = upd.ActualCompletionDate
	}

	if upd.TotalBudget != nil {
		p.TotalBudget = upd.TotalBudget
	}

	if upd.Color != nil {
		p.Color = *upd.Color
	}

	return replaceAt(projects, i, p)
}

// AddSubmission appends a submission to the project with the given id.
// The input is returned unchanged when no project matches.
func AddSubmission(projects []Project, projectID string, params SubmissionParams) ([]Project, Submission) {
	i := indexOf(projects, projectID)
	if i < 0 {
		return projects, Submission{}
	}

	s := Submission{
		ID:                   uuid.NewString(),
		Type:                 params.Type,
		Authority:            params.Authority,
		SubmittedDate:        params.SubmittedDate,
		ExpectedApprovalDate: params.ExpectedApprovalDate,
		ApprovalDate:         params.ApprovalDate,
		Status:               params.Status,
		ConsultantFee:        params.ConsultantFee,
		Notes:                params.Notes,
	}

	if s.Status == "" {
		s.Status = SubmissionPending
	}

	p := projects[i]
	p.Submissions = append(slices.Clone(p.Submissions), s)

	return replaceAt(projects, i, p), s
}

// UpdateSubmission merges upd into one submission of a project. The input is
// returned unchanged when either id is unknown.
func UpdateSubmission(projects []Project, projectID, submissionID string, upd SubmissionUpdate) []Project {
	i := indexOf(projects, projectID)
	if i < 0 {
		return projects
	}

	p := projects[i]

	j := slices.IndexFunc(p.Submissions, func(s Submission) bool { return s.ID == submissionID })
	if j < 0 {
		return projects
	}

	s := p.Submissions[j]

	if upd.Type != nil {
		s.Type = *upd.Type
	}

	if upd.Authority != nil {
		s.Authority = *upd.Authority
	}

	if upd.SubmittedDate != nil {
		s.SubmittedDate = upd.SubmittedDate
	}

	if upd.ExpectedApprovalDate != nil {
		s.ExpectedApprovalDate = upd.ExpectedApprovalDate
	}

	if upd.ApprovalDate != nil {
		s.ApprovalDate = upd.ApprovalDate
	}

	if upd.Status != nil {
		s.Status = *upd.Status
	}

	if upd.ConsultantFee != nil {
		s.ConsultantFee = *upd.ConsultantFee
	}

	if upd.Notes != nil {
		s.Notes = *upd.Notes
	}

	subs := slices.Clone(p.Submissions)
	subs[j] = s
	p.Submissions = subs

	return replaceAt(projects, i, p)
}

func indexOf(projects []Project, id string) int {
	return slices.IndexFunc(projects, func(p Project) bool { return p.ID == id })
}

func replaceAt(projects []Project, i int, p Project) []Project {
	out := slices.Clone(projects)
	out[i] = p

	return out
}
