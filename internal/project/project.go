package project

import "time"

// Status represents where a project sits in the studio's delivery pipeline.
type Status string

const (
	StatusConcept           Status = "concept"
	StatusDesignDevelopment Status = "design-development"
	StatusSubmissionPrep    Status = "submission-prep"
	StatusSubmitted         Status = "submitted"
	StatusApproved          Status = "approved"
	StatusOnHold            Status = "on-hold"
	StatusCompleted         Status = "completed"
)

// IsActive reports whether the project is still being worked on.
func (s Status) IsActive() bool {
	switch s {
	case StatusConcept, StatusDesignDevelopment, StatusSubmissionPrep, StatusSubmitted:
		return true
	}

	return false
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusConcept, StatusDesignDevelopment, StatusSubmissionPrep, StatusSubmitted,
		StatusApproved, StatusOnHold, StatusCompleted:
		return true
	}

	return false
}

func (s Status) Color() string {
	switch s {
	case StatusConcept:
		return "#8b5cf6"
	case StatusDesignDevelopment:
		return "#3b82f6"
	case StatusSubmissionPrep:
		return "#f59e0b"
	case StatusSubmitted:
		return "#06b6d4"
	case StatusApproved:
		return "#10b981"
	case StatusOnHold:
		return "#ef4444"
	case StatusCompleted:
		return "#059669"
	}

	return "#6b7280"
}

// SubmissionType is the kind of regulatory filing.
type SubmissionType string

const (
	SubmissionPlanningPermission  SubmissionType = "planning-permission"
	SubmissionBuildingPermit      SubmissionType = "building-permit"
	SubmissionStructuralApproval  SubmissionType = "structural-approval"
	SubmissionFireSafety          SubmissionType = "fire-safety"
	SubmissionEnvironmentalImpact SubmissionType = "environmental-impact"
	SubmissionOther               SubmissionType = "other"
)

func (t SubmissionType) Valid() bool {
	switch t {
	case SubmissionPlanningPermission, SubmissionBuildingPermit, SubmissionStructuralApproval,
		SubmissionFireSafety, SubmissionEnvironmentalImpact, SubmissionOther:
		return true
	}

	return false
}

// SubmissionStatus is the approval state reported by the authority.
// Any status may follow any other.
type SubmissionStatus string

const (
	SubmissionPending              SubmissionStatus = "pending"
	SubmissionApproved             SubmissionStatus = "approved"
	SubmissionRejected             SubmissionStatus = "rejected"
	SubmissionResubmissionRequired SubmissionStatus = "resubmission-required"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionApproved, SubmissionRejected, SubmissionResubmissionRequired:
		return true
	}

	return false
}

func (s SubmissionStatus) Color() string {
	switch s {
	case SubmissionPending:
		return "#f59e0b"
	case SubmissionApproved:
		return "#10b981"
	case SubmissionRejected:
		return "#ef4444"
	case SubmissionResubmissionRequired:
		return "#f97316"
	}

	return "#6b7280"
}

const DefaultColor = "#623443"

// Project is a client engagement together with its regulatory submissions.
type Project struct {
	ID                   string       `json:"id"`
	Title                string       `json:"title"`
	ClientID             string       `json:"clientId"`
	ClientName           string       `json:"clientName"`
	Location             string       `json:"location"`
	Description          string       `json:"description"`
	Status               Status       `json:"status"`
	StartDate            time.Time    `json:"startDate"`
	TargetCompletionDate *time.Time   `json:"targetCompletionDate,omitempty"`
	ActualCompletionDate *time.Time   `json:"actualCompletionDate,omitempty"`
	TotalBudget          *int64       `json:"totalBudget,omitempty"` // Amount in sen
	Submissions          []Submission `json:"submissions"`
	Color                string       `json:"color"`
}

// Submission is a regulatory filing owned by a project.
type Submission struct {
	ID                   string           `json:"id"`
	Type                 SubmissionType   `json:"type"`
	Authority            string           `json:"authority"`
	SubmittedDate        *time.Time       `json:"submittedDate,omitempty"`
	ExpectedApprovalDate *time.Time       `json:"expectedApprovalDate,omitempty"`
	ApprovalDate         *time.Time       `json:"approvalDate,omitempty"`
	Status               SubmissionStatus `json:"status"`
	ConsultantFee        int64            `json:"consultantFee"` // Amount in sen
	Notes                string           `json:"notes,omitempty"`
}
