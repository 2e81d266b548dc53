package project

import (
	"cmp"
	"slices"
)

// FinancialSummary is the portfolio-wide rollup shown on the dashboard.
type FinancialSummary struct {
	TotalProjects       int   `json:"totalProjects"`
	ActiveProjects      int   `json:"activeProjects"`
	TotalConsultantFees int64 `json:"totalConsultantFees"`
	PendingSubmissions  int   `json:"pendingSubmissions"`
	ApprovedSubmissions int   `json:"approvedSubmissions"`
}

// Financials is the consultant-fee breakdown of a single project.
//
// PaidFees counts the fees of approved submissions. Approval stands in for
// payment here; actual payments live in finance records.
type Financials struct {
	TotalFees   int64 `json:"totalFees"`
	PaidFees    int64 `json:"paidFees"`
	PendingFees int64 `json:"pendingFees"`
}

// ProjectFinancials pairs a project with its fee breakdown.
type ProjectFinancials struct {
	ProjectID string `json:"projectId"`
	Title     string `json:"title"`
	Color     string `json:"color"`
	Financials
}

func ComputeFinancialSummary(projects []Project) FinancialSummary {
	summary := FinancialSummary{TotalProjects: len(projects)}

	for _, p := range projects {
		if p.Status.IsActive() {
			summary.ActiveProjects++
		}

		for _, s := range p.Submissions {
			summary.TotalConsultantFees += s.ConsultantFee

			switch s.Status {
			case SubmissionPending:
				summary.PendingSubmissions++
			case SubmissionApproved:
				summary.ApprovedSubmissions++
			}
		}
	}

	return summary
}

func ComputeFinancials(p Project) Financials {
	var f Financials

	for _, s := range p.Submissions {
		f.TotalFees += s.ConsultantFee
		if s.Status == SubmissionApproved {
			f.PaidFees += s.ConsultantFee
		}
	}

	f.PendingFees = f.TotalFees - f.PaidFees

	return f
}

// Breakdown returns the financials of every project, largest total fees first.
func Breakdown(projects []Project) []ProjectFinancials {
	out := make([]ProjectFinancials, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectFinancials{
			ProjectID:  p.ID,
			Title:      p.Title,
			Color:      p.Color,
			Financials: ComputeFinancials(p),
		})
	}

	slices.SortStableFunc(out, func(a, b ProjectFinancials) int {
		return cmp.Compare(b.TotalFees, a.TotalFees)
	})

	return out
}

// TotalBudget sums the budgets of all projects, treating a missing budget as zero.
func TotalBudget(projects []Project) int64 {
	var total int64

	for _, p := range projects {
		if p.TotalBudget != nil {
			total += *p.TotalBudget
		}
	}

	return total
}
