package workspace

import (
	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/project"
	"github.com/MrJamesThe3rd/studiodesk/internal/user"
)

// Overview is everything the dashboard landing page shows.
type Overview struct {
	Summary     project.FinancialSummary    `json:"summary"`
	Finance     finance.Totals              `json:"finance"`
	TotalBudget int64                       `json:"totalBudget"`
	Breakdown   []project.ProjectFinancials `json:"breakdown"`
	OnlineUsers int                         `json:"onlineUsers"`
}

func (s *Service) Summary() project.FinancialSummary {
	var out project.FinancialSummary

	s.read(func(st State) { out = project.ComputeFinancialSummary(st.Projects) })

	return out
}

func (s *Service) Overview() Overview {
	var out Overview

	s.read(func(st State) {
		out = Overview{
			Summary:     project.ComputeFinancialSummary(st.Projects),
			Finance:     finance.ComputeTotals(st.FinanceRecords),
			TotalBudget: project.TotalBudget(st.Projects),
			Breakdown:   project.Breakdown(st.Projects),
			OnlineUsers: len(user.Online(st.Users)),
		}
	})

	return out
}
